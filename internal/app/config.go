package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"guardian/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string `yaml:"home"`       // data directory, e.g. $HOME/.guardian
	Passphrase string `yaml:"passphrase"` // non-empty seals stored values

	Log     LogConfig     `yaml:"log"`
	SOS     SOSConfig     `yaml:"sos"`
	Fall    FallConfig    `yaml:"fall"`
	Scream  ScreamConfig  `yaml:"scream"`
	Session SessionConfig `yaml:"session"`
	Police  PoliceConfig  `yaml:"police"`
	Intents IntentsConfig `yaml:"intents"`
	Events  EventsConfig  `yaml:"events"`
	Devices DevicesConfig `yaml:"devices"`
	Server  ServerConfig  `yaml:"server"`

	HTTP *http.Client `yaml:"-"` // optional; defaults to http.DefaultClient
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// SOSConfig tunes the dispatcher.
type SOSConfig struct {
	Cooldown time.Duration `yaml:"cooldown"`
}

// FallConfig tunes the fall monitor.
type FallConfig struct {
	Threshold float64 `yaml:"threshold"` // g
}

// ScreamConfig tunes the scream monitor.
type ScreamConfig struct {
	Threshold float64 `yaml:"threshold"` // likelihood in (0,1]
}

// SessionConfig tunes the safety toggle.
type SessionConfig struct {
	ManualHeartbeat bool `yaml:"manual_heartbeat"`
}

// PoliceConfig sets the police number.
type PoliceConfig struct {
	Number string `yaml:"number"`
}

// IntentsConfig selects where intents go. Without a bridge URL they are
// printed.
type IntentsConfig struct {
	BridgeURL string `yaml:"bridge_url"`
	Device    string `yaml:"device"`
}

// EventsConfig enables NATS fan-out of safety events.
type EventsConfig struct {
	NATSURL       string `yaml:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

// DevicesConfig configures the simulated handset.
type DevicesConfig struct {
	Grants         []string           `yaml:"grants"`
	GrantOnRequest bool               `yaml:"grant_on_request"`
	CameraFails    bool               `yaml:"camera_fails"`
	Location       domain.Coordinates `yaml:"location"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults. Home is left empty
// and resolved by ResolveHome.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		SOS:    SOSConfig{Cooldown: 8 * time.Second},
		Fall:   FallConfig{Threshold: 0.5},
		Scream: ScreamConfig{Threshold: 0.8},
		Police: PoliceConfig{Number: "100"},
		Intents: IntentsConfig{
			Device: "handset",
		},
		Events: EventsConfig{SubjectPrefix: "guardian.events"},
		Devices: DevicesConfig{
			Grants: []string{
				string(domain.CapabilityAccelerometer),
				string(domain.CapabilityMicrophone),
				string(domain.CapabilityCamera),
				string(domain.CapabilityLocation),
			},
			Location: domain.Coordinates{Latitude: 28.6139, Longitude: 77.209},
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// LoadConfig returns the defaults overlaid with the YAML file at path. An
// empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GUARDIAN_* environment variables.
func (c *Config) ApplyEnv() error {
	str := map[string]*string{
		"GUARDIAN_HOME":           &c.Home,
		"GUARDIAN_PASSPHRASE":     &c.Passphrase,
		"GUARDIAN_LOG_LEVEL":      &c.Log.Level,
		"GUARDIAN_LOG_FORMAT":     &c.Log.Format,
		"GUARDIAN_POLICE_NUMBER":  &c.Police.Number,
		"GUARDIAN_BRIDGE_URL":     &c.Intents.BridgeURL,
		"GUARDIAN_DEVICE":         &c.Intents.Device,
		"GUARDIAN_NATS_URL":       &c.Events.NATSURL,
		"GUARDIAN_SUBJECT_PREFIX": &c.Events.SubjectPrefix,
		"GUARDIAN_HTTP_ADDR":      &c.Server.Addr,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("GUARDIAN_SOS_COOLDOWN"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("GUARDIAN_SOS_COOLDOWN: %w", err)
		}
		c.SOS.Cooldown = d
	}
	if v, ok := os.LookupEnv("GUARDIAN_GRANTS"); ok {
		c.Devices.Grants = splitList(v)
	}
	if v, ok := os.LookupEnv("GUARDIAN_CAMERA_FAILS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GUARDIAN_CAMERA_FAILS: %w", err)
		}
		c.Devices.CameraFails = b
	}
	return nil
}

// ResolveHome fills an empty Home with ~/.guardian.
func (c *Config) ResolveHome() error {
	if c.Home != "" {
		return nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.Home = filepath.Join(dir, ".guardian")
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Home == "" {
		errs = append(errs, errors.New("home is required"))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", f))
	}
	if c.SOS.Cooldown <= 0 {
		errs = append(errs, errors.New("sos.cooldown must be positive"))
	}
	if c.Fall.Threshold <= 0 {
		errs = append(errs, errors.New("fall.threshold must be positive"))
	}
	if c.Scream.Threshold <= 0 || c.Scream.Threshold > 1 {
		errs = append(errs, errors.New("scream.threshold must be in (0,1]"))
	}
	if strings.TrimSpace(c.Police.Number) == "" {
		errs = append(errs, errors.New("police.number is required"))
	}
	if c.Intents.BridgeURL != "" && c.Intents.Device == "" {
		errs = append(errs, errors.New("intents.device is required with a bridge URL"))
	}
	for _, g := range c.Devices.Grants {
		if !knownCapability(domain.Capability(g)) {
			errs = append(errs, fmt.Errorf("devices.grants: unknown capability %q", g))
		}
	}
	return errors.Join(errs...)
}

func knownCapability(c domain.Capability) bool {
	switch c {
	case domain.CapabilityCamera, domain.CapabilityMicrophone,
		domain.CapabilityAccelerometer, domain.CapabilityLocation:
		return true
	}
	return false
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
