package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/app"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := app.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8*time.Second, cfg.SOS.Cooldown)
	assert.Equal(t, 0.5, cfg.Fall.Threshold)
	assert.Equal(t, "100", cfg.Police.Number)
	assert.Len(t, cfg.Devices.Grants, 4)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardian.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
home: /tmp/guardian-test
sos:
  cooldown: 3s
police:
  number: "112"
devices:
  grants: [microphone]
  location:
    latitude: 51.5
    longitude: -0.12
events:
  nats_url: nats://127.0.0.1:4222
`), 0o600))

	cfg, err := app.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/guardian-test", cfg.Home)
	assert.Equal(t, 3*time.Second, cfg.SOS.Cooldown)
	assert.Equal(t, "112", cfg.Police.Number)
	assert.Equal(t, []string{"microphone"}, cfg.Devices.Grants)
	assert.Equal(t, 51.5, cfg.Devices.Location.Latitude)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Events.NATSURL)
	assert.Equal(t, "guardian.events", cfg.Events.SubjectPrefix)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := app.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sos: [not, a, map]"), 0o600))
	_, err = app.LoadConfig(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GUARDIAN_HOME", "/data/guardian")
	t.Setenv("GUARDIAN_SOS_COOLDOWN", "2s")
	t.Setenv("GUARDIAN_GRANTS", "camera, location")
	t.Setenv("GUARDIAN_CAMERA_FAILS", "true")
	t.Setenv("GUARDIAN_BRIDGE_URL", "http://127.0.0.1:9090")

	cfg := app.DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/data/guardian", cfg.Home)
	assert.Equal(t, 2*time.Second, cfg.SOS.Cooldown)
	assert.Equal(t, []string{"camera", "location"}, cfg.Devices.Grants)
	assert.True(t, cfg.Devices.CameraFails)
	assert.Equal(t, "http://127.0.0.1:9090", cfg.Intents.BridgeURL)
}

func TestApplyEnv_BadDuration(t *testing.T) {
	t.Setenv("GUARDIAN_SOS_COOLDOWN", "soon")
	cfg := app.DefaultConfig()
	assert.ErrorContains(t, cfg.ApplyEnv(), "GUARDIAN_SOS_COOLDOWN")
}

func TestValidate(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	require.NoError(t, cfg.Validate())

	cfg.Scream.Threshold = 1.5
	cfg.Log.Level = "loud"
	cfg.Devices.Grants = []string{"gps"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "scream.threshold")
	assert.ErrorContains(t, err, "log.level")
	assert.ErrorContains(t, err, `"gps"`)
}

func TestResolveHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg := app.DefaultConfig()
	require.NoError(t, cfg.ResolveHome())
	assert.Equal(t, filepath.Join("/home/tester", ".guardian"), cfg.Home)
}
