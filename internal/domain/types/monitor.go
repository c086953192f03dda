package types

// MonitorName identifies one of the safety monitors.
type MonitorName string

const (
	MonitorFall      MonitorName = "fall"
	MonitorScream    MonitorName = "scream"
	MonitorHeartbeat MonitorName = "heartbeat"
)

// MonitorState is the view of a monitor shared with the presentation layer.
type MonitorState struct {
	Active       bool     `json:"active"`
	LastReading  *float64 `json:"lastReading,omitempty"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
}

// ReadingSource distinguishes a measured heartbeat from a simulated one.
type ReadingSource string

const (
	SourceNone      ReadingSource = ""
	SourceMeasured  ReadingSource = "measured"
	SourceSimulated ReadingSource = "simulated"
)

// FallState extends MonitorState with the fall monitor's one-shot flags.
type FallState struct {
	MonitorState
	FallDetected   bool `json:"fallDetected"`
	AlertTriggered bool `json:"alertTriggered"`
}

// ScreamState extends MonitorState with the latest classifier score.
type ScreamState struct {
	MonitorState
	LastLikelihood ScreamLikelihood `json:"lastLikelihood"`
	AlertTriggered bool             `json:"alertTriggered"`
}

// HeartbeatState extends MonitorState with measurement progress.
type HeartbeatState struct {
	MonitorState
	Measuring bool          `json:"measuring"`
	Source    ReadingSource `json:"source,omitempty"`
}

// BPM returns the last reading as whole beats per minute.
func (s HeartbeatState) BPM() (int, bool) {
	if s.LastReading == nil {
		return 0, false
	}
	return int(*s.LastReading), true
}

// SessionState is the full snapshot handed to the presentation layer.
type SessionState struct {
	Enabled   bool           `json:"enabled"`
	Fall      FallState      `json:"fall"`
	Scream    ScreamState    `json:"scream"`
	Heartbeat HeartbeatState `json:"heartbeat"`
}
