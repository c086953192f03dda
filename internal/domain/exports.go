package domain

import (
	interfaces "guardian/internal/domain/interfaces"
	types "guardian/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Contact          = types.Contact
	Capability       = types.Capability
	Coordinates      = types.Coordinates
	Vector3          = types.Vector3
	RecordingPreset  = types.RecordingPreset
	AudioWindow      = types.AudioWindow
	ScreamLikelihood = types.ScreamLikelihood
	MonitorName      = types.MonitorName
	MonitorState     = types.MonitorState
	ReadingSource    = types.ReadingSource
	FallState        = types.FallState
	ScreamState      = types.ScreamState
	HeartbeatState   = types.HeartbeatState
	SessionState     = types.SessionState
	IntentKind       = types.IntentKind
	Intent           = types.Intent
	NoticeLevel      = types.NoticeLevel
	Notice           = types.Notice
	TriggerSource    = types.TriggerSource
	DispatchOutcome  = types.DispatchOutcome
	DispatchResult   = types.DispatchResult
	Challenge        = types.Challenge
	EventKind        = types.EventKind
	Event            = types.Event
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ContactStore     = interfaces.ContactStore
	ChallengeStore   = interfaces.ChallengeStore
	PermissionGate   = interfaces.PermissionGate
	Subscription     = interfaces.Subscription
	Accelerometer    = interfaces.Accelerometer
	Recording        = interfaces.Recording
	Microphone       = interfaces.Microphone
	CameraSession    = interfaces.CameraSession
	Camera           = interfaces.Camera
	PulseSource      = interfaces.PulseSource
	LocationProvider = interfaces.LocationProvider
	Monitor          = interfaces.Monitor
	SOSTrigger       = interfaces.SOSTrigger
	ContactReader    = interfaces.ContactReader
	ScreamClassifier = interfaces.ScreamClassifier
	IntentLauncher   = interfaces.IntentLauncher
	Notifier         = interfaces.Notifier
	EventPublisher   = interfaces.EventPublisher
)

// Re-exported constants and constructors.
const (
	CapabilityCamera        = types.CapabilityCamera
	CapabilityMicrophone    = types.CapabilityMicrophone
	CapabilityAccelerometer = types.CapabilityAccelerometer
	CapabilityLocation      = types.CapabilityLocation

	MonitorFall      = types.MonitorFall
	MonitorScream    = types.MonitorScream
	MonitorHeartbeat = types.MonitorHeartbeat

	SourceNone      = types.SourceNone
	SourceMeasured  = types.SourceMeasured
	SourceSimulated = types.SourceSimulated

	IntentCall = types.IntentCall
	IntentSMS  = types.IntentSMS

	NoticeInfo    = types.NoticeInfo
	NoticeWarning = types.NoticeWarning
	NoticeError   = types.NoticeError

	TriggerManual = types.TriggerManual
	TriggerFall   = types.TriggerFall
	TriggerScream = types.TriggerScream

	OutcomeSuppressed = types.OutcomeSuppressed
	OutcomeNoContacts = types.OutcomeNoContacts
	OutcomeDispatched = types.OutcomeDispatched
	OutcomeFailed     = types.OutcomeFailed

	EventSessionEnabled   = types.EventSessionEnabled
	EventSessionDisabled  = types.EventSessionDisabled
	EventFallDetected     = types.EventFallDetected
	EventScreamDetected   = types.EventScreamDetected
	EventHeartbeatReading = types.EventHeartbeatReading
	EventSOS              = types.EventSOS

	MaxAxisG = types.MaxAxisG
)

var (
	HighQualityPreset = types.HighQualityPreset

	CallIntent = types.CallIntent
	SMSIntent  = types.SMSIntent
	MapsLink   = types.MapsLink
	AllDone    = types.AllDone
)
