package types

// TriggerSource records what asked for an SOS.
type TriggerSource string

const (
	TriggerManual TriggerSource = "manual"
	TriggerFall   TriggerSource = "fall"
	TriggerScream TriggerSource = "scream"
)

// DispatchOutcome is the result of one SOS trigger.
type DispatchOutcome string

const (
	OutcomeSuppressed DispatchOutcome = "suppressed"
	OutcomeNoContacts DispatchOutcome = "no_contacts"
	OutcomeDispatched DispatchOutcome = "dispatched"
	OutcomeFailed     DispatchOutcome = "failed"
)

// DispatchResult reports what a trigger did.
type DispatchResult struct {
	Source  TriggerSource   `json:"source"`
	Outcome DispatchOutcome `json:"outcome"`
	Intents []Intent        `json:"intents,omitempty"`
}
