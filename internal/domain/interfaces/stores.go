package interfaces

import domaintypes "guardian/internal/domain/types"

// ContactStore persists the ordered list of emergency contacts.
type ContactStore interface {
	LoadContacts() ([]domaintypes.Contact, error)
	SaveContacts(contacts []domaintypes.Contact) error
}

// ChallengeStore persists the wellness challenge list.
type ChallengeStore interface {
	// LoadChallenges returns ok=false when nothing has been stored yet.
	LoadChallenges() (challenges []domaintypes.Challenge, ok bool, err error)
	SaveChallenges(challenges []domaintypes.Challenge) error
}
