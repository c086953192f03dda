package store

import (
	"sync"

	"guardian/internal/domain"
)

// ContactsKey is the storage key of the emergency contact list.
const ContactsKey = "emergencyContacts"

// ContactFileStore persists emergency contacts as a JSON array of strings.
type ContactFileStore struct {
	kv *KeyValue
	mu sync.Mutex
}

// NewContactFileStore returns a ContactFileStore backed by kv.
func NewContactFileStore(kv *KeyValue) *ContactFileStore {
	return &ContactFileStore{kv: kv}
}

// LoadContacts returns the stored contacts in insertion order, or an empty
// list when none were saved.
func (s *ContactFileStore) LoadContacts() ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var contacts []domain.Contact
	ok, err := s.kv.GetJSON(ContactsKey, &contacts)
	if err != nil {
		return nil, err
	}
	if !ok || contacts == nil {
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

// SaveContacts replaces the stored list.
func (s *ContactFileStore) SaveContacts(contacts []domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return s.kv.SetJSON(ContactsKey, contacts)
}

// Compile-time assertion that ContactFileStore implements domain.ContactStore.
var _ domain.ContactStore = (*ContactFileStore)(nil)
