package contacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
)

// ErrContactIndex is returned by Remove for an index outside the list.
var ErrContactIndex = errors.New("contact index out of range")

// Service manages emergency contacts using a backing store.
type Service struct {
	store    domain.ContactStore
	notifier domain.Notifier
	clock    clockwork.Clock
	logger   *slog.Logger

	mu     sync.Mutex
	cache  []domain.Contact
	loaded bool
}

// New returns a contact service backed by the given store. A nil clock or
// logger uses the default.
func New(s domain.ContactStore, notifier domain.Notifier, clock clockwork.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, notifier: notifier, clock: clock, logger: logger}
}

// Load reads the stored list. A corrupt file is reported to the user and the
// list starts empty; the corrupt file is replaced on the next write.
func (s *Service) Load(ctx context.Context) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.store.LoadContacts()
	switch {
	case errors.Is(err, domain.ErrStorageCorrupt):
		s.cache, s.loaded = []domain.Contact{}, true
		s.logger.Error("Emergency contacts unreadable", "error", err)
		s.notifier.Notify(ctx, domain.Notice{
			Level:   domain.NoticeError,
			Title:   "Storage Error",
			Message: "Saved emergency contacts could not be read. Please add them again.",
			At:      s.clock.Now(),
		})
		return []domain.Contact{}, err
	case err != nil:
		s.loaded = false
		return nil, fmt.Errorf("load contacts: %w", err)
	}
	s.cache, s.loaded = contacts, true
	return clone(contacts), nil
}

// Contacts returns the current list, loading it on first use.
func (s *Service) Contacts(ctx context.Context) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		if _, err := s.loadLocked(ctx); err != nil && !errors.Is(err, domain.ErrStorageCorrupt) {
			return nil, err
		}
	}
	return clone(s.cache), nil
}

// Add appends number and persists the list. Blank input is ignored and
// reported as added=false.
func (s *Service) Add(ctx context.Context, number string) (bool, error) {
	c := domain.Contact(number)
	if c.Blank() {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}

	updated := append(clone(s.cache), c)
	if err := s.store.SaveContacts(updated); err != nil {
		return false, fmt.Errorf("save contacts: %w", err)
	}
	s.cache = updated
	s.logger.Info("Emergency contact added", "count", len(updated))
	return true, nil
}

// Remove deletes the contact at index and persists the list.
func (s *Service) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if index < 0 || index >= len(s.cache) {
		return fmt.Errorf("%w: %d (have %d)", ErrContactIndex, index, len(s.cache))
	}

	updated := make([]domain.Contact, 0, len(s.cache)-1)
	updated = append(updated, s.cache[:index]...)
	updated = append(updated, s.cache[index+1:]...)
	if err := s.store.SaveContacts(updated); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	s.cache = updated
	s.logger.Info("Emergency contact removed", "index", index, "count", len(updated))
	return nil
}

// Reload refreshes the cache from storage after an external edit.
func (s *Service) Reload(ctx context.Context) {
	contacts, err := s.Load(ctx)
	if err != nil {
		s.logger.Warn("Reload of emergency contacts failed", "error", err)
		return
	}
	s.logger.Info("Emergency contacts reloaded", "count", len(contacts))
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	if _, err := s.loadLocked(ctx); err != nil && !errors.Is(err, domain.ErrStorageCorrupt) {
		return err
	}
	return nil
}

func clone(in []domain.Contact) []domain.Contact {
	return append([]domain.Contact{}, in...)
}

// Compile-time assertion that Service implements domain.ContactReader.
var _ domain.ContactReader = (*Service)(nil)
