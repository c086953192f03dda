package challenges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
)

// ErrChallengeNotFound is returned for an unknown challenge ID.
var ErrChallengeNotFound = errors.New("challenge not found")

// Defaults returns the seed list used when nothing is stored.
func Defaults() []domain.Challenge {
	return []domain.Challenge{
		{ID: 1, Text: "Drink 8 cups of water"},
		{ID: 2, Text: "Take a 20 min walk"},
		{ID: 3, Text: "Meditate for 10 min"},
	}
}

// Service manages wellness challenges using a backing store.
type Service struct {
	store    domain.ChallengeStore
	notifier domain.Notifier
	clock    clockwork.Clock
	logger   *slog.Logger

	mu sync.Mutex
}

// New returns a challenge service; nil clock and logger use the defaults.
func New(s domain.ChallengeStore, notifier domain.Notifier, clock clockwork.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, notifier: notifier, clock: clock, logger: logger}
}

// List returns the stored challenges, or the defaults when none are stored.
// An unreadable file is reported to the user and the defaults are returned;
// the file is replaced on the next write.
func (s *Service) List(ctx context.Context) ([]domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add appends a challenge with text. Blank text is ignored and returns
// ok=false.
func (s *Service) Add(ctx context.Context, text string) (domain.Challenge, bool, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Challenge{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load(ctx)
	if err != nil {
		return domain.Challenge{}, false, err
	}

	id := s.clock.Now().UnixMilli()
	for _, c := range list {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	c := domain.Challenge{ID: id, Text: text}
	if err := s.save(append(list, c)); err != nil {
		return domain.Challenge{}, false, err
	}
	s.logger.Info("Challenge added", "id", id)
	return c, true, nil
}

// Toggle flips the done flag of id and reports whether every challenge is
// now complete.
func (s *Service) Toggle(ctx context.Context, id int64) (allDone bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	i := index(list, id)
	if i < 0 {
		return false, fmt.Errorf("%w: %d", ErrChallengeNotFound, id)
	}
	list[i].Done = !list[i].Done
	if err := s.save(list); err != nil {
		return false, err
	}
	return domain.AllDone(list), nil
}

// Delete removes id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := index(list, id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrChallengeNotFound, id)
	}
	return s.save(append(list[:i], list[i+1:]...))
}

func (s *Service) load(ctx context.Context) ([]domain.Challenge, error) {
	list, ok, err := s.store.LoadChallenges()
	switch {
	case errors.Is(err, domain.ErrStorageCorrupt):
		s.logger.Error("Challenges unreadable", "error", err)
		s.notifier.Notify(ctx, domain.Notice{
			Level:   domain.NoticeError,
			Title:   "Storage Error",
			Message: "Saved challenges could not be read. Starting over.",
			At:      s.clock.Now(),
		})
		return Defaults(), nil
	case err != nil:
		return nil, fmt.Errorf("load challenges: %w", err)
	case !ok:
		return Defaults(), nil
	}
	return list, nil
}

func (s *Service) save(list []domain.Challenge) error {
	if err := s.store.SaveChallenges(list); err != nil {
		return fmt.Errorf("save challenges: %w", err)
	}
	return nil
}

func index(list []domain.Challenge, id int64) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

