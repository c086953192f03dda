package store

import (
	"sync"

	"guardian/internal/domain"
)

// ChallengesKey is the storage key of the wellness challenge list.
const ChallengesKey = "challenges"

// ChallengeFileStore persists wellness challenges.
type ChallengeFileStore struct {
	kv *KeyValue
	mu sync.Mutex
}

// NewChallengeFileStore returns a ChallengeFileStore backed by kv.
func NewChallengeFileStore(kv *KeyValue) *ChallengeFileStore {
	return &ChallengeFileStore{kv: kv}
}

// LoadChallenges returns the stored list and whether one was present.
func (s *ChallengeFileStore) LoadChallenges() ([]domain.Challenge, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var challenges []domain.Challenge
	ok, err := s.kv.GetJSON(ChallengesKey, &challenges)
	if err != nil || !ok {
		return nil, false, err
	}
	if challenges == nil {
		challenges = []domain.Challenge{}
	}
	return challenges, true, nil
}

// SaveChallenges replaces the stored list.
func (s *ChallengeFileStore) SaveChallenges(challenges []domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if challenges == nil {
		challenges = []domain.Challenge{}
	}
	return s.kv.SetJSON(ChallengesKey, challenges)
}

// Compile-time assertion that ChallengeFileStore implements domain.ChallengeStore.
var _ domain.ChallengeStore = (*ChallengeFileStore)(nil)
