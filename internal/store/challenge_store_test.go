package store_test

import (
	"reflect"
	"testing"

	"guardian/internal/domain"
	"guardian/internal/store"
)

func TestChallenges_NotStored(t *testing.T) {
	s := store.NewChallengeFileStore(store.NewKeyValue(t.TempDir(), nil))

	got, ok, err := s.LoadChallenges()
	if err != nil {
		t.Fatalf("load challenges: %v", err)
	}
	if ok || got != nil {
		t.Fatalf("want nothing stored, got ok=%v %v", ok, got)
	}
}

func TestChallenges_SaveLoad_RoundTrip(t *testing.T) {
	s := store.NewChallengeFileStore(store.NewKeyValue(t.TempDir(), nil))

	want := []domain.Challenge{
		{ID: 1, Text: "Drink 8 cups of water", Done: true},
		{ID: 1700000000000, Text: "Stretch", Done: false},
	}
	if err := s.SaveChallenges(want); err != nil {
		t.Fatalf("save challenges: %v", err)
	}
	got, ok, err := s.LoadChallenges()
	if err != nil {
		t.Fatalf("load challenges: %v", err)
	}
	if !ok {
		t.Fatal("expected stored challenges")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestChallenges_EmptyListIsStored(t *testing.T) {
	s := store.NewChallengeFileStore(store.NewKeyValue(t.TempDir(), nil))

	if err := s.SaveChallenges(nil); err != nil {
		t.Fatalf("save challenges: %v", err)
	}
	got, ok, err := s.LoadChallenges()
	if err != nil {
		t.Fatalf("load challenges: %v", err)
	}
	if !ok || len(got) != 0 {
		t.Fatalf("want stored empty list, got ok=%v %v", ok, got)
	}
}
