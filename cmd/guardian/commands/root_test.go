package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"guardian/internal/domain"
)

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}
}

func TestLoadDotEnv_SetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GUARDIAN_TEST_POLICE=112\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GUARDIAN_TEST_POLICE", "")
	os.Unsetenv("GUARDIAN_TEST_POLICE")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("GUARDIAN_TEST_POLICE"); got != "112" {
		t.Fatalf("GUARDIAN_TEST_POLICE = %q", got)
	}
}

func TestSOSExitError(t *testing.T) {
	cases := []struct {
		outcome domain.DispatchOutcome
		want    error
	}{
		{domain.OutcomeDispatched, nil},
		{domain.OutcomeSuppressed, nil},
		{domain.OutcomeNoContacts, domain.ErrNoContacts},
		{domain.OutcomeFailed, errSOSFailed},
	}
	for _, tc := range cases {
		err := sosExitError(domain.DispatchResult{Source: domain.TriggerManual, Outcome: tc.outcome})
		if !errors.Is(err, tc.want) || (tc.want == nil && err != nil) {
			t.Fatalf("%s: got %v, want %v", tc.outcome, err, tc.want)
		}
	}
}
