package store_test

import (
	"context"
	"testing"
	"time"

	"guardian/internal/domain"
	"guardian/internal/store"
)

func TestWatcher_ReportsExternalWrite(t *testing.T) {
	home := t.TempDir()
	kv := store.NewKeyValue(home, nil)

	changed := make(chan string, 4)
	w, err := store.NewWatcher(store.WatcherConfig{
		Dir:           home,
		Files:         []string{kv.FileName(store.ContactsKey)},
		DebounceDelay: 20 * time.Millisecond,
	}, func(file string) { changed <- file })
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Close()

	// Another process would use its own store instance.
	if err := store.NewContactFileStore(kv).SaveContacts([]domain.Contact{"111"}); err != nil {
		t.Fatalf("save contacts: %v", err)
	}

	select {
	case got := <-changed:
		if got != "emergencyContacts.json" {
			t.Fatalf("got change for %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
