package contacts_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/domain"
	"guardian/internal/notify"
	"guardian/internal/services/contacts"
	"guardian/internal/store"
)

func newService(t *testing.T) (*contacts.Service, *store.KeyValue, *notify.Recorder) {
	t.Helper()
	kv := store.NewKeyValue(t.TempDir(), nil)
	rec := notify.NewRecorder(0)
	return contacts.New(store.NewContactFileStore(kv), rec, nil, nil), kv, rec
}

func TestAdd_BlankInputIsIgnored(t *testing.T) {
	ctx := context.Background()
	svc, kv, _ := newService(t)

	for _, in := range []string{"", "   ", "\t\n"} {
		added, err := svc.Add(ctx, in)
		require.NoError(t, err)
		assert.False(t, added, "input %q", in)
	}

	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	_, statErr := os.Stat(kv.Path(store.ContactsKey))
	assert.True(t, os.IsNotExist(statErr), "blank input must not write storage")
}

func TestAdd_AppendsAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, kv, _ := newService(t)

	added, err := svc.Add(ctx, "555-1234")
	require.NoError(t, err)
	assert.True(t, added)

	// A second service over the same storage sees the write.
	other := contacts.New(store.NewContactFileStore(kv), notify.NewRecorder(0), nil, nil)
	got, err := other.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{"555-1234"}, got)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	for _, n := range []string{"111", "222", "333"} {
		_, err := svc.Add(ctx, n)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Remove(ctx, 1))
	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{"111", "333"}, got)
}

func TestRemove_OutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	_, err := svc.Add(ctx, "111")
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 5} {
		assert.ErrorIs(t, svc.Remove(ctx, idx), contacts.ErrContactIndex)
	}
	got, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{"111"}, got)
}

func TestLoad_CorruptStartsEmptyAndNotifies(t *testing.T) {
	ctx := context.Background()
	svc, kv, rec := newService(t)
	require.NoError(t, os.WriteFile(kv.Path(store.ContactsKey), []byte("{not json"), 0o600))

	got, err := svc.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageCorrupt)
	assert.Empty(t, got)
	assert.Equal(t, []string{"Storage Error"}, rec.Titles())

	// The dispatcher's read path sees an empty list rather than an error.
	list, err := svc.Contacts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Adding replaces the corrupt file.
	_, err = svc.Add(ctx, "999")
	require.NoError(t, err)
	got, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{"999"}, got)
}

func TestLoad_CorruptNoticeUsesClock(t *testing.T) {
	ctx := context.Background()
	kv := store.NewKeyValue(t.TempDir(), nil)
	rec := notify.NewRecorder(0)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	svc := contacts.New(store.NewContactFileStore(kv), rec, clock, nil)
	require.NoError(t, os.MkdirAll(kv.Dir(), 0o700))
	require.NoError(t, os.WriteFile(kv.Path(store.ContactsKey), []byte("{not json"), 0o600))

	_, err := svc.Load(ctx)
	require.ErrorIs(t, err, domain.ErrStorageCorrupt)

	notices := rec.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, clock.Now(), notices[0].At)
}

func TestReload_PicksUpExternalEdit(t *testing.T) {
	ctx := context.Background()
	svc, kv, _ := newService(t)
	_, err := svc.Contacts(ctx)
	require.NoError(t, err)

	require.NoError(t, store.NewContactFileStore(kv).SaveContacts([]domain.Contact{"777"}))
	svc.Reload(ctx)

	got, err := svc.Contacts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{"777"}, got)
}
