package challenges_test

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
	"guardian/internal/services/challenges"
	"guardian/internal/store"
)

func newService(t *testing.T) (*challenges.Service, *store.ChallengeFileStore, *clockwork.FakeClock) {
	t.Helper()
	s, kv, _, clock := newServiceWithNotices(t)
	return s, store.NewChallengeFileStore(kv), clock
}

func newServiceWithNotices(t *testing.T) (*challenges.Service, *store.KeyValue, *notify.Recorder, *clockwork.FakeClock) {
	t.Helper()
	kv := store.NewKeyValue(t.TempDir(), nil)
	rec := notify.NewRecorder(0)
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1_700_000_000_000))
	return challenges.New(store.NewChallengeFileStore(kv), rec, clock, nil), kv, rec, clock
}

func TestList_SeedsDefaults(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newService(t)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, challenges.Defaults(), list)

	_, ok, err := st.LoadChallenges()
	require.NoError(t, err)
	assert.False(t, ok, "listing must not persist the seed")
}

func TestAdd_AssignsTimestampID(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newService(t)

	c, ok, err := s.Add(ctx, "Stretch for 5 min")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1_700_000_000_000), c.ID)

	stored, found, err := st.LoadChallenges()
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, stored, 4)
	assert.Equal(t, "Stretch for 5 min", stored[3].Text)
}

func TestAdd_SameInstantGetsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	a, _, err := s.Add(ctx, "one")
	require.NoError(t, err)
	b, _, err := s.Add(ctx, "two")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAdd_BlankIgnored(t *testing.T) {
	ctx := context.Background()
	s, st, _ := newService(t)

	_, ok, err := s.Add(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := st.LoadChallenges()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestToggle_ReportsAllDone(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	for _, id := range []int64{1, 2} {
		done, err := s.Toggle(ctx, id)
		require.NoError(t, err)
		assert.False(t, done)
	}
	done, err := s.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = s.Toggle(ctx, 3)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestToggleAndDelete_UnknownID(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	_, err := s.Toggle(ctx, 99)
	assert.ErrorIs(t, err, challenges.ErrChallengeNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 99), challenges.ErrChallengeNotFound)
}

func TestDelete_Persists(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)

	require.NoError(t, s.Delete(ctx, 2))
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)
}

func TestDelete_LastLeavesEmptyList(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newService(t)
	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, s.Delete(ctx, id))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_CorruptFileFallsBackAndRecovers(t *testing.T) {
	ctx := context.Background()
	s, kv, rec, clock := newServiceWithNotices(t)
	require.NoError(t, os.WriteFile(kv.Path(store.ChallengesKey), []byte("{not json"), 0o600))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, challenges.Defaults(), list)
	assert.Equal(t, []string{"Storage Error"}, rec.Titles())
	assert.Equal(t, domain.NoticeError, rec.Notices()[0].Level)
	assert.Equal(t, clock.Now(), rec.Notices()[0].At)

	_, ok, err := s.Add(ctx, "walk")
	require.NoError(t, err)
	require.True(t, ok)

	stored, found, err := store.NewChallengeFileStore(kv).LoadChallenges()
	require.NoError(t, err, "the corrupt file is replaced on the next write")
	require.True(t, found)
	require.Len(t, stored, 4)
	assert.Equal(t, "walk", stored[3].Text)
}
