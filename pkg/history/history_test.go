package history_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	job := &history.Job{
		Template: "ticket",
		Target:   "192.168.1.50:9100",
		Status:   history.StatusPrinted,
		Chars:    120,
	}
	require.NoError(t, store.Record(ctx, job))
	assert.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	got, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "ticket", got.Template)
	assert.Equal(t, "192.168.1.50:9100", got.Target)
	assert.Equal(t, history.StatusPrinted, got.Status)
	assert.Empty(t, got.Error)
	assert.Equal(t, 120, got.Chars)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
}

func TestRecordFailedJobKeepsError(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	job := &history.Job{
		Template: "ticket",
		Target:   "192.168.1.50:9100",
		Status:   history.StatusFailed,
		Error:    "[PRINT_TRANSPORT] Cannot reach printer at 192.168.1.50:9100",
	}
	require.NoError(t, store.Record(ctx, job))

	got, err := store.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, history.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "PRINT_TRANSPORT")
}

func TestRecordRequiresTemplate(t *testing.T) {
	store := openStore(t)

	err := store.Record(context.Background(), &history.Job{Status: history.StatusPrinted})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHistoryWrite))
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	base := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"oldest", "middle", "newest"} {
		job := &history.Job{
			Template:  name,
			Target:    "printer",
			Status:    history.StatusPrinted,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.Record(ctx, job))
	}

	jobs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "newest", jobs[0].Template)
	assert.Equal(t, "oldest", jobs[2].Template)

	jobs, err = store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "newest", jobs[0].Template)
}

func TestGetMissing(t *testing.T) {
	store := openStore(t)

	_, err := store.Get(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	for i := 0; i < 3; i++ {
		job := &history.Job{Template: "ticket", Target: "printer", Status: history.StatusPrinted}
		require.NoError(t, store.Record(ctx, job))
	}

	count, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	jobs, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "history.db")

	store, err := history.Open(path)
	require.NoError(t, err)
	defer store.Close()

	job := &history.Job{Template: "ticket", Target: "printer", Status: history.StatusPrinted}
	require.NoError(t, store.Record(context.Background(), job))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
