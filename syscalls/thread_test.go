package syscalls

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadJoinReturnsSpawnedValue(t *testing.T) {
	tt := NewThreadTable()
	id := tt.Spawn(func() int64 { return 42 })
	v, ok := tt.Join(id)
	require.True(t, ok)
	assert.Equal(t, int64(42), v)
}

func TestThreadJoinOnUnknownIDFails(t *testing.T) {
	tt := NewThreadTable()
	_, ok := tt.Join(999)
	assert.False(t, ok)
}

func TestThreadSnapshotListsOnlyStillRunningThreads(t *testing.T) {
	tt := NewThreadTable()
	release := make(chan struct{})
	id := tt.Spawn(func() int64 {
		<-release
		return 0
	})

	assert.Eventually(t, func() bool {
		snap := tt.Snapshot()
		return len(snap) == 1 && snap[0] != ""
	}, time.Second, 10*time.Millisecond)

	close(release)
	_, ok := tt.Join(id)
	require.True(t, ok)
	assert.Empty(t, tt.Snapshot())
}
