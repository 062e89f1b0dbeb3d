package syscalls

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutexCreateLockUnlock(t *testing.T) {
	c := NewConcurrencyTable()
	id := c.MutexCreate()
	require.True(t, c.MutexLock(id))
	require.True(t, c.MutexUnlock(id))
}

func TestMutexOperationsOnUnknownIDFail(t *testing.T) {
	c := NewConcurrencyTable()
	assert.False(t, c.MutexLock(999))
	assert.False(t, c.MutexUnlock(999))
}

func TestSemaphoreCapacityLimitsConcurrentHolders(t *testing.T) {
	c := NewConcurrencyTable()
	id := c.SemCreate(1)

	require.True(t, c.SemWait(id))

	acquired := make(chan struct{})
	go func() {
		c.SemWait(id)
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second SemWait should block while capacity is exhausted")
	case <-time.After(50 * time.Millisecond):
	}

	c.SemPost(id)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("SemPost should release the waiting acquirer")
	}
}

func TestRWLockAllowsConcurrentReaders(t *testing.T) {
	c := NewConcurrencyTable()
	id := c.RWLockCreate()

	require.True(t, c.RWLockRLock(id))
	require.True(t, c.RWLockRLock(id))
	require.True(t, c.RWLockRUnlock(id))
	require.True(t, c.RWLockRUnlock(id))
}

func TestCondSignalWakesOneWaiter(t *testing.T) {
	c := NewConcurrencyTable()
	id := c.CondCreate()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.CondWait(id)
	}()

	time.Sleep(20 * time.Millisecond)
	require.True(t, c.CondSignal(id))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CondSignal should wake the blocked waiter")
	}
}
