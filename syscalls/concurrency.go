package syscalls

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ConcurrencyTable holds the mutex/cond/semaphore/rwlock primitives of
// §4.5's concurrency family, each addressed by a small integer handle the
// program carries on the operand stack. Semaphores are backed by
// golang.org/x/sync/semaphore.Weighted rather than a hand-rolled counting
// channel, since the pack already pulls that package in for FORK's wait
// group (see DESIGN.md).
type ConcurrencyTable struct {
	mu       sync.Mutex
	next     int32
	mutexes  map[int32]*sync.Mutex
	conds    map[int32]*condVar
	sems     map[int32]*semaphore.Weighted
	rwlocks  map[int32]*sync.RWMutex
}

type condVar struct {
	mu   sync.Mutex
	cond *sync.Cond
}

func NewConcurrencyTable() *ConcurrencyTable {
	return &ConcurrencyTable{
		mutexes: make(map[int32]*sync.Mutex),
		conds:   make(map[int32]*condVar),
		sems:    make(map[int32]*semaphore.Weighted),
		rwlocks: make(map[int32]*sync.RWMutex),
	}
}

func (t *ConcurrencyTable) allocID() int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	return t.next
}

func (t *ConcurrencyTable) MutexCreate() int32 {
	id := t.allocID()
	t.mu.Lock()
	t.mutexes[id] = &sync.Mutex{}
	t.mu.Unlock()
	return id
}

func (t *ConcurrencyTable) MutexLock(id int32) bool {
	t.mu.Lock()
	m, ok := t.mutexes[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	m.Lock()
	return true
}

func (t *ConcurrencyTable) MutexUnlock(id int32) bool {
	t.mu.Lock()
	m, ok := t.mutexes[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	m.Unlock()
	return true
}

func (t *ConcurrencyTable) MutexDestroy(id int32) {
	t.mu.Lock()
	delete(t.mutexes, id)
	t.mu.Unlock()
}

func (t *ConcurrencyTable) CondCreate() int32 {
	id := t.allocID()
	cv := &condVar{}
	cv.cond = sync.NewCond(&cv.mu)
	t.mu.Lock()
	t.conds[id] = cv
	t.mu.Unlock()
	return id
}

func (t *ConcurrencyTable) CondWait(id int32) bool {
	t.mu.Lock()
	cv, ok := t.conds[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	cv.mu.Lock()
	cv.cond.Wait()
	cv.mu.Unlock()
	return true
}

func (t *ConcurrencyTable) CondSignal(id int32) bool {
	t.mu.Lock()
	cv, ok := t.conds[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	cv.cond.Signal()
	return true
}

func (t *ConcurrencyTable) CondBroadcast(id int32) bool {
	t.mu.Lock()
	cv, ok := t.conds[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	cv.cond.Broadcast()
	return true
}

func (t *ConcurrencyTable) CondDestroy(id int32) {
	t.mu.Lock()
	delete(t.conds, id)
	t.mu.Unlock()
}

// SemCreate allocates a weighted semaphore with the given capacity.
func (t *ConcurrencyTable) SemCreate(capacity int64) int32 {
	id := t.allocID()
	t.mu.Lock()
	t.sems[id] = semaphore.NewWeighted(capacity)
	t.mu.Unlock()
	return id
}

func (t *ConcurrencyTable) SemWait(id int32) bool {
	t.mu.Lock()
	s, ok := t.sems[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	_ = s.Acquire(context.Background(), 1)
	return true
}

func (t *ConcurrencyTable) SemPost(id int32) bool {
	t.mu.Lock()
	s, ok := t.sems[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	s.Release(1)
	return true
}

func (t *ConcurrencyTable) SemDestroy(id int32) {
	t.mu.Lock()
	delete(t.sems, id)
	t.mu.Unlock()
}

func (t *ConcurrencyTable) RWLockCreate() int32 {
	id := t.allocID()
	t.mu.Lock()
	t.rwlocks[id] = &sync.RWMutex{}
	t.mu.Unlock()
	return id
}

func (t *ConcurrencyTable) RWLockRLock(id int32) bool {
	t.mu.Lock()
	l, ok := t.rwlocks[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	l.RLock()
	return true
}

func (t *ConcurrencyTable) RWLockRUnlock(id int32) bool {
	t.mu.Lock()
	l, ok := t.rwlocks[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	l.RUnlock()
	return true
}

func (t *ConcurrencyTable) RWLockWLock(id int32) bool {
	t.mu.Lock()
	l, ok := t.rwlocks[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	l.Lock()
	return true
}

func (t *ConcurrencyTable) RWLockWUnlock(id int32) bool {
	t.mu.Lock()
	l, ok := t.rwlocks[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	l.Unlock()
	return true
}

func (t *ConcurrencyTable) RWLockDestroy(id int32) {
	t.mu.Lock()
	delete(t.rwlocks, id)
	t.mu.Unlock()
}
