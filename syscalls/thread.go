package syscalls

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ThreadTable tracks the threads THREAD_CREATE starts; the int32 ids it
// hands back to the program are what THREAD_JOIN consumes, per §4.5 and
// §5's shared-memory concurrency model.
type ThreadTable struct {
	mu      sync.Mutex
	next    int32
	threads map[int32]*threadEntry
}

type threadEntry struct {
	done chan struct{}
	exit int64
	tag  string
}

func NewThreadTable() *ThreadTable {
	return &ThreadTable{threads: make(map[int32]*threadEntry)}
}

// Spawn runs fn on a new goroutine and returns a thread id the program can
// later pass to Join. tag is a short debug-mode correlation id, surfaced
// through Snapshot for the launcher's --debug state dump, not to bytecode.
func (t *ThreadTable) Spawn(fn func() int64) int32 {
	t.mu.Lock()
	t.next++
	id := t.next
	entry := &threadEntry{done: make(chan struct{}), tag: uuid.NewString()}
	t.threads[id] = entry
	t.mu.Unlock()

	go func() {
		entry.exit = fn()
		close(entry.done)
	}()

	return id
}

// Snapshot lists the still-running threads as "tid(tag)" strings, for
// --debug's state dump (main.go's printState) to correlate a thread id
// with the uuid tag it was spawned under.
func (t *ThreadTable) Snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.threads))
	for id, entry := range t.threads {
		select {
		case <-entry.done:
			continue
		default:
		}
		out = append(out, fmt.Sprintf("%d(%s)", id, entry.tag))
	}
	return out
}

// Join blocks until thread id finishes and returns its exit value.
func (t *ThreadTable) Join(id int32) (int64, bool) {
	t.mu.Lock()
	entry, ok := t.threads[id]
	t.mu.Unlock()
	if !ok {
		return 0, false
	}
	<-entry.done
	t.mu.Lock()
	delete(t.threads, id)
	t.mu.Unlock()
	return entry.exit, true
}
