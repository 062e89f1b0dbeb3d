package syscalls

import (
	"io"
	"os"
	"sync"
)

// Channel is the minimal contract every FD table entry must satisfy:
// regular files, pipes, sockets and the standard streams are all
// read/write/close-able, per §3's "FD table... readable, writable,
// seekable, selectable" description. The optional richer behaviors are
// expressed as the Seeker/Pathed/RawFDer/NonBlocker interfaces below,
// type-asserted by the code that needs them (SEEK, STAT/FSTAT, the epoll
// registry, SET_NONBLOCK).
type Channel interface {
	io.ReadWriteCloser
}

// Seeker is implemented by channels backing regular files.
type Seeker interface {
	Seek(offset int64, whence int) (int64, error)
}

// Pathed is implemented by channels opened from a filesystem path, so
// FSTAT/STAT-like calls can re-stat the underlying path.
type Pathed interface {
	Path() string
}

// RawFDer is implemented by channels backed by a real OS file descriptor,
// so the epoll/select registries can register them with the kernel.
type RawFDer interface {
	RawFD() int
}

// NonBlocker is implemented by channels that support toggling O_NONBLOCK.
type NonBlocker interface {
	SetNonblock(on bool) error
}

type fileChannel struct {
	*os.File
	path string
}

func (f *fileChannel) Path() string  { return f.path }
func (f *fileChannel) RawFD() int    { return int(f.File.Fd()) }
func (f *fileChannel) SetNonblock(on bool) error {
	return setNonblock(int(f.File.Fd()), on)
}

// FDTable maps integer file descriptors to underlying Channels. Fresh fds
// start at 3; 0/1/2 are pre-registered to the process's standard streams,
// per §3. All operations are safe for concurrent use by multiple VM
// threads, per §5's "shared-resource policy".
type FDTable struct {
	mu      sync.RWMutex
	next    int
	entries map[int]Channel
	paths   map[int]string
}

func NewFDTable() *FDTable {
	t := &FDTable{
		next:    3,
		entries: make(map[int]Channel),
		paths:   make(map[int]string),
	}
	t.entries[0] = &fileChannel{File: os.Stdin, path: "/dev/stdin"}
	t.entries[1] = &fileChannel{File: os.Stdout, path: "/dev/stdout"}
	t.entries[2] = &fileChannel{File: os.Stderr, path: "/dev/stderr"}
	return t
}

// Register assigns a fresh fd to channel and returns it.
func (t *FDTable) Register(ch Channel) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.next
	t.next++
	t.entries[fd] = ch
	return fd
}

// RegisterPath is like Register but remembers the filesystem path the
// channel was opened from, for Path()-less channels (e.g. raw pipes have
// none; regular files carry it via fileChannel already).
func (t *FDTable) RegisterPath(ch Channel, path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	fd := t.next
	t.next++
	t.entries[fd] = ch
	t.paths[fd] = path
	return fd
}

func (t *FDTable) Get(fd int) (Channel, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ch, ok := t.entries[fd]
	return ch, ok
}

// Replace swaps the channel backing fd, used by CONNECT to upgrade a bare
// fd into a connected client socket, per §4.5.
func (t *FDTable) Replace(fd int, ch Channel) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[fd] = ch
}

// Dup returns a new fd aliasing the same underlying channel as oldfd.
func (t *FDTable) Dup(oldfd int) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, ok := t.entries[oldfd]
	if !ok {
		return 0, false
	}
	fd := t.next
	t.next++
	t.entries[fd] = ch
	return fd, true
}

// Dup2 makes newfd alias the channel at oldfd, closing whatever newfd
// previously held.
func (t *FDTable) Dup2(oldfd, newfd int) bool {
	t.mu.Lock()
	ch, ok := t.entries[oldfd]
	if !ok {
		t.mu.Unlock()
		return false
	}
	old, existed := t.entries[newfd]
	t.entries[newfd] = ch
	t.mu.Unlock()

	if existed && old != ch {
		old.Close()
	}
	return true
}

// Close releases the channel backing fd.
func (t *FDTable) Close(fd int) error {
	t.mu.Lock()
	ch, ok := t.entries[fd]
	if ok {
		delete(t.entries, fd)
		delete(t.paths, fd)
	}
	t.mu.Unlock()
	if !ok {
		return os.ErrClosed
	}
	return ch.Close()
}

// CloseAll releases every registered channel, run on engine teardown.
func (t *FDTable) CloseAll() {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[int]Channel)
	t.mu.Unlock()
	for fd, ch := range entries {
		if fd > 2 {
			ch.Close()
		}
	}
}

// pathOf returns the best-known filesystem path for fd, used by STAT-like
// handlers. Empty string if unknown.
func (t *FDTable) pathOf(fd int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p, ok := t.paths[fd]; ok {
		return p
	}
	if ch, ok := t.entries[fd]; ok {
		if p, ok := ch.(Pathed); ok {
			return p.Path()
		}
	}
	return ""
}
