package syscalls

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// ErrEpollFdNotRegistered is returned by Ctl when MOD or DEL names an fd
// that was never added to this epoll instance. Per §7 this is a syscall
// precondition violation (kind 4, fatal) rather than an absorbable OS
// error, so callers must propagate it instead of routing it to errno.
var ErrEpollFdNotRegistered = errors.New("epoll_ctl: fd not registered with this epoll instance")

// EpollTable resolves SELECT/EPOLL_CREATE/EPOLL_CTL/EPOLL_WAIT/IO_WAIT
// against real kernel epoll via golang.org/x/sys/unix, grounded on the
// grounding repo's convention of wrapping a syscall-heavy subsystem
// behind a small registry (its device bus wrapping port reads/writes).
type EpollTable struct {
	mu    sync.Mutex
	epfds map[int32]int
	fds   *FDTable
}

func NewEpollTable(fds *FDTable) *EpollTable {
	return &EpollTable{epfds: make(map[int32]int), fds: fds}
}

func (e *EpollTable) Create() (int32, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return 0, err
	}
	e.mu.Lock()
	id := int32(len(e.epfds) + 1)
	e.epfds[id] = epfd
	e.mu.Unlock()
	return id, nil
}

// Ctl applies op (EpollCtlAdd/Mod/Del) to fd's events on epoll instance id.
// fd must be backed by a RawFDer channel — in-process pipes and sockets
// both satisfy this through *fileChannel/*socketChannel's os.File/net.Conn
// file descriptors.
func (e *EpollTable) Ctl(id int32, op int, fd int, events uint32) error {
	e.mu.Lock()
	epfd, ok := e.epfds[id]
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown epoll instance %d", id)
	}

	ch, ok := e.fds.Get(fd)
	if !ok {
		return unix.EBADF
	}
	raw, ok := ch.(RawFDer)
	if !ok {
		return fmt.Errorf("fd %d has no raw descriptor", fd)
	}

	var kop int
	switch op {
	case EpollCtlAdd:
		kop = unix.EPOLL_CTL_ADD
	case EpollCtlMod:
		kop = unix.EPOLL_CTL_MOD
	case EpollCtlDel:
		kop = unix.EPOLL_CTL_DEL
	default:
		return fmt.Errorf("unknown epoll_ctl op %d", op)
	}

	ev := &unix.EpollEvent{Events: events, Fd: int32(raw.RawFD())}
	if err := unix.EpollCtl(epfd, kop, raw.RawFD(), ev); err != nil {
		if errors.Is(err, unix.ENOENT) && kop != unix.EPOLL_CTL_ADD {
			return ErrEpollFdNotRegistered
		}
		return err
	}
	return nil
}

// Wait blocks up to timeoutMs (negative = forever) and returns the ready
// fds' raw descriptor numbers.
func (e *EpollTable) Wait(id int32, timeoutMs int) ([]int32, error) {
	e.mu.Lock()
	epfd, ok := e.epfds[id]
	e.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown epoll instance %d", id)
	}

	events := make([]unix.EpollEvent, 64)
	n, err := unix.EpollWait(epfd, events, timeoutMs)
	if err != nil {
		return nil, err
	}
	ready := make([]int32, n)
	for i := 0; i < n; i++ {
		ready[i] = events[i].Fd
	}
	return ready, nil
}

// IOWait is a one-shot convenience wrapping Create+Ctl(ADD)+Wait for a
// single fd, matching the "wait until fd is readable or writable" shape
// that SELECT also offers.
func (e *EpollTable) IOWait(fd int, wantWrite bool, timeoutMs int) (bool, error) {
	id, err := e.Create()
	if err != nil {
		return false, err
	}
	events := uint32(unix.EPOLLIN)
	if wantWrite {
		events = uint32(unix.EPOLLOUT)
	}
	if err := e.Ctl(id, EpollCtlAdd, fd, events); err != nil {
		return false, err
	}
	ready, err := e.Wait(id, timeoutMs)
	return len(ready) > 0, err
}

// Select offers the traditional "poll a set of fds for readability"
// primitive on top of the same epoll machinery, for programs using the
// SELECT opcode rather than the EPOLL_* family directly.
func (e *EpollTable) Select(fdsIn []int, timeout time.Duration) ([]int, error) {
	id, err := e.Create()
	if err != nil {
		return nil, err
	}
	for _, fd := range fdsIn {
		if err := e.Ctl(id, EpollCtlAdd, fd, uint32(unix.EPOLLIN)); err != nil {
			return nil, err
		}
	}
	ready, err := e.Wait(id, int(timeout.Milliseconds()))
	if err != nil {
		return nil, err
	}
	out := make([]int, len(ready))
	for i, r := range ready {
		out[i] = int(r)
	}
	return out, nil
}
