package syscalls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watervm/vm"
)

func TestEpollCtlDelOnUnregisteredFdAborts(t *testing.T) {
	rt := NewRuntime("")
	defer rt.Close()

	stack := vm.NewStack()
	require.NoError(t, rt.Syscall(EPOLL_CREATE, stack))
	epfd, ok := stack.Pop()
	require.True(t, ok)
	id, _ := epfd.AsInt64()

	require.NoError(t, rt.Syscall(PIPE, stack))
	writeFd, ok := stack.Pop()
	require.True(t, ok)
	readFd, ok := stack.Pop()
	require.True(t, ok)
	rfd, _ := readFd.AsInt64()
	_ = writeFd

	// add then delete once: both succeed.
	stack.Push(vm.I64(id))
	stack.Push(vm.I64(EpollCtlAdd))
	stack.Push(vm.I64(rfd))
	stack.Push(vm.I64(1))
	require.NoError(t, rt.Syscall(EPOLL_CTL, stack))
	result, ok := stack.Pop()
	require.True(t, ok)
	n, _ := result.AsInt64()
	assert.Equal(t, int64(0), n)

	stack.Push(vm.I64(id))
	stack.Push(vm.I64(EpollCtlDel))
	stack.Push(vm.I64(rfd))
	stack.Push(vm.I64(0))
	require.NoError(t, rt.Syscall(EPOLL_CTL, stack))
	result, ok = stack.Pop()
	require.True(t, ok)
	n, _ = result.AsInt64()
	assert.Equal(t, int64(0), n)

	// a second DEL on the now-unregistered fd is a precondition violation
	// and must abort rather than set errno and keep running.
	stack.Push(vm.I64(id))
	stack.Push(vm.I64(EpollCtlDel))
	stack.Push(vm.I64(rfd))
	stack.Push(vm.I64(0))
	err := rt.Syscall(EPOLL_CTL, stack)
	assert.ErrorIs(t, err, ErrEpollFdNotRegistered)
}
