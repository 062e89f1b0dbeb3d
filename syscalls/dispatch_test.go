package syscalls

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watervm/vm"
)

func TestSyscallGetpidMatchesHostProcess(t *testing.T) {
	rt := NewRuntime("")
	defer rt.Close()

	stack := vm.NewStack()
	require.NoError(t, rt.Syscall(GETPID, stack))

	top, ok := stack.Pop()
	require.True(t, ok)
	n, _ := top.AsInt64()
	assert.Equal(t, int64(os.Getpid()), n)
}

func TestSyscallSetenvThenGetenv(t *testing.T) {
	rt := NewRuntime("")
	defer rt.Close()

	stack := vm.NewStack()
	stack.Push(vm.Text("FOO")) // key, pushed first
	stack.Push(vm.Text("bar")) // value, pushed last (popped first)
	require.NoError(t, rt.Syscall(SETENV, stack))
	assert.Equal(t, 0, stack.Size())

	stack.Push(vm.Text("FOO"))
	require.NoError(t, rt.Syscall(GETENV, stack))

	found, ok := stack.Pop()
	require.True(t, ok)
	n, _ := found.AsInt64()
	assert.Equal(t, int64(1), n)

	value, ok := stack.Pop()
	require.True(t, ok)
	assert.Equal(t, "bar", value.Text())
}

func TestSyscallUnknownOpcodeReturnsError(t *testing.T) {
	rt := NewRuntime("")
	defer rt.Close()
	err := rt.Syscall(0x7FFF, vm.NewStack())
	assert.Error(t, err)
}

func TestSyscallWriteThenReadThroughPipe(t *testing.T) {
	rt := NewRuntime("")
	defer rt.Close()

	stack := vm.NewStack()
	require.NoError(t, rt.Syscall(PIPE, stack))
	writeFd, ok := stack.Pop()
	require.True(t, ok)
	readFd, ok := stack.Pop()
	require.True(t, ok)

	wfd, _ := writeFd.AsInt64()
	rfd, _ := readFd.AsInt64()

	stack.Push(vm.I64(wfd))
	stack.Push(vm.Bytes([]byte("hi")))
	require.NoError(t, rt.Syscall(WRITE, stack))
	n, ok := stack.Pop()
	require.True(t, ok)
	nv, _ := n.AsInt64()
	assert.Equal(t, int64(2), nv)

	stack.Push(vm.I64(rfd))
	stack.Push(vm.I64(8))
	require.NoError(t, rt.Syscall(READ, stack))
	data, ok := stack.Pop()
	require.True(t, ok)
	assert.Equal(t, "hi", string(data.Bytes()))
}

func TestSyscallMemInfoPushesThreeCounters(t *testing.T) {
	rt := NewRuntime("")
	defer rt.Close()
	stack := vm.NewStack()
	require.NoError(t, rt.Syscall(MEMINFO, stack))
	assert.Equal(t, 3, stack.Size())
}
