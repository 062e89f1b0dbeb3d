package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack()
	assert.True(t, s.IsEmpty())

	s.Push(I32(1))
	s.Push(I32(2))
	s.Push(I32(3))
	assert.Equal(t, 3, s.Size())

	top, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, int32(3), top.I32())

	peeked, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, int32(2), peeked.I32())
	assert.Equal(t, 2, s.Size(), "Peek must not remove")
}

func TestStackPopOnEmptyFails(t *testing.T) {
	s := NewStack()
	_, ok := s.Pop()
	assert.False(t, ok)
}

func TestLocalsGrowsWithNullFill(t *testing.T) {
	l := NewLocals()
	l.Store(3, I64(42))
	require.Equal(t, 4, l.Len())

	for i := 0; i < 3; i++ {
		assert.Equal(t, KindNull, l.Load(i).Kind)
	}
	assert.Equal(t, int64(42), l.Load(3).I64())
}

func TestLocalsLoadOutOfRangeIsNull(t *testing.T) {
	l := NewLocals()
	assert.Equal(t, Null, l.Load(10))
}

func TestLocalsCompactTrimsTrailingAndLeadingNulls(t *testing.T) {
	l := NewLocals()
	l.Store(4, I32(7))
	l.Compact()
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, int32(7), l.Load(0).I32())
}

func TestCallStackRootFrameIsSentinel(t *testing.T) {
	c := NewCallStack()
	assert.True(t, c.IsEmpty())
	c.Push(&Frame{ReturnPC: ProgramEnd, Locals: NewLocals(), Ctx: MethodContext{Name: "root"}})
	assert.Equal(t, 1, c.Depth())

	f, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, ProgramEnd, f.ReturnPC)
}
