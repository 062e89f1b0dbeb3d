package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareBranchTakesBranchWhenTrue(t *testing.T) {
	// 0: push 5
	// 1: push 5
	// 2: CE -> 5 (branch taken since 5==5)
	// 3: push -1   (skipped)
	// 4: halt
	// 5: push 1    (branch target)
	// 6: halt
	program := []string{
		line(OpI32Push, 5),
		line(OpI32Push, 5),
		line(OpI32Ce, 5),
		line(OpI32Push, -1),
		line(OpHalt),
		line(OpI32Push, 1),
		line(OpHalt),
	}
	e := NewEngine(nil)
	require.NoError(t, e.Execute(program))
	top, ok := e.Stack.Peek()
	require.True(t, ok)
	assert.Equal(t, int32(1), top.I32())
}

func TestCompareBranchFallsThroughWhenFalse(t *testing.T) {
	program := []string{
		line(OpI32Push, 5),
		line(OpI32Push, 6),
		line(OpI32Ce, 5),
		line(OpI32Push, -1),
		line(OpHalt),
		line(OpI32Push, 1),
		line(OpHalt),
	}
	e := NewEngine(nil)
	require.NoError(t, e.Execute(program))
	top, ok := e.Stack.Peek()
	require.True(t, ok)
	assert.Equal(t, int32(-1), top.I32())
}

func TestFloatCompareBranchNaNNeverOrders(t *testing.T) {
	d := NewDispatcher(nil)
	stack := NewStack()
	stack.Push(F64(math.NaN()))
	stack.Push(F64(1.0))
	nextPC, err := d.Handle(OpF64Cg, []string{"99"}, 0, stack, NewLocals(), NewCallStack())
	require.NoError(t, err)
	assert.Equal(t, int32(0), nextPC, "NaN comparisons must fall through, never branch")
}

// TestLoopSumsWithBranch sums 0..4 into local 0 using a counting loop
// driven entirely by CGE/JUMP, exercising branch-taken, branch-fallthrough
// and backward jumps together.
func TestLoopSumsWithBranch(t *testing.T) {
	program := []string{
		line(OpI32Push, 0), // 0:  sum = 0
		line(OpStore, 0),   // 1
		line(OpI32Push, 0), // 2:  i = 0
		line(OpStore, 1),   // 3
		line(OpLoad, 1),    // 4:  loop: load i
		line(OpI32Push, 5), // 5
		line(OpI32Cge, 16), // 6:  if i >= 5 goto end
		line(OpLoad, 0),    // 7
		line(OpLoad, 1),    // 8
		line(OpI32Add),     // 9:  sum + i
		line(OpStore, 0),   // 10: sum = sum + i
		line(OpLoad, 1),    // 11
		line(OpI32Push, 1), // 12
		line(OpI32Add),     // 13: i + 1
		line(OpStore, 1),   // 14: i = i + 1
		line(OpJump, 4),    // 15: goto loop
		line(OpHalt),       // 16: end
	}
	e := NewEngine(nil)
	require.NoError(t, e.Execute(program))

	_, ok := e.Stack.Peek()
	assert.False(t, ok, "HALT leaves nothing pushed; the result lives in locals")
	assert.Equal(t, int32(10), e.rootLocals.Load(0).I32(), "sum of 0..4 must be 10")
}

func TestConvertValueSaturatesFloatToInt(t *testing.T) {
	got := convertValue(F64(1e20), KindI32)
	assert.Equal(t, int32(math.MaxInt32), got.I32())
}

func TestConvertValueWidensIntToFloatExactly(t *testing.T) {
	got := convertValue(I32(-7), KindF64)
	assert.Equal(t, -7.0, got.F64())
}

func TestConvertValueNarrowsIntByTruncatingBits(t *testing.T) {
	got := convertValue(I32(300), KindI8) // 300 & 0xFF == 44
	assert.Equal(t, int8(44), got.I8())
}

func TestPushTextPutsStringLiteralOnStack(t *testing.T) {
	program := []string{
		line(OpPushText, `"Hello World"`),
		line(OpHalt),
	}
	e := NewEngine(nil)
	require.NoError(t, e.Execute(program))
	top, ok := e.Stack.Peek()
	require.True(t, ok)
	assert.Equal(t, "Hello World", top.Text())
}

func TestPushBytesPutsByteLiteralOnStack(t *testing.T) {
	program := []string{
		line(OpPushBytes, `"hi"`),
		line(OpHalt),
	}
	e := NewEngine(nil)
	require.NoError(t, e.Execute(program))
	top, ok := e.Stack.Peek()
	require.True(t, ok)
	assert.Equal(t, []byte("hi"), top.Bytes())
}

func TestPushTextRejectsUnquotedLiteral(t *testing.T) {
	d := NewDispatcher(nil)
	_, err := d.Handle(OpPushText, []string{"unquoted"}, 0, NewStack(), NewLocals(), NewCallStack())
	assert.Error(t, err)
}

func TestExecuteRunsConversionOpcode(t *testing.T) {
	d := NewDispatcher(nil)
	stack := NewStack()
	stack.Push(I64(3000000000)) // too large for int32
	convI64ToI32 := convOpcode[tL][tI]
	_, err := d.Handle(convI64ToI32, nil, 0, stack, NewLocals(), NewCallStack())
	require.NoError(t, err)
	top, ok := stack.Peek()
	require.True(t, ok)
	assert.Equal(t, int32(-1294967296), top.I32(), "narrowing wraps, it does not saturate")
}
