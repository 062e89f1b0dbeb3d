package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapIntTruncatesAndSignExtends(t *testing.T) {
	assert.Equal(t, int64(127), wrapInt(127, 8))
	assert.Equal(t, int64(-128), wrapInt(128, 8))
	assert.Equal(t, int64(-1), wrapInt(255, 8))
	assert.Equal(t, int64(math.MaxInt32), wrapInt(math.MaxInt32, 32))
	assert.Equal(t, int64(math.MinInt32), wrapInt(int64(math.MaxInt32)+1, 32))
}

func TestWrapIntWidth64IsIdentity(t *testing.T) {
	assert.Equal(t, int64(-1), wrapInt(-1, 64))
	assert.Equal(t, int64(math.MaxInt64), wrapInt(math.MaxInt64, 64))
}

func TestSaturateToIntClampsOutOfRange(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt8), saturateToInt(1e6, 8))
	assert.Equal(t, int64(math.MinInt8), saturateToInt(-1e6, 8))
	assert.Equal(t, int64(0), saturateToInt(math.NaN(), 32))
	assert.Equal(t, int64(42), saturateToInt(42.9, 32))
}

func TestValueAccessorsRoundTrip(t *testing.T) {
	v := I32(-7)
	n, ok := v.AsInt64()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), n)

	f := F64(3.5)
	fv, ok := f.AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 3.5, fv)

	_, ok = v.AsFloat64()
	assert.False(t, ok)

	text := Text("hello")
	assert.Equal(t, "hello", text.String())

	bs := Bytes([]byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3}, bs.Bytes())

	assert.Equal(t, "null", Null.String())
}

func TestBytesValueCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	v := Bytes(src)
	src[0] = 99
	assert.Equal(t, byte(1), v.Bytes()[0], "Bytes must defensively copy its input")
}
