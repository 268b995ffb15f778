package domain_training

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat16BitsKnownValues(t *testing.T) {
	cases := []struct {
		in   float32
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{-2, 0xc000},
		{0.5, 0x3800},
		{65504, 0x7bff},                        // largest normal binary16
		{65520, 0x7c00},                        // overflow saturates to +Inf
		{float32(math.Inf(-1)), 0xfc00},        // -Inf
		{5.9604645e-8, 0x0001},                 // smallest subnormal
		{1e-10, 0x0000},                        // flushes to zero
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Float16Bits(tc.in), "value %v", tc.in)
	}
}

func TestFloat16BitsNaN(t *testing.T) {
	h := Float16Bits(float32(math.NaN()))
	assert.Equal(t, uint16(0x7c00), h&0x7c00)
	assert.NotZero(t, h&0x03ff)
}

func TestFloat16RoundTripRepresentable(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 0.5, 1.5, -3.25, 1024, -0.125} {
		assert.Equal(t, v, Float16Value(Float16Bits(v)))
	}
}

func TestHalfIsLossy(t *testing.T) {
	// 1/3 is not representable in 11 bits of mantissa
	v := float32(1.0 / 3.0)
	back := Float16Value(Float16Bits(v))
	assert.NotEqual(t, v, back)
	assert.InDelta(t, float64(v), float64(back), 1e-3)
}

func TestTensorHalf(t *testing.T) {
	tensor := Tensor{Shape: []int64{2, 3}, Data: []float32{1, 2, 3, 4, 5, 6}}
	half := tensor.Half()

	assert.Equal(t, []int64{2, 3}, half.Shape)
	assert.Equal(t, 6, half.NumElements())
	assert.Equal(t, tensor.Data, half.Values())

	// the shape slice must be independent of the source
	tensor.Shape[0] = 99
	assert.Equal(t, int64(2), half.Shape[0])
}
