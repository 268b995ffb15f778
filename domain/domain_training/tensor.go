package domain_training

import (
	"encoding/binary"
	"math"
)

// Tensor is a dense float32 tensor as produced by the training run.
type Tensor struct {
	Shape []int64   `bson:"shape"`
	Data  []float32 `bson:"data"`
}

// HalfTensor is the packaged half-precision form. Data holds IEEE 754
// binary16 values, little-endian, in row-major order.
type HalfTensor struct {
	Shape []int64 `bson:"shape"`
	Data  []byte  `bson:"data"`
}

// Half converts the tensor to half precision. The conversion is lossy and
// irreversible: values outside the binary16 range saturate to ±Inf and
// small values flush toward zero.
func (t Tensor) Half() HalfTensor {
	out := HalfTensor{
		Shape: append([]int64(nil), t.Shape...),
		Data:  make([]byte, 2*len(t.Data)),
	}
	for i, v := range t.Data {
		binary.LittleEndian.PutUint16(out.Data[2*i:], Float16Bits(v))
	}
	return out
}

// NumElements returns the element count implied by the shape.
func (t HalfTensor) NumElements() int {
	return len(t.Data) / 2
}

// Values decodes the packed binary16 payload back to float32, mainly for
// inspection and tests.
func (t HalfTensor) Values() []float32 {
	vals := make([]float32, t.NumElements())
	for i := range vals {
		vals[i] = Float16Value(binary.LittleEndian.Uint16(t.Data[2*i:]))
	}
	return vals
}

// Float16Bits converts a float32 to IEEE 754 binary16 bits with
// round-to-nearest-even, matching the framework's .half() semantics.
func Float16Bits(f float32) uint16 {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & 0x8000
	exp := int32(b>>23) & 0xff
	mant := b & 0x7fffff

	switch {
	case exp == 0xff: // Inf or NaN
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	case exp > 142: // overflow -> Inf
		return sign | 0x7c00
	case exp >= 113: // normal range
		h := sign | uint16((exp-112)<<10) | uint16(mant>>13)
		// round to nearest even on the 13 dropped bits
		if mant&0x1fff > 0x1000 || (mant&0x1fff == 0x1000 && h&1 == 1) {
			h++
		}
		return h
	case exp >= 103: // subnormal
		mant |= 0x800000
		shift := uint32(126 - exp)
		h := sign | uint16(mant>>shift)
		rb := uint32(1) << (shift - 1)
		if mant&rb != 0 && (mant&(rb-1) != 0 || h&1 == 1) {
			h++
		}
		return h
	case exp == 102: // just below the smallest subnormal ulp
		if mant != 0 {
			return sign | 1
		}
		return sign
	default: // underflow -> signed zero
		return sign
	}
}

// Float16Value expands binary16 bits back to float32.
func Float16Value(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h & 0x3ff)

	switch {
	case exp == 0x1f:
		if mant != 0 {
			return math.Float32frombits(sign | 0x7fc00000)
		}
		return math.Float32frombits(sign | 0x7f800000)
	case exp == 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// renormalize subnormal
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= 0x3ff
		exp++
	}
	return math.Float32frombits(sign | (exp+112)<<23 | mant<<13)
}
