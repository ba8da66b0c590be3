// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package quant

import (
	"math"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/fault"
)

// ErrRange is returned when a compressor is constructed with bounds that do
// not describe a usable range.
const ErrRange = fault.Const("Invalid compressor range")

// Real is the set of floating point types.
type Real interface {
	~float32 | ~float64
}

// Float quantizes values of type T in [Min, Max] onto Bits bits.
// Values outside the range are clamped before encoding, and NaN encodes as
// Min, so encoding never fails.
type Float[T Real] struct {
	min, max float64
	bits     uint32
	steps    float64 // 2^bits - 1
}

type (
	// Float32 is the range compressor for float32 values.
	Float32 = Float[float32]
	// Float64 is the range compressor for float64 values.
	Float64 = Float[float64]
)

var (
	_ bitstream.Codec[float32] = Float32{}
	_ bitstream.Codec[float64] = Float64{}
)

// NewFloat32 returns a compressor for float32 values in [min, max] using bits
// bits, which must be in the range 1 to 32.
func NewFloat32(min, max float32, bits uint32) (Float32, error) {
	return newFloat[float32](float64(min), float64(max), bits, 32)
}

// NewFloat64 returns a compressor for float64 values in [min, max] using bits
// bits, which must be in the range 1 to 53.
func NewFloat64(min, max float64, bits uint32) (Float64, error) {
	return newFloat[float64](min, max, bits, 53)
}

// MustFloat32 is like NewFloat32 but panics on invalid parameters.
// It is intended for package level codec declarations.
func MustFloat32(min, max float32, bits uint32) Float32 {
	c, err := NewFloat32(min, max, bits)
	if err != nil {
		panic(err)
	}
	return c
}

// MustFloat64 is like NewFloat64 but panics on invalid parameters.
func MustFloat64(min, max float64, bits uint32) Float64 {
	c, err := NewFloat64(min, max, bits)
	if err != nil {
		panic(err)
	}
	return c
}

func newFloat[T Real](min, max float64, bits, maxBits uint32) (Float[T], error) {
	switch {
	case math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0):
		return Float[T]{}, errors.Wrapf(ErrRange, "Range [%v, %v] is not finite", min, max)
	case min >= max:
		return Float[T]{}, errors.Wrapf(ErrRange, "Range [%v, %v] is empty", min, max)
	case math.IsInf(max-min, 0):
		return Float[T]{}, errors.Wrapf(ErrRange, "Range [%v, %v] is too wide", min, max)
	case bits < 1 || bits > maxBits:
		return Float[T]{}, errors.Wrapf(bitstream.ErrWidth, "%d bits, want 1 to %d", bits, maxBits)
	}
	return Float[T]{
		min:   min,
		max:   max,
		bits:  bits,
		steps: float64(uint64(1)<<bits - 1),
	}, nil
}

// Min returns the lower bound of the range.
func (c Float[T]) Min() T { return T(c.min) }

// Max returns the upper bound of the range.
func (c Float[T]) Max() T { return T(c.max) }

// Bits returns the number of bits each value is encoded with.
func (c Float[T]) Bits() uint32 { return c.bits }

// Step returns the distance between adjacent quantized values, which bounds
// the error of a round trip for values inside the range.
func (c Float[T]) Step() float64 { return (c.max - c.min) / c.steps }

// Quantize returns the quantized representation of v.
func (c Float[T]) Quantize(v T) uint64 {
	f := float64(v)
	if math.IsNaN(f) {
		return 0
	}
	ratio := (f - c.min) / (c.max - c.min)
	ratio = math.Max(0, math.Min(1, ratio))
	return uint64(math.Round(ratio * c.steps))
}

// Dequantize returns the value represented by q.
func (c Float[T]) Dequantize(q uint64) T {
	ratio := float64(q) / c.steps
	v := ratio*(c.max-c.min) + c.min
	return T(math.Max(c.min, math.Min(c.max, v)))
}

// Encode appends the quantized v to w.
func (c Float[T]) Encode(w *bitstream.Writer, v T) {
	if c.bits == 0 {
		w.SetError(errors.Wrap(ErrRange, "Uninitialized float compressor"))
		return
	}
	w.AppendBits(c.Quantize(v), c.bits)
}

// Decode reads a value written by Encode.
func (c Float[T]) Decode(r *bitstream.Reader) (T, error) {
	if c.bits == 0 {
		return 0, errors.Wrap(ErrRange, "Uninitialized float compressor")
	}
	q, err := r.ReadBits(c.bits)
	if err != nil {
		return 0, err
	}
	return c.Dequantize(q), nil
}
