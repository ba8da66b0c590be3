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
	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/math/u64"
)

// IntRange is the exact compressor for integers in [Min, Max].
// Values are shifted down to [0, Max-Min] and written with just enough bits
// to hold Max-Min.
type IntRange struct {
	min, max int64
	span     uint64
	bits     uint32
}

var _ bitstream.Codec[int64] = IntRange{}

// NewIntRange returns a compressor for integers in [min, max].
func NewIntRange(min, max int64) (IntRange, error) {
	if min > max {
		return IntRange{}, errors.Wrapf(ErrRange, "Range [%d, %d] is empty", min, max)
	}
	span := uint64(max) - uint64(min)
	return IntRange{min: min, max: max, span: span, bits: u64.BitsFor(span)}, nil
}

// MustIntRange is like NewIntRange but panics on invalid parameters.
func MustIntRange(min, max int64) IntRange {
	c, err := NewIntRange(min, max)
	if err != nil {
		panic(err)
	}
	return c
}

// Min returns the lower bound of the range.
func (c IntRange) Min() int64 { return c.min }

// Max returns the upper bound of the range.
func (c IntRange) Max() int64 { return c.max }

// Bits returns the number of bits each value is encoded with.
func (c IntRange) Bits() uint32 { return c.bits }

// Encode appends v to w. A value outside the range is not altered: it is
// recorded as ErrOutOfRange on w instead.
func (c IntRange) Encode(w *bitstream.Writer, v int64) {
	if v < c.min || v > c.max {
		w.SetError(errors.Wrapf(bitstream.ErrOutOfRange, "%d not in [%d, %d]", v, c.min, c.max))
		return
	}
	w.AppendBits(uint64(v)-uint64(c.min), c.bits)
}

// Decode reads a value written by Encode. A raw value larger than Max-Min is
// rejected with ErrEncoding.
func (c IntRange) Decode(r *bitstream.Reader) (int64, error) {
	raw, err := r.ReadBounded(c.bits, c.span)
	if err != nil {
		return 0, errors.Wrapf(err, "Integer in [%d, %d]", c.min, c.max)
	}
	return int64(uint64(c.min) + raw), nil
}
