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

package bitstream

import (
	"math"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/math/u64"
)

// MaxEmptyElements is the number of elements that encode to no bits, such as
// a single case Enum, an array may hold beyond the bits left in the stream.
// Decoding such an array is otherwise unbounded by the stream length.
const MaxEmptyElements = 1 << 16

// Array is the Codec for slices of any length. The element count is written
// as a full 32-bit value, followed by each element encoded with Elem.
type Array[T any] struct {
	Elem Codec[T]
}

// Encode appends the count of v followed by its elements.
func (c Array[T]) Encode(w *Writer, v []T) {
	if uint64(len(v)) > math.MaxUint32 {
		w.SetError(errors.Wrapf(ErrTooLarge, "Array of %d elements", len(v)))
		return
	}
	w.AppendUint32(uint32(len(v)))
	encodeElements(w, c.Elem, v)
}

// Decode reads an array written by Encode.
func (c Array[T]) Decode(r *Reader) ([]T, error) {
	start := r.Position()
	count, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return decodeElements(r, c.Elem, uint64(count), start)
}

// BoundedArray is the Codec for slices holding at most MaxCount elements.
// The element count is written using only CountBits bits.
type BoundedArray[T any] struct {
	MaxCount uint32
	Elem     Codec[T]
}

// CountBits returns the width of the encoded element count, which is the
// number of bits needed to hold MaxCount.
func (c BoundedArray[T]) CountBits() uint32 { return u64.BitsFor(uint64(c.MaxCount)) }

// Encode appends the count of v followed by its elements. It is an error for
// v to hold more than MaxCount elements.
func (c BoundedArray[T]) Encode(w *Writer, v []T) {
	if uint64(len(v)) > uint64(c.MaxCount) {
		w.SetError(errors.Wrapf(ErrOutOfRange, "Array of %d elements, max %d", len(v), c.MaxCount))
		return
	}
	w.AppendBits(uint64(len(v)), c.CountBits())
	encodeElements(w, c.Elem, v)
}

// Decode reads an array written by Encode. A count larger than MaxCount is
// rejected with ErrEncoding.
func (c BoundedArray[T]) Decode(r *Reader) ([]T, error) {
	start := r.Position()
	count, err := r.ReadBounded(c.CountBits(), uint64(c.MaxCount))
	if err != nil {
		return nil, errors.Wrap(err, "Array count")
	}
	return decodeElements(r, c.Elem, count, start)
}

// encodeElements appends each element of v with elem. A run of empty elements
// longer than MaxEmptyElements is rejected so that every array written can be
// read back.
func encodeElements[T any](w *Writer, elem Codec[T], v []T) {
	for i, e := range v {
		before := w.BitCount()
		elem.Encode(w, e)
		if left := len(v) - i - 1; w.BitCount() == before && left > MaxEmptyElements {
			w.SetError(errors.Wrapf(ErrTooLarge, "Array of %d empty elements, max %d", len(v), MaxEmptyElements))
			return
		}
	}
}

// decodeElements reads count elements with elem. The initial capacity is
// capped by the remaining bits so a corrupt count cannot force a huge
// allocation. After an element that consumed no bits, the elements still to
// come must fit in the remaining bits or within MaxEmptyElements. On failure
// the read position is rewound to start.
func decodeElements[T any](r *Reader, elem Codec[T], count, start uint64) ([]T, error) {
	out := make([]T, 0, u64.Min(count, r.Remaining()))
	for i := uint64(0); i < count; i++ {
		pos := r.Position()
		e, err := elem.Decode(r)
		if err != nil {
			r.Rewind(start)
			return nil, errors.Wrapf(err, "element %d", i)
		}
		if left := count - i - 1; r.Position() == pos && left > r.Remaining() && left > MaxEmptyElements {
			r.Rewind(start)
			return nil, errors.Wrapf(ErrEncoding, "Array of %d empty elements, %d bits remain", count, r.Remaining())
		}
		out = append(out, e)
	}
	return out, nil
}

// BitArray is the Codec for bounded slices of small unsigned values, each
// written using only ValueBits bits.
type BitArray[T UnsignedInteger] struct {
	MaxCount  uint32
	ValueBits uint32
}

// CountBits returns the width of the encoded element count.
func (c BitArray[T]) CountBits() uint32 { return u64.BitsFor(uint64(c.MaxCount)) }

// Encode appends the count of v followed by the low ValueBits bits of each
// element. Elements that do not fit in ValueBits are an error.
func (c BitArray[T]) Encode(w *Writer, v []T) {
	if size := BitSize[T](); c.ValueBits > size {
		w.SetError(errors.Wrapf(ErrWidth, "Writing %d bits of a %d bit value", c.ValueBits, size))
		return
	}
	if uint64(len(v)) > uint64(c.MaxCount) {
		w.SetError(errors.Wrapf(ErrOutOfRange, "Array of %d elements, max %d", len(v), c.MaxCount))
		return
	}
	for i, e := range v {
		if u64.BitsFor(uint64(e)) > c.ValueBits {
			w.SetError(errors.Wrapf(ErrOutOfRange, "Element %d (%d) does not fit in %d bits", i, e, c.ValueBits))
			return
		}
	}
	w.AppendBits(uint64(len(v)), c.CountBits())
	for _, e := range v {
		w.AppendBits(uint64(e), c.ValueBits)
	}
}

// Decode reads an array written by Encode.
func (c BitArray[T]) Decode(r *Reader) ([]T, error) {
	if size := BitSize[T](); c.ValueBits > size {
		return nil, errors.Wrapf(ErrWidth, "Reading %d bits into a %d bit value", c.ValueBits, size)
	}
	start := r.Position()
	count, err := r.ReadBounded(c.CountBits(), uint64(c.MaxCount))
	if err != nil {
		return nil, errors.Wrap(err, "Array count")
	}
	if need := count * uint64(c.ValueBits); need > r.Remaining() {
		err := errors.Wrapf(ErrShortStream, "Array of %d elements needs %d bits, %d remain", count, need, r.Remaining())
		r.Rewind(start)
		return nil, err
	}
	out := make([]T, count)
	for i := range out {
		v, _ := r.ReadBits(c.ValueBits)
		out[i] = T(v)
	}
	return out, nil
}
