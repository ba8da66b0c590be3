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
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/fault"
	"github.com/MarSe32m/SebbuKit/core/math/u64"
)

// HeaderSize is the size in bytes of the bit count header written by Pack.
const HeaderSize = 4

// Writer accumulates values into a growing bit buffer.
//
// Appending never fails on its own: the buffer grows on demand. If a caller
// breaks one of the preconditions of an append (a width wider than the value,
// an enum value outside its cases, ...) the first such error is recorded, all
// further appends are ignored, and the error is returned by Pack.
type Writer struct {
	bits BitStream
	err  fault.One
}

// NewWriter returns a new, empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Error returns the error which stopped writing to the stream, or nil if
// writing has not stopped.
func (w *Writer) Error() error { return w.err.First() }

// SetError sets the error state and stops writing to the stream.
// Only the first error is kept.
func (w *Writer) SetError(err error) { w.err.Collect(err) }

// BitCount returns the number of bits written so far, including any
// alignment padding.
func (w *Writer) BitCount() uint64 { return w.bits.WritePos }

// Len returns the number of payload bytes that Pack would produce, not
// including the header.
func (w *Writer) Len() int { return len(w.bits.Data) }

func (w *Writer) ok() bool { return w.err.First() == nil }

// AppendBit appends the least significant bit of bit.
func (w *Writer) AppendBit(bit uint8) {
	if w.ok() {
		w.bits.WriteBit(uint64(bit))
	}
}

// AppendBool appends b as a single bit.
func (w *Writer) AppendBool(b bool) {
	if b {
		w.AppendBit(1)
	} else {
		w.AppendBit(0)
	}
}

// AppendBits appends the low width bits of v, least significant bit first.
// width must not exceed 64.
func (w *Writer) AppendBits(v uint64, width uint32) {
	if !w.ok() {
		return
	}
	if width > 64 {
		w.SetError(errors.Wrapf(ErrWidth, "Writing %d bits of a 64 bit value", width))
		return
	}
	w.bits.Write(v, width)
}

// AppendUnsigned appends the low width bits of v.
// It is an error for width to exceed the bit size of T.
func AppendUnsigned[T UnsignedInteger](w *Writer, v T, width uint32) {
	if size := BitSize[T](); width > size {
		w.SetError(errors.Wrapf(ErrWidth, "Writing %d bits of a %d bit value", width, size))
		return
	}
	w.AppendBits(uint64(v), width)
}

// AppendFixed appends all the bits of v. Signed values are written as their
// two's complement bit pattern.
func AppendFixed[T Integer](w *Writer, v T) {
	w.AppendBits(uint64(v), BitSize[T]())
}

// AppendUint8 appends all 8 bits of v.
func (w *Writer) AppendUint8(v uint8) { w.AppendBits(uint64(v), 8) }

// AppendUint16 appends all 16 bits of v.
func (w *Writer) AppendUint16(v uint16) { w.AppendBits(uint64(v), 16) }

// AppendUint32 appends all 32 bits of v.
func (w *Writer) AppendUint32(v uint32) { w.AppendBits(uint64(v), 32) }

// AppendUint64 appends all 64 bits of v.
func (w *Writer) AppendUint64(v uint64) { w.AppendBits(v, 64) }

// AppendInt8 appends the 8 bit two's complement pattern of v.
func (w *Writer) AppendInt8(v int8) { w.AppendBits(uint64(uint8(v)), 8) }

// AppendInt16 appends the 16 bit two's complement pattern of v.
func (w *Writer) AppendInt16(v int16) { w.AppendBits(uint64(uint16(v)), 16) }

// AppendInt32 appends the 32 bit two's complement pattern of v.
func (w *Writer) AppendInt32(v int32) { w.AppendBits(uint64(uint32(v)), 32) }

// AppendInt64 appends the 64 bit two's complement pattern of v.
func (w *Writer) AppendInt64(v int64) { w.AppendBits(uint64(v), 64) }

// AppendFloat32 appends the IEEE-754 bit pattern of v.
func (w *Writer) AppendFloat32(v float32) { w.AppendBits(uint64(math.Float32bits(v)), 32) }

// AppendFloat64 appends the IEEE-754 bit pattern of v.
func (w *Writer) AppendFloat64(v float64) { w.AppendBits(math.Float64bits(v), 64) }

// EnumBits returns the number of bits used to encode an enum with the given
// number of cases.
func EnumBits(cases uint32) uint32 { return u64.CeilLog2(uint64(cases)) }

// AppendEnum appends raw using the fewest bits that can hold every value in
// [0, cases). The enum's raw values must be the contiguous range 0..cases-1.
func (w *Writer) AppendEnum(raw, cases uint32) {
	if raw >= cases {
		w.SetError(errors.Wrapf(ErrOutOfRange, "Enum value %d of %d cases", raw, cases))
		return
	}
	w.AppendBits(uint64(raw), EnumBits(cases))
}

// AppendBytes aligns the stream to the next byte boundary, then appends the
// 32-bit length of data followed by the bytes themselves.
func (w *Writer) AppendBytes(data []byte) {
	if !w.ok() {
		return
	}
	if uint64(len(data)) > math.MaxUint32 {
		w.SetError(errors.Wrapf(ErrTooLarge, "Byte block of %d bytes", len(data)))
		return
	}
	w.bits.AlignWrite()
	w.bits.Write(uint64(len(data)), 32)
	w.bits.WriteBytes(data)
}

// AppendString appends the UTF-8 bytes of s as a byte block.
func (w *Writer) AppendString(s string) {
	w.AppendBytes([]byte(s))
}

// Pack finalizes the stream, returning the 4 byte little-endian bit count
// followed by the packed bytes. Pack returns the first precondition failure
// of any append, if there was one.
//
// Pack does not modify the Writer, so appending can continue afterwards.
func (w *Writer) Pack() ([]byte, error) {
	if err := w.Error(); err != nil {
		return nil, err
	}
	if w.bits.WritePos > math.MaxUint32 {
		return nil, errors.Wrapf(ErrTooLarge, "Stream of %d bits", w.bits.WritePos)
	}
	out := make([]byte, HeaderSize+len(w.bits.Data))
	binary.LittleEndian.PutUint32(out, uint32(w.bits.WritePos))
	copy(out[HeaderSize:], w.bits.Data)
	return out, nil
}
