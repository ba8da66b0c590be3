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
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/math/u64"
)

// Reader consumes a packed bit stream produced by Writer.Pack.
//
// Every read checks that the bits it needs lie before the end of the valid
// region, and fails with ErrShortStream otherwise. A failed read leaves the
// read position where it was.
type Reader struct {
	bits  BitStream
	end   uint64 // bit count declared by the header
	limit uint64 // min(end, bits actually present)
}

// NewReader returns a Reader for the packed bytes in data.
// The first 4 bytes hold the little-endian count of valid bits; the rest is
// the payload. NewReader returns ErrMalformedHeader if data is shorter than
// the header.
//
// A payload shorter than its declared bit count is accepted; reads that reach
// past the bytes actually present fail with ErrShortStream.
//
// The Reader does not copy data, which must not be modified while the Reader
// is in use.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < HeaderSize {
		return nil, errors.Wrapf(ErrMalformedHeader, "Got %d bytes, header needs %d", len(data), HeaderSize)
	}
	payload := data[HeaderSize:]
	end := uint64(binary.LittleEndian.Uint32(data))
	return &Reader{
		bits:  BitStream{Data: payload},
		end:   end,
		limit: u64.Min(end, uint64(len(payload))*8),
	}, nil
}

// EndBitIndex returns the number of valid bits declared by the header.
func (r *Reader) EndBitIndex() uint64 { return r.end }

// Position returns the index of the next bit to be read.
func (r *Reader) Position() uint64 { return r.bits.ReadPos }

// Remaining returns the number of bits that can still be read.
func (r *Reader) Remaining() uint64 { return r.limit - r.bits.ReadPos }

// AtEnd returns true if every valid bit has been read.
func (r *Reader) AtEnd() bool { return r.bits.ReadPos >= r.limit }

// Seek moves the read position to pos, which must not be past the readable
// limit. It is used to rewind after a composite decode fails part way.
func (r *Reader) Seek(pos uint64) error {
	if pos > r.limit {
		return errors.Wrapf(ErrShortStream, "Seeking to bit %d of %d", pos, r.limit)
	}
	r.bits.ReadPos = pos
	return nil
}

// Rewind moves the read position back to pos, a value previously returned by
// Position. It panics if pos is ahead of the current position.
func (r *Reader) Rewind(pos uint64) {
	if pos > r.bits.ReadPos {
		panic(errors.Errorf("Rewinding forward from bit %d to %d", r.bits.ReadPos, pos))
	}
	r.bits.ReadPos = pos
}

func (r *Reader) short(width uint64) error {
	return errors.Wrapf(ErrShortStream, "Reading %d bits at bit %d of %d", width, r.bits.ReadPos, r.limit)
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (uint8, error) {
	if !r.bits.CanRead(1, r.limit) {
		return 0, r.short(1)
	}
	return uint8(r.bits.ReadBit()), nil
}

// ReadBool reads a single bit as a boolean.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadBit()
	return b == 1, err
}

// ReadBits reads width bits, least significant bit first. width must not
// exceed 64.
func (r *Reader) ReadBits(width uint32) (uint64, error) {
	if width > 64 {
		return 0, errors.Wrapf(ErrWidth, "Reading %d bits into a 64 bit value", width)
	}
	if !r.bits.CanRead(uint64(width), r.limit) {
		return 0, r.short(uint64(width))
	}
	return r.bits.Read(width), nil
}

// ReadUnsigned reads width bits into a T.
// It is an error for width to exceed the bit size of T.
func ReadUnsigned[T UnsignedInteger](r *Reader, width uint32) (T, error) {
	if size := BitSize[T](); width > size {
		return 0, errors.Wrapf(ErrWidth, "Reading %d bits into a %d bit value", width, size)
	}
	v, err := r.ReadBits(width)
	return T(v), err
}

// ReadFixed reads all the bits of a T. Signed values are read as their two's
// complement bit pattern.
func ReadFixed[T Integer](r *Reader) (T, error) {
	v, err := r.ReadBits(BitSize[T]())
	return T(v), err
}

// ReadUint8 reads an 8 bit unsigned integer.
func (r *Reader) ReadUint8() (uint8, error) { return ReadFixed[uint8](r) }

// ReadUint16 reads a 16 bit unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) { return ReadFixed[uint16](r) }

// ReadUint32 reads a 32 bit unsigned integer.
func (r *Reader) ReadUint32() (uint32, error) { return ReadFixed[uint32](r) }

// ReadUint64 reads a 64 bit unsigned integer.
func (r *Reader) ReadUint64() (uint64, error) { return ReadFixed[uint64](r) }

// ReadInt8 reads an 8 bit signed integer.
func (r *Reader) ReadInt8() (int8, error) { return ReadFixed[int8](r) }

// ReadInt16 reads a 16 bit signed integer.
func (r *Reader) ReadInt16() (int16, error) { return ReadFixed[int16](r) }

// ReadInt32 reads a 32 bit signed integer.
func (r *Reader) ReadInt32() (int32, error) { return ReadFixed[int32](r) }

// ReadInt64 reads a 64 bit signed integer.
func (r *Reader) ReadInt64() (int64, error) { return ReadFixed[int64](r) }

// ReadFloat32 reads a 32 bit IEEE-754 floating point value.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a 64 bit IEEE-754 floating point value.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBounded reads width bits and checks the value does not exceed max. A
// larger value is rejected with ErrEncoding, leaving the read position where
// it was.
func (r *Reader) ReadBounded(width uint32, max uint64) (uint64, error) {
	start := r.bits.ReadPos
	v, err := r.ReadBits(width)
	if err != nil {
		return 0, err
	}
	if v > max {
		r.bits.ReadPos = start
		return 0, errors.Wrapf(ErrEncoding, "Value %d exceeds %d", v, max)
	}
	return v, nil
}

// ReadEnum reads an enum written by Writer.AppendEnum with the same number of
// cases. It returns ErrEncoding if the raw value is not one of the cases.
func (r *Reader) ReadEnum(cases uint32) (uint32, error) {
	if cases == 0 {
		return 0, errors.Wrap(ErrOutOfRange, "Enum with no cases")
	}
	v, err := r.ReadBounded(EnumBits(cases), uint64(cases-1))
	if err != nil {
		return 0, errors.Wrapf(err, "Enum of %d cases", cases)
	}
	return uint32(v), nil
}

// ReadBytes aligns the read position to the next byte boundary, then reads a
// 32-bit length and that many bytes. The returned slice aliases the data the
// Reader was constructed with.
func (r *Reader) ReadBytes() ([]byte, error) {
	start := r.bits.ReadPos
	if aligned := u64.AlignUp(start, 8); aligned > r.limit {
		return nil, r.short(aligned - start)
	}
	r.bits.AlignRead()
	length, err := r.ReadUint32()
	if err != nil {
		r.bits.ReadPos = start
		return nil, err
	}
	if !r.bits.CanRead(uint64(length)*8, r.limit) {
		err := errors.Wrapf(ErrShortStream, "Byte block of %d bytes at bit %d of %d", length, r.bits.ReadPos, r.limit)
		r.bits.ReadPos = start
		return nil, err
	}
	return r.bits.ReadBytes(uint64(length)), nil
}

// ReadString reads a byte block and returns it as a string. It returns
// ErrEncoding if the bytes are not valid UTF-8.
func (r *Reader) ReadString() (string, error) {
	start := r.bits.ReadPos
	data, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		r.bits.ReadPos = start
		return "", errors.Wrapf(ErrEncoding, "String of %d bytes is not UTF-8", len(data))
	}
	return string(data), nil
}
