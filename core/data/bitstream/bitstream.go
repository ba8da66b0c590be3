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

import "github.com/MarSe32m/SebbuKit/core/math/u64"

// BitStream provides methods for reading and writing bits to a slice of bytes.
// Bits are packed in a least-significant-bit to most-significant-bit order.
//
// BitStream does no bounds checking of its own on reads: callers must check
// CanRead first. Writes grow Data as needed.
type BitStream struct {
	Data     []byte // The byte slice containing the bits
	ReadPos  uint64 // The current read offset from the start of the Data slice (in bits)
	WritePos uint64 // The current write offset from the start of the Data slice (in bits)
}

// ReadBit reads a single bit from the BitStream, incrementing ReadPos by one.
func (s *BitStream) ReadBit() uint64 {
	pos := s.ReadPos
	s.ReadPos = pos + 1
	return (uint64(s.Data[pos/8]) >> (pos % 8)) & 1
}

// WriteBit writes a single bit to the BitStream, incrementing WritePos by one.
func (s *BitStream) WriteBit(bit uint64) {
	b := s.WritePos / 8
	if b == uint64(len(s.Data)) {
		s.Data = append(s.Data, 0)
	}
	if bit&1 == 1 {
		s.Data[b] |= byte(1 << (s.WritePos % 8))
	} else {
		s.Data[b] &= ^byte(1 << (s.WritePos % 8))
	}
	s.WritePos++
}

// CanRead returns true if count bits can be read without passing limit or the
// end of Data.
func (s *BitStream) CanRead(count, limit uint64) bool {
	end := u64.Min(limit, uint64(len(s.Data))*8)
	return s.ReadPos <= end && count <= end-s.ReadPos
}

// Read reads the specified number of bits from the BitStream, incrementing the ReadPos by the
// specified number of bits and returning the bits packed into a uint64. The bits are packed into
// the uint64 from LSB to MSB. count must not exceed 64.
func (s *BitStream) Read(count uint32) uint64 {
	if count == 0 {
		return 0
	}

	byteIdx := s.ReadPos / 8
	bitIdx := uint32(s.ReadPos & 7)

	// Start
	val := uint64(s.Data[byteIdx]) >> bitIdx
	readCount := 8 - bitIdx
	if count <= readCount {
		s.ReadPos += uint64(count)
		return val & ((1 << count) - 1)
	}
	s.ReadPos += uint64(readCount)
	byteIdx++

	// Whole bytes
	for ; readCount+7 < count; readCount += 8 {
		val |= uint64(s.Data[byteIdx]) << readCount
		byteIdx++
		s.ReadPos += 8
	}

	// Remainder
	if rem := count - readCount; rem > 0 {
		val |= (uint64(s.Data[byteIdx]) & ((1 << rem) - 1)) << readCount
		s.ReadPos += uint64(rem)
	}
	return val
}

// Write writes the specified number of bits from the packed uint64, incrementing the WritePos by
// the specified number of bits. The bits are read from the uint64 from LSB to MSB. count must not
// exceed 64.
func (s *BitStream) Write(bits uint64, count uint32) {
	if count == 0 {
		return
	}

	// Ensure the buffer is big enough for all them bits.
	if reqBytes := (s.WritePos + uint64(count) + 7) / 8; reqBytes > uint64(len(s.Data)) {
		if reqBytes <= uint64(cap(s.Data)) {
			s.Data = s.Data[:reqBytes]
		} else {
			buf := make([]byte, reqBytes, reqBytes*2)
			copy(buf, s.Data)
			s.Data = buf
		}
	}

	byteIdx := s.WritePos / 8
	bitIdx := uint32(s.WritePos & 7)

	// Start
	if bitIdx != 0 {
		writeCount := 8 - bitIdx
		if count < writeCount {
			writeCount = count
		}
		mask := byte(((1 << writeCount) - 1) << bitIdx)
		s.Data[byteIdx] = (s.Data[byteIdx] & ^mask) | (byte(bits<<bitIdx) & mask)
		s.WritePos += uint64(writeCount)
		count, byteIdx, bitIdx, bits = count-writeCount, byteIdx+1, 0, bits>>writeCount
	}

	// Whole bytes
	for count >= 8 {
		s.Data[byteIdx] = uint8(bits)
		s.WritePos += 8
		count, byteIdx, bits = count-8, byteIdx+1, bits>>8
	}

	// Remainder
	if count > 0 {
		mask := byte((1 << count) - 1)
		s.Data[byteIdx] = (s.Data[byteIdx] & ^mask) | (byte(bits) & mask)
		s.WritePos += uint64(count)
	}
}

// AlignWrite moves WritePos forward to the next byte boundary. The skipped
// bits are left as they are, which for a freshly grown buffer is zero.
func (s *BitStream) AlignWrite() {
	s.WritePos = u64.AlignUp(s.WritePos, 8)
}

// AlignRead moves ReadPos forward to the next byte boundary.
func (s *BitStream) AlignRead() {
	s.ReadPos = u64.AlignUp(s.ReadPos, 8)
}

// WriteBytes appends the bytes in data at WritePos, which must be byte
// aligned.
func (s *BitStream) WriteBytes(data []byte) {
	s.Data = append(s.Data[:s.WritePos/8], data...)
	s.WritePos += uint64(len(data)) * 8
}

// ReadBytes returns the next count bytes at ReadPos, which must be byte
// aligned. The returned slice aliases Data.
func (s *BitStream) ReadBytes(count uint64) []byte {
	start := s.ReadPos / 8
	end := start + count
	s.ReadPos += count * 8
	return s.Data[start:end:end]
}
