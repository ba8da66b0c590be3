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


// Package bitstream packs structured values into a compact, bit granular byte
// buffer for network transmission, and unpacks them again.
//
// A Writer accumulates values, least significant bit first within each byte,
// and is finalized with Pack. A Reader consumes the packed bytes strictly in
// the order they were written. Every read is bounds checked against the bit
// count carried in the header, so truncated or corrupted input produces an
// error (ErrShortStream or ErrEncoding) rather than a panic.
//
// The packed format is:
//
//	[0..4)  little-endian uint32: number of valid bits that follow.
//	[4..N)  payload. Bit 0 of byte i is its least significant bit. Bits
//	        beyond the valid count in the final byte are zero and ignored.
//
// Byte blocks (AppendBytes, AppendString) are aligned forward to the next byte
// boundary, then written as a full 32-bit length in bytes followed by the raw
// bytes. Enums use ⌈log₂(cases)⌉ bits and require raw values 0..cases-1.
//
// Composite types take part by implementing Codable. Fields that want a
// narrower encoding than their Go type use an explicit Codec value, built once
// with its range or width and applied at the call site:
//
//	var health = bitstream.Unsigned[uint8]{Bits: 7}
//
//	func (p *Player) Encode(w *bitstream.Writer) {
//		w.AppendUint32(p.ID)
//		health.Encode(w, p.Health)
//	}
//
// The range compressors live in the quant sub-package.
//
// Writers and Readers are not safe for concurrent use.
package bitstream
