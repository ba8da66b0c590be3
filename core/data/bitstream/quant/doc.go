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

// Package quant holds lossy and exact range compressors for bit streams.
//
// A compressor maps a bounded range onto a fixed number of bits. Float32 and
// Float64 quantize a real value in [min, max] onto 2^bits-1 evenly spaced
// steps, so a value decodes to within one step of what was written. IntRange
// shifts an integer in [min, max] down to [0, max-min] and round trips it
// exactly.
//
// Compressors are built once with their parameters and used as
// bitstream.Codec values:
//
//	var position = quant.Vec3F32{Axis: quant.MustFloat32(-512, 512, 16)}
//
//	func (e *Entity) Encode(w *bitstream.Writer) {
//		position.Encode(w, e.Position)
//	}
package quant
