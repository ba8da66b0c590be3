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

type (
	// Bool is the Codec for booleans, using one bit.
	Bool struct{}
	// Fixed is the Codec for integers using their full bit width.
	Fixed[T Integer] struct{}
	// Unsigned is the Codec for unsigned integers using only the low Bits bits.
	Unsigned[T UnsignedInteger] struct{ Bits uint32 }
	// Float32 is the lossless Codec for float32 values.
	Float32 struct{}
	// Float64 is the lossless Codec for float64 values.
	Float64 struct{}
	// Enum is the Codec for enum raw values in the range [0, Cases).
	Enum struct{ Cases uint32 }
	// Bytes is the Codec for length prefixed byte blocks.
	Bytes struct{}
	// String is the Codec for length prefixed UTF-8 strings.
	String struct{}
)

var (
	_ Codec[bool]    = Bool{}
	_ Codec[int16]   = Fixed[int16]{}
	_ Codec[uint8]   = Unsigned[uint8]{}
	_ Codec[float32] = Float32{}
	_ Codec[float64] = Float64{}
	_ Codec[uint32]  = Enum{}
	_ Codec[[]byte]  = Bytes{}
	_ Codec[string]  = String{}
)

func (Bool) Encode(w *Writer, v bool)        { w.AppendBool(v) }
func (Bool) Decode(r *Reader) (bool, error) { return r.ReadBool() }

func (Fixed[T]) Encode(w *Writer, v T)        { AppendFixed(w, v) }
func (Fixed[T]) Decode(r *Reader) (T, error) { return ReadFixed[T](r) }

func (c Unsigned[T]) Encode(w *Writer, v T)        { AppendUnsigned(w, v, c.Bits) }
func (c Unsigned[T]) Decode(r *Reader) (T, error) { return ReadUnsigned[T](r, c.Bits) }

func (Float32) Encode(w *Writer, v float32)        { w.AppendFloat32(v) }
func (Float32) Decode(r *Reader) (float32, error) { return r.ReadFloat32() }

func (Float64) Encode(w *Writer, v float64)        { w.AppendFloat64(v) }
func (Float64) Decode(r *Reader) (float64, error) { return r.ReadFloat64() }

func (c Enum) Encode(w *Writer, v uint32)        { w.AppendEnum(v, c.Cases) }
func (c Enum) Decode(r *Reader) (uint32, error) { return r.ReadEnum(c.Cases) }

// Bits returns the width of the encoded enum.
func (c Enum) Bits() uint32 { return EnumBits(c.Cases) }

func (Bytes) Encode(w *Writer, v []byte)        { w.AppendBytes(v) }
func (Bytes) Decode(r *Reader) ([]byte, error) { return r.ReadBytes() }

func (String) Encode(w *Writer, v string)        { w.AppendString(v) }
func (String) Decode(r *Reader) (string, error) { return r.ReadString() }
