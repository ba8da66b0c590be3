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
	"github.com/MarSe32m/SebbuKit/core/math/f32"
	"github.com/MarSe32m/SebbuKit/core/math/f64"
)

// The vector compressors apply Axis to each element in turn, X first.
type (
	Vec2F32 struct{ Axis Float32 }
	Vec3F32 struct{ Axis Float32 }
	Vec4F32 struct{ Axis Float32 }
	Vec2F64 struct{ Axis Float64 }
	Vec3F64 struct{ Axis Float64 }
	Vec4F64 struct{ Axis Float64 }
)

var (
	_ bitstream.Codec[f32.Vec2] = Vec2F32{}
	_ bitstream.Codec[f32.Vec3] = Vec3F32{}
	_ bitstream.Codec[f32.Vec4] = Vec4F32{}
	_ bitstream.Codec[f64.Vec2] = Vec2F64{}
	_ bitstream.Codec[f64.Vec3] = Vec3F64{}
	_ bitstream.Codec[f64.Vec4] = Vec4F64{}
)

func encodeAxes[T Real](w *bitstream.Writer, c Float[T], v []T) {
	for _, e := range v {
		c.Encode(w, e)
	}
}

// decodeAxes checks the whole vector is present before reading any axis, so a
// short stream leaves the read position unchanged.
func decodeAxes[T Real](r *bitstream.Reader, c Float[T], out []T) error {
	if need := uint64(c.bits) * uint64(len(out)); need > r.Remaining() {
		return errors.Wrapf(bitstream.ErrShortStream, "Vector of %d axes needs %d bits, %d remain", len(out), need, r.Remaining())
	}
	for i := range out {
		v, err := c.Decode(r)
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func (c Vec2F32) Encode(w *bitstream.Writer, v f32.Vec2) { encodeAxes(w, c.Axis, v[:]) }
func (c Vec3F32) Encode(w *bitstream.Writer, v f32.Vec3) { encodeAxes(w, c.Axis, v[:]) }
func (c Vec4F32) Encode(w *bitstream.Writer, v f32.Vec4) { encodeAxes(w, c.Axis, v[:]) }
func (c Vec2F64) Encode(w *bitstream.Writer, v f64.Vec2) { encodeAxes(w, c.Axis, v[:]) }
func (c Vec3F64) Encode(w *bitstream.Writer, v f64.Vec3) { encodeAxes(w, c.Axis, v[:]) }
func (c Vec4F64) Encode(w *bitstream.Writer, v f64.Vec4) { encodeAxes(w, c.Axis, v[:]) }

func (c Vec2F32) Decode(r *bitstream.Reader) (f32.Vec2, error) {
	var v f32.Vec2
	err := decodeAxes(r, c.Axis, v[:])
	return v, err
}

func (c Vec3F32) Decode(r *bitstream.Reader) (f32.Vec3, error) {
	var v f32.Vec3
	err := decodeAxes(r, c.Axis, v[:])
	return v, err
}

func (c Vec4F32) Decode(r *bitstream.Reader) (f32.Vec4, error) {
	var v f32.Vec4
	err := decodeAxes(r, c.Axis, v[:])
	return v, err
}

func (c Vec2F64) Decode(r *bitstream.Reader) (f64.Vec2, error) {
	var v f64.Vec2
	err := decodeAxes(r, c.Axis, v[:])
	return v, err
}

func (c Vec3F64) Decode(r *bitstream.Reader) (f64.Vec3, error) {
	var v f64.Vec3
	err := decodeAxes(r, c.Axis, v[:])
	return v, err
}

func (c Vec4F64) Decode(r *bitstream.Reader) (f64.Vec4, error) {
	var v f64.Vec4
	err := decodeAxes(r, c.Axis, v[:])
	return v, err
}
