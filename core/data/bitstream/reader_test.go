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

package bitstream_test

import (
	"math"
	"testing"

	"github.com/MarSe32m/SebbuKit/core/assert"
	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/log"
)

func reader(assert assert.Manager, data []byte) *bitstream.Reader {
	r, err := bitstream.NewReader(data)
	assert.For("new reader").ThatError(err).Succeeded()
	return r
}

// roundTrip writes values with write, reads them back with read and checks
// each value and error in turn.
func roundTrip[T comparable](assert assert.Manager, name string,
	write func(*bitstream.Writer, T), read func(*bitstream.Reader) (T, error), values ...T) {
	w := bitstream.NewWriter()
	for _, v := range values {
		write(w, v)
	}
	r := reader(assert, pack(assert, w))
	for _, want := range values {
		got, err := read(r)
		assert.For("%s %v error", name, want).ThatError(err).Succeeded()
		assert.For("%s %v", name, want).That(got).Equals(want)
	}
	assert.For("%s at end", name).ThatBoolean(r.AtEnd()).IsTrue()
}

func TestReaderIntegers(t *testing.T) {
	assert := assert.To(log.Testing(t))
	roundTrip(assert, "uint8", (*bitstream.Writer).AppendUint8, (*bitstream.Reader).ReadUint8,
		0, 1, math.MaxInt8+1, math.MaxUint8)
	roundTrip(assert, "int8", (*bitstream.Writer).AppendInt8, (*bitstream.Reader).ReadInt8,
		math.MinInt8, -1, 0, math.MaxInt8)
	roundTrip(assert, "uint16", (*bitstream.Writer).AppendUint16, (*bitstream.Reader).ReadUint16,
		0, 1, math.MaxInt16+1, math.MaxUint16)
	roundTrip(assert, "int16", (*bitstream.Writer).AppendInt16, (*bitstream.Reader).ReadInt16,
		math.MinInt16, -1, 0, math.MaxInt16)
	roundTrip(assert, "uint32", (*bitstream.Writer).AppendUint32, (*bitstream.Reader).ReadUint32,
		0, 1, math.MaxInt32+1, math.MaxUint32)
	roundTrip(assert, "int32", (*bitstream.Writer).AppendInt32, (*bitstream.Reader).ReadInt32,
		math.MinInt32, -1, 0, math.MaxInt32)
	roundTrip(assert, "uint64", (*bitstream.Writer).AppendUint64, (*bitstream.Reader).ReadUint64,
		0, 1, math.MaxInt64+1, math.MaxUint64)
	roundTrip(assert, "int64", (*bitstream.Writer).AppendInt64, (*bitstream.Reader).ReadInt64,
		math.MinInt64, -1, 0, math.MaxInt64)
	roundTrip(assert, "int", bitstream.AppendFixed[int], bitstream.ReadFixed[int],
		math.MinInt, -12345, -1, 0, math.MaxInt)
}

func TestReaderFloats(t *testing.T) {
	assert := assert.To(log.Testing(t))
	roundTrip(assert, "float32", (*bitstream.Writer).AppendFloat32, (*bitstream.Reader).ReadFloat32,
		float32(math.Inf(-1)), -math.MaxFloat32, -0.5, 0, math.SmallestNonzeroFloat32, math.MaxFloat32, float32(math.Inf(1)))
	roundTrip(assert, "float64", (*bitstream.Writer).AppendFloat64, (*bitstream.Reader).ReadFloat64,
		math.Inf(-1), -math.MaxFloat64, -0.5, 0, math.SmallestNonzeroFloat64, math.MaxFloat64, math.Inf(1))
}

func TestReaderRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(ctx)

	w := bitstream.NewWriter()
	w.AppendBool(true)
	w.AppendInt8(-1)
	bitstream.AppendUnsigned(w, uint16(0x1ff), 9)
	w.AppendEnum(4, 5)
	w.AppendString("héllo wörld")
	w.AppendBytes([]byte{})
	w.AppendFloat32(-0.5)
	w.AppendBool(false)

	r := reader(assert, pack(assert, w))
	assert.For("end bit index").That(r.EndBitIndex()).Equals(w.BitCount())

	b, err := r.ReadBool()
	assert.For("bool error").ThatError(err).Succeeded()
	assert.For("bool").That(b).Equals(true)
	i8, err := r.ReadInt8()
	assert.For("int8 error").ThatError(err).Succeeded()
	assert.For("int8").That(i8).Equals(int8(-1))
	u, err := bitstream.ReadUnsigned[uint16](r, 9)
	assert.For("unsigned error").ThatError(err).Succeeded()
	assert.For("unsigned").That(u).Equals(uint16(0x1ff))
	e, err := r.ReadEnum(5)
	assert.For("enum error").ThatError(err).Succeeded()
	assert.For("enum").That(e).Equals(uint32(4))
	s, err := r.ReadString()
	assert.For("string error").ThatError(err).Succeeded()
	assert.For("string").That(s).Equals("héllo wörld")
	bs, err := r.ReadBytes()
	assert.For("bytes error").ThatError(err).Succeeded()
	assert.For("bytes").ThatSlice(bs).IsEmpty()
	f32, err := r.ReadFloat32()
	assert.For("float32 error").ThatError(err).Succeeded()
	assert.For("float32").That(f32).Equals(float32(-0.5))
	b, err = r.ReadBool()
	assert.For("last bool error").ThatError(err).Succeeded()
	assert.For("last bool").That(b).Equals(false)
	assert.For("at end").ThatBoolean(r.AtEnd()).IsTrue()

	_, err = r.ReadBit()
	assert.For("past end").ThatError(err).HasCause(bitstream.ErrShortStream)
}

func TestReaderNaN(t *testing.T) {
	assert := assert.To(t)
	w := bitstream.NewWriter()
	w.AppendFloat64(math.NaN())
	w.AppendFloat32(float32(math.NaN()))
	r := reader(assert, pack(assert, w))
	f64, _ := r.ReadFloat64()
	f32, _ := r.ReadFloat32()
	assert.For("float64").ThatBoolean(math.IsNaN(f64)).IsTrue()
	assert.For("float32").ThatBoolean(math.IsNaN(float64(f32))).IsTrue()
}

func TestReaderMalformedHeader(t *testing.T) {
	assert := assert.To(t)
	for _, data := range [][]byte{nil, {}, {1, 0, 0}} {
		_, err := bitstream.NewReader(data)
		assert.For("%d bytes", len(data)).ThatError(err).HasCause(bitstream.ErrMalformedHeader)
	}
}

func TestReaderHeaderLimitsReads(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{3, 0, 0, 0, 0xff})
	v, err := r.ReadBits(3)
	assert.For("valid bits").That(v).Equals(uint64(7))
	assert.For("valid error").ThatError(err).Succeeded()
	_, err = r.ReadBit()
	assert.For("padding").ThatError(err).HasCause(bitstream.ErrShortStream)
}

func TestReaderHeaderPastData(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{64, 0, 0, 0, 0xff})
	assert.For("remaining").That(r.Remaining()).Equals(uint64(8))
	_, err := r.ReadUint16()
	assert.For("uint16").ThatError(err).HasCause(bitstream.ErrShortStream)
}

func TestReaderFailedReadDoesNotAdvance(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{3, 0, 0, 0, 0x05})
	_, err := r.ReadBits(4)
	assert.For("too wide").ThatError(err).HasCause(bitstream.ErrShortStream)
	assert.For("position").That(r.Position()).Equals(uint64(0))
	v, err := r.ReadBits(3)
	assert.For("retry").That(v).Equals(uint64(5))
	assert.For("retry error").ThatError(err).Succeeded()
}

func TestReaderWidth(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{16, 0, 0, 0, 0xff, 0xff})
	_, err := r.ReadBits(65)
	assert.For("bits").ThatError(err).HasCause(bitstream.ErrWidth)
	_, err = bitstream.ReadUnsigned[uint8](r, 9)
	assert.For("uint8").ThatError(err).HasCause(bitstream.ErrWidth)
	assert.For("position").That(r.Position()).Equals(uint64(0))
}

func TestReaderEnum(t *testing.T) {
	assert := assert.To(t)
	assert.For("bits").That(bitstream.EnumBits(5)).Equals(uint32(3))
	assert.For("one case").That(bitstream.EnumBits(1)).Equals(uint32(0))
	assert.For("two cases").That(bitstream.EnumBits(2)).Equals(uint32(1))
	assert.For("256 cases").That(bitstream.EnumBits(256)).Equals(uint32(8))
	assert.For("257 cases").That(bitstream.EnumBits(257)).Equals(uint32(9))

	for raw := uint64(5); raw < 8; raw++ {
		w := bitstream.NewWriter()
		w.AppendBits(raw, 3)
		r := reader(assert, pack(assert, w))
		_, err := r.ReadEnum(5)
		assert.For("raw %d", raw).ThatError(err).HasCause(bitstream.ErrEncoding)
		assert.For("raw %d is encoding", raw).ThatBoolean(bitstream.IsEncoding(err)).IsTrue()
		assert.For("raw %d position", raw).That(r.Position()).Equals(uint64(0))
	}

	r := reader(assert, []byte{0, 0, 0, 0})
	e, err := r.ReadEnum(1)
	assert.For("single case").That(e).Equals(uint32(0))
	assert.For("single case error").ThatError(err).Succeeded()
	_, err = r.ReadEnum(0)
	assert.For("no cases").ThatError(err).HasCause(bitstream.ErrOutOfRange)
}

func TestReaderBytes(t *testing.T) {
	assert := assert.To(t)
	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	w := bitstream.NewWriter()
	w.AppendBits(0x5, 5)
	w.AppendBytes(payload)
	w.AppendBits(0x1, 1)
	w.AppendString("")
	r := reader(assert, pack(assert, w))
	r.ReadBits(5)
	got, err := r.ReadBytes()
	assert.For("bytes").ThatSlice(got).Equals(payload)
	assert.For("bytes error").ThatError(err).Succeeded()
	r.ReadBit()
	s, err := r.ReadString()
	assert.For("empty string").That(s).Equals("")
	assert.For("at end").ThatBoolean(r.AtEnd()).IsTrue()
}

func TestReaderBytesLengthPastEnd(t *testing.T) {
	assert := assert.To(t)
	// 40 bits: an aligned length of 100 followed by a single byte.
	r := reader(assert, []byte{40, 0, 0, 0, 100, 0, 0, 0, 0xaa})
	_, err := r.ReadBytes()
	assert.For("bytes").ThatError(err).HasCause(bitstream.ErrShortStream)
	assert.For("position").That(r.Position()).Equals(uint64(0))
}

func TestReaderInvalidUTF8(t *testing.T) {
	assert := assert.To(t)
	w := bitstream.NewWriter()
	w.AppendBytes([]byte{0xff, 0xfe, 0xfd})
	r := reader(assert, pack(assert, w))
	_, err := r.ReadString()
	assert.For("string").ThatError(err).HasCause(bitstream.ErrEncoding)
	assert.For("position").That(r.Position()).Equals(uint64(0))
	b, err := r.ReadBytes()
	assert.For("as bytes").ThatSlice(b).Equals([]byte{0xff, 0xfe, 0xfd})
}

func TestReaderTruncation(t *testing.T) {
	ctx := log.Testing(t)
	assert := assert.To(ctx)
	w := bitstream.NewWriter()
	w.AppendBool(true)
	w.AppendUint32(1234)
	w.AppendString("truncate me")
	w.AppendEnum(2, 3)
	w.AppendFloat64(2.5)
	data := pack(assert, w)

	decode := func(r *bitstream.Reader) error {
		if _, err := r.ReadBool(); err != nil {
			return err
		}
		if _, err := r.ReadUint32(); err != nil {
			return err
		}
		if _, err := r.ReadString(); err != nil {
			return err
		}
		if _, err := r.ReadEnum(3); err != nil {
			return err
		}
		_, err := r.ReadFloat64()
		return err
	}

	assert.For("full").ThatError(decode(reader(assert, data))).Succeeded()
	for n := bitstream.HeaderSize; n < len(data); n++ {
		r := reader(assert, data[:n])
		err := decode(r)
		assert.For("%d bytes", n).ThatBoolean(bitstream.IsShortStream(err)).IsTrue()
	}
}

func TestReaderBounded(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{8, 0, 0, 0, 0x0b})
	_, err := r.ReadBounded(4, 10)
	assert.For("over max").ThatError(err).HasCause(bitstream.ErrEncoding)
	assert.For("position").That(r.Position()).Equals(uint64(0))
	v, err := r.ReadBounded(4, 11)
	assert.For("at max").That(v).Equals(uint64(11))
	assert.For("at max error").ThatError(err).Succeeded()
}

func TestReaderSeek(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{8, 0, 0, 0, 0x81})
	r.ReadBits(7)
	assert.For("seek").ThatError(r.Seek(0)).Succeeded()
	b, _ := r.ReadBit()
	assert.For("first bit").That(b).Equals(uint8(1))
	assert.For("past limit").ThatError(r.Seek(9)).HasCause(bitstream.ErrShortStream)
	assert.For("position").That(r.Position()).Equals(uint64(1))
}

func TestReaderRewind(t *testing.T) {
	assert := assert.To(t)
	r := reader(assert, []byte{8, 0, 0, 0, 0x81})
	r.ReadBits(7)
	r.Rewind(0)
	b, _ := r.ReadBit()
	assert.For("first bit").That(b).Equals(uint8(1))
	defer func() {
		assert.For("forward").That(recover() != nil).Equals(true)
		assert.For("position").That(r.Position()).Equals(uint64(1))
	}()
	r.Rewind(5)
}
