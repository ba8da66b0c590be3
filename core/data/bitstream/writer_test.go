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

func pack(assert assert.Manager, w *bitstream.Writer) []byte {
	data, err := w.Pack()
	assert.For("pack").ThatError(err).Succeeded()
	return data
}

func TestWriterPackLayout(t *testing.T) {
	assert := assert.To(log.Testing(t))
	for _, test := range []struct {
		name   string
		write  func(w *bitstream.Writer)
		expect []byte
	}{
		{"empty", func(w *bitstream.Writer) {}, []byte{0, 0, 0, 0}},
		{"three bits", func(w *bitstream.Writer) { w.AppendBits(0b101, 3) },
			[]byte{3, 0, 0, 0, 0x05}},
		{"shared byte", func(w *bitstream.Writer) {
			w.AppendBits(0b101, 3)
			w.AppendBits(0b11010, 5)
		}, []byte{8, 0, 0, 0, 0xd5}},
		{"uint16", func(w *bitstream.Writer) { w.AppendUint16(0x1234) },
			[]byte{16, 0, 0, 0, 0x34, 0x12}},
		{"negative", func(w *bitstream.Writer) { w.AppendInt8(-1) },
			[]byte{8, 0, 0, 0, 0xff}},
		{"bool then bytes", func(w *bitstream.Writer) {
			w.AppendBool(true)
			w.AppendBytes([]byte{1, 2})
		}, []byte{56, 0, 0, 0, 0x01, 2, 0, 0, 0, 1, 2}},
		{"empty string", func(w *bitstream.Writer) { w.AppendString("") },
			[]byte{32, 0, 0, 0, 0, 0, 0, 0}},
		{"enum", func(w *bitstream.Writer) { w.AppendEnum(4, 5) },
			[]byte{3, 0, 0, 0, 0x04}},
		{"single case enum", func(w *bitstream.Writer) { w.AppendEnum(0, 1) },
			[]byte{0, 0, 0, 0}},
	} {
		w := bitstream.NewWriter()
		test.write(w)
		assert.For(test.name).ThatSlice(pack(assert, w)).Equals(test.expect)
	}
}

func TestWriterDeterministic(t *testing.T) {
	assert := assert.To(t)
	write := func() []byte {
		w := bitstream.NewWriter()
		w.AppendBool(true)
		w.AppendUint32(0xdeadbeef)
		w.AppendString("héllo")
		w.AppendFloat64(math.Pi)
		w.AppendEnum(2, 3)
		return pack(assert, w)
	}
	assert.For("identical").ThatSlice(write()).Equals(write())
}

func TestWriterPackIsRepeatable(t *testing.T) {
	assert := assert.To(t)
	w := bitstream.NewWriter()
	w.AppendBits(0x3, 2)
	first := pack(assert, w)
	assert.For("again").ThatSlice(pack(assert, w)).Equals(first)
	w.AppendBits(0x1, 1)
	assert.For("continued").ThatSlice(pack(assert, w)).Equals([]byte{3, 0, 0, 0, 0x07})
}

func TestWriterCounts(t *testing.T) {
	assert := assert.To(t)
	w := bitstream.NewWriter()
	w.AppendBits(0, 9)
	assert.For("bit count").That(w.BitCount()).Equals(uint64(9))
	assert.For("len").That(w.Len()).Equals(2)
	w.AppendBytes(nil)
	assert.For("aligned bit count").That(w.BitCount()).Equals(uint64(48))
	assert.For("aligned len").That(w.Len()).Equals(6)
}

func TestWriterPreconditions(t *testing.T) {
	assert := assert.To(t)
	for _, test := range []struct {
		name  string
		write func(w *bitstream.Writer)
		cause error
	}{
		{"width over 64", func(w *bitstream.Writer) { w.AppendBits(0, 65) }, bitstream.ErrWidth},
		{"width over uint8", func(w *bitstream.Writer) { bitstream.AppendUnsigned(w, uint8(1), 9) }, bitstream.ErrWidth},
		{"enum out of range", func(w *bitstream.Writer) { w.AppendEnum(5, 5) }, bitstream.ErrOutOfRange},
	} {
		w := bitstream.NewWriter()
		w.AppendBool(true)
		test.write(w)
		before := w.BitCount()
		w.AppendUint32(42)
		assert.For("%s ignores appends", test.name).That(w.BitCount()).Equals(before)
		assert.For("%s error", test.name).ThatError(w.Error()).HasCause(test.cause)
		_, err := w.Pack()
		assert.For("%s pack", test.name).ThatError(err).HasCause(test.cause)
	}
}

func TestWriterFirstErrorWins(t *testing.T) {
	assert := assert.To(t)
	w := bitstream.NewWriter()
	w.AppendEnum(3, 2)
	w.AppendBits(0, 100)
	assert.For("first").ThatError(w.Error()).HasCause(bitstream.ErrOutOfRange)
}

func BenchmarkWriterMixed(b *testing.B) {
	w := bitstream.NewWriter()
	for i := 0; i < b.N; i++ {
		w.AppendBool(i&1 == 0)
		w.AppendBits(uint64(i), 7)
		w.AppendUint32(uint32(i))
	}
}
