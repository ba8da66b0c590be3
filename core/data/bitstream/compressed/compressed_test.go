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

package compressed_test

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/MarSe32m/SebbuKit/core/assert"
	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/data/bitstream/compressed"
	"github.com/MarSe32m/SebbuKit/core/log"
)

func TestBlockRoundTrip(t *testing.T) {
	ctx := log.Testing(t)
	c := compressed.Block{MaxSize: 1 << 16}
	in := bytes.Repeat([]byte("the same words again and again "), 1000)
	in = in[:1<<15]

	w := bitstream.NewWriter()
	w.AppendBool(true)
	c.Encode(w, in)
	w.AppendBool(true)
	data, err := w.Pack()
	assert.For(ctx, "pack").ThatError(err).Succeeded()
	assert.For(ctx, "compressed").That(len(data) < len(in)/10).Equals(true)

	r, _ := bitstream.NewReader(data)
	r.ReadBool()
	out, err := c.Decode(r)
	assert.For(ctx, "decode").ThatError(err).Succeeded()
	assert.For(ctx, "data").ThatBoolean(bytes.Equal(out, in)).IsTrue()
	b, err := r.ReadBool()
	assert.For(ctx, "trailer").That(b).Equals(true)
}

func TestBlockEmpty(t *testing.T) {
	ctx := log.Testing(t)
	c := compressed.Block{MaxSize: 16}
	data, err := bitstream.Pack[[]byte](c, nil)
	assert.For(ctx, "pack").ThatError(err).Succeeded()
	out, err := bitstream.Unpack[[]byte](c, data)
	assert.For(ctx, "unpack").ThatError(err).Succeeded()
	assert.For(ctx, "data").ThatSlice(out).IsEmpty()
}

func TestBlockTooLarge(t *testing.T) {
	ctx := log.Testing(t)
	_, err := bitstream.Pack[[]byte](compressed.Block{MaxSize: 4}, []byte{1, 2, 3, 4, 5})
	assert.For(ctx, "encode").ThatError(err).HasCause(bitstream.ErrOutOfRange)
}

func TestBlockExpansionLimit(t *testing.T) {
	ctx := log.Testing(t)
	big := compressed.Block{MaxSize: 1 << 20}
	data, err := bitstream.Pack[[]byte](big, make([]byte, 1<<20))
	assert.For(ctx, "pack").ThatError(err).Succeeded()
	assert.For(ctx, "small payload").That(len(data) < 1024).Equals(true)

	r, _ := bitstream.NewReader(data)
	_, err = compressed.Block{MaxSize: 1024}.Decode(r)
	assert.For(ctx, "decode").ThatError(err).HasCause(bitstream.ErrEncoding)
	assert.For(ctx, "position").That(r.Position()).Equals(uint64(0))
}

func TestBlockExpansionLimitWithoutContentSize(t *testing.T) {
	ctx := log.Testing(t)
	buf := &bytes.Buffer{}
	enc, err := zstd.NewWriter(buf)
	assert.For(ctx, "new writer").ThatError(err).Succeeded()
	_, err = enc.Write(make([]byte, 1<<20))
	assert.For(ctx, "write").ThatError(err).Succeeded()
	assert.For(ctx, "close").ThatError(enc.Close()).Succeeded()

	var h zstd.Header
	assert.For(ctx, "header").ThatError(h.Decode(buf.Bytes())).Succeeded()
	assert.For(ctx, "content size").ThatBoolean(h.HasFCS).IsFalse()

	w := bitstream.NewWriter()
	w.AppendBytes(buf.Bytes())
	data, err := w.Pack()
	assert.For(ctx, "pack").ThatError(err).Succeeded()

	r, _ := bitstream.NewReader(data)
	_, err = compressed.Block{MaxSize: 1024}.Decode(r)
	assert.For(ctx, "decode").ThatError(err).HasCause(bitstream.ErrEncoding)
	assert.For(ctx, "position").That(r.Position()).Equals(uint64(0))

	r, _ = bitstream.NewReader(data)
	out, err := compressed.Block{MaxSize: 1 << 20}.Decode(r)
	assert.For(ctx, "fits").ThatError(err).Succeeded()
	assert.For(ctx, "size").That(len(out)).Equals(1 << 20)
}

func TestBlockGarbage(t *testing.T) {
	ctx := log.Testing(t)
	c := compressed.Block{MaxSize: 1024}
	for _, frame := range [][]byte{{}, {1, 2, 3}, {0x28, 0xb5, 0x2f, 0xfd, 0xff, 0xff, 0xff}} {
		w := bitstream.NewWriter()
		w.AppendBytes(frame)
		data, _ := w.Pack()
		_, err := bitstream.Unpack[[]byte](c, data)
		assert.For(ctx, "frame %x", frame).ThatError(err).HasCause(bitstream.ErrEncoding)
	}
}

func TestBlockShortStream(t *testing.T) {
	ctx := log.Testing(t)
	_, err := bitstream.Unpack[[]byte](compressed.Block{MaxSize: 8}, []byte{0, 0, 0, 0})
	assert.For(ctx, "decode").ThatError(err).HasCause(bitstream.ErrShortStream)
}
