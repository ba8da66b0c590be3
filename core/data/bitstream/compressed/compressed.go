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

// Package compressed holds a bit stream codec for zstd compressed byte
// blocks.
package compressed

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
)

// Limit is the largest MaxSize a Block may declare.
const Limit = 64 << 20

// Block is the Codec for byte blocks that are zstd compressed before being
// written as a regular length prefixed block.
//
// MaxSize bounds the decompressed size. Frames that claim or produce more
// than MaxSize bytes fail to decode with ErrEncoding, so a small payload
// cannot expand into an arbitrarily large allocation.
type Block struct {
	MaxSize uint32
}

var _ bitstream.Codec[[]byte] = Block{}

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error
	decoders    sync.Pool
)

// sharedEncoder returns the encoder used by every Block. It is safe for
// concurrent use through EncodeAll.
func sharedEncoder() (*zstd.Encoder, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithZeroFrames(true))
	})
	return encoder, encoderErr
}

// getDecoder returns a synchronous stream decoder from the pool.
func getDecoder() (*zstd.Decoder, error) {
	if d, ok := decoders.Get().(*zstd.Decoder); ok {
		return d, nil
	}
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(Limit))
}

// putDecoder drops the decoder's reference to its last input and returns it
// to the pool.
func putDecoder(d *zstd.Decoder) {
	if d.Reset(nil) == nil {
		decoders.Put(d)
	}
}

func (b Block) limit() uint64 {
	if b.MaxSize > Limit {
		return Limit
	}
	return uint64(b.MaxSize)
}

// Encode compresses v and appends it to w as a byte block. It is an error for
// v to be longer than MaxSize.
func (b Block) Encode(w *bitstream.Writer, v []byte) {
	if uint64(len(v)) > b.limit() {
		w.SetError(errors.Wrapf(bitstream.ErrOutOfRange, "Block of %d bytes, max %d", len(v), b.limit()))
		return
	}
	enc, err := sharedEncoder()
	if err != nil {
		w.SetError(errors.Wrap(err, "Creating zstd encoder"))
		return
	}
	w.AppendBytes(enc.EncodeAll(v, nil))
}

// Decode reads a byte block written by Encode and decompresses it.
func (b Block) Decode(r *bitstream.Reader) ([]byte, error) {
	start := r.Position()
	frame, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	out, err := b.decompress(frame)
	if err != nil {
		r.Rewind(start)
		return nil, err
	}
	return out, nil
}

// decompress streams frame through a pooled decoder, reading at most one
// byte past the limit so oversized output is caught without buffering it all.
func (b Block) decompress(frame []byte) ([]byte, error) {
	if len(frame) == 0 {
		return nil, errors.Wrap(bitstream.ErrEncoding, "Empty zstd frame")
	}
	var h zstd.Header
	if err := h.Decode(frame); err != nil {
		return nil, errors.Wrapf(bitstream.ErrEncoding, "Bad zstd frame header: %v", err)
	}
	if h.HasFCS && h.FrameContentSize > b.limit() {
		return nil, errors.Wrapf(bitstream.ErrEncoding, "Block of %d bytes, max %d", h.FrameContentSize, b.limit())
	}
	dec, err := getDecoder()
	if err != nil {
		return nil, errors.Wrap(err, "Creating zstd decoder")
	}
	defer putDecoder(dec)
	if err := dec.Reset(bytes.NewReader(frame)); err != nil {
		return nil, errors.Wrapf(bitstream.ErrEncoding, "Decompressing block: %v", err)
	}
	out, err := io.ReadAll(io.LimitReader(dec, int64(b.limit())+1))
	if err != nil {
		return nil, errors.Wrapf(bitstream.ErrEncoding, "Decompressing block: %v", err)
	}
	if uint64(len(out)) > b.limit() {
		return nil, errors.Wrapf(bitstream.ErrEncoding, "Block exceeds %d bytes", b.limit())
	}
	return out, nil
}
