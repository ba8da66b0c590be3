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

// Encodable is the interface to types that can write themselves to a Writer.
type Encodable interface {
	// Encode appends the value's fields to w in a fixed order.
	Encode(w *Writer)
}

// Decodable is the interface to types that can read themselves from a Reader.
type Decodable interface {
	// Decode reads exactly the bits written by Encode, in the same order, into
	// the receiver. Errors from the Reader are returned, not masked.
	Decode(r *Reader) error
}

// Codable is the interface to any type that wants to be encoded and decoded.
// Composite types implement it by encoding each of their fields in turn.
type Codable interface {
	Encodable
	Decodable
}

// Codec encodes and decodes values of type T.
// Codecs are constructed once with whatever range or width parameters they
// need and then applied explicitly at each call site.
type Codec[T any] interface {
	// Encode appends v to w. Precondition failures are recorded on w.
	Encode(w *Writer, v T)
	// Decode reads a value written by Encode.
	Decode(r *Reader) (T, error)
}

// Marshal encodes v into a new Writer and returns the packed bytes.
func Marshal(v Encodable) ([]byte, error) {
	w := NewWriter()
	v.Encode(w)
	return w.Pack()
}

// Unmarshal decodes the packed bytes in data into v.
func Unmarshal(data []byte, v Decodable) error {
	r, err := NewReader(data)
	if err != nil {
		return err
	}
	return v.Decode(r)
}

// PackedSize returns the number of bytes Marshal would produce for v.
func PackedSize(v Encodable) (int, error) {
	w := NewWriter()
	v.Encode(w)
	if err := w.Error(); err != nil {
		return 0, err
	}
	return HeaderSize + w.Len(), nil
}

// Pack encodes v with the codec c into a new Writer and returns the packed
// bytes.
func Pack[T any](c Codec[T], v T) ([]byte, error) {
	w := NewWriter()
	c.Encode(w, v)
	return w.Pack()
}

// Unpack decodes a single value with the codec c from the packed bytes in
// data.
func Unpack[T any](c Codec[T], data []byte) (T, error) {
	r, err := NewReader(data)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(r)
}

// Object is a Codec for any type whose pointer implements Codable.
//
//	var players = bitstream.BoundedArray[Player]{
//		MaxCount: 16,
//		Elem:     bitstream.Object[Player, *Player]{},
//	}
type Object[T any, P interface {
	*T
	Codable
}] struct{}

// Encode calls Encode on a copy of v.
func (Object[T, P]) Encode(w *Writer, v T) { P(&v).Encode(w) }

// Decode decodes into a new T.
func (Object[T, P]) Decode(r *Reader) (T, error) {
	var v T
	err := P(&v).Decode(r)
	return v, err
}
