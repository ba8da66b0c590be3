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

import "github.com/MarSe32m/SebbuKit/core/fault"

const (
	// ErrShortStream is returned when a read would consume bits beyond the
	// end of the valid region of the stream.
	ErrShortStream = fault.Const("Bit stream too short")
	// ErrEncoding is returned when decoded bits do not form a valid value,
	// such as an unknown enum case or a string that is not UTF-8.
	ErrEncoding = fault.Const("Invalid encoding")
	// ErrMalformedHeader is returned by NewReader when the input is too short
	// to hold the bit count header.
	ErrMalformedHeader = fault.Const("Malformed bit stream header")
	// ErrWidth is returned when a bit width is larger than the value it
	// applies to.
	ErrWidth = fault.Const("Bit width exceeds value width")
	// ErrOutOfRange is returned when a value to encode lies outside the range
	// its codec was declared with.
	ErrOutOfRange = fault.Const("Value out of range")
	// ErrTooLarge is returned when a block or a whole stream is too large for
	// its 32-bit length field.
	ErrTooLarge = fault.Const("Value too large to encode")
)

// IsShortStream returns true if err was caused by reading past the end of a
// stream.
func IsShortStream(err error) bool { return ErrShortStream.Matches(err) }

// IsEncoding returns true if err was caused by bits that do not form a valid
// value.
func IsEncoding(err error) bool { return ErrEncoding.Matches(err) }
