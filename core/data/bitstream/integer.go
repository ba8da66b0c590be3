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

import "unsafe"

// UnsignedInteger is the set of unsigned integer types.
type UnsignedInteger interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// SignedInteger is the set of signed integer types.
type SignedInteger interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Integer is the set of all integer types.
type Integer interface {
	UnsignedInteger | SignedInteger
}

// BitSize returns the width of the integer type T in bits.
func BitSize[T Integer]() uint32 {
	var v T
	return uint32(unsafe.Sizeof(v)) * 8
}
