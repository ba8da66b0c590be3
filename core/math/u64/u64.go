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


package u64

import "math/bits"

// Min returns the minimum value of a and b.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum value of a and b.
func Max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// AlignUp returns the result of aligning up the given value to the given alignment.
func AlignUp(value, alignment uint64) uint64 {
	if value%alignment != 0 {
		return value + alignment - (value % alignment)
	}
	return value
}

// BitsFor returns the number of bits needed to hold every value in [0, max].
// BitsFor(0) is 0, BitsFor(10) is 4, BitsFor(255) is 8.
func BitsFor(max uint64) uint32 {
	return uint32(bits.Len64(max))
}

// CeilLog2 returns ⌈log₂(n)⌉, the number of bits needed to tell n distinct
// values apart. CeilLog2(0) and CeilLog2(1) are both 0.
func CeilLog2(n uint64) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len64(n - 1))
}
