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


package assert

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// OnSlice is the result of calling ThatSlice on an Assertion.
// It provides assertion tests that are specific to slice types.
type OnSlice struct {
	Assertion
	slice interface{}
}

// ThatSlice returns an OnSlice for assertions on slice type objects.
// Calling this with a non slice type will result in panics.
func (a Assertion) ThatSlice(slice interface{}) OnSlice {
	return OnSlice{Assertion: a, slice: slice}
}

// IsEmpty asserts that the slice was of length 0
func (o OnSlice) IsEmpty() bool {
	value := reflect.ValueOf(o.slice)
	return o.CompareRaw(value.Len(), "is", "empty").Test(value.Len() == 0)
}

// IsLength asserts that the slice has exactly the specified number of elements
func (o OnSlice) IsLength(length int) bool {
	value := reflect.ValueOf(o.slice)
	return o.Compare(value.Len(), "length ==", length).Test(value.Len() == length)
}

// Equals asserts the array or slice matches expected.
func (o OnSlice) Equals(expected interface{}) bool {
	return o.slicesEqual(expected, func(a, b interface{}) bool { return a == b })
}

// DeepEquals asserts the array or slice matches expected using a deep-equal comparison.
func (o OnSlice) DeepEquals(expected interface{}) bool {
	return o.slicesEqual(expected, func(a, b interface{}) bool { return cmp.Equal(a, b, deepOptions...) })
}

// slicesEqual compares the slices element by element. On failure every
// element is listed, marked with - when missing, + when unexpected and * when
// it differs from the expected value.
func (o OnSlice) slicesEqual(expected interface{}, same func(a, b interface{}) bool) bool {
	got, want := reflect.ValueOf(o.slice), reflect.ValueOf(expected)
	n := got.Len()
	if want.Len() > n {
		n = want.Len()
	}
	equal := got.Len() == want.Len()
	for i := 0; i < n; i++ {
		switch {
		case i >= got.Len():
			o.Printf("-\t%d\t\t\t==>\t", i).Println(want.Index(i).Interface())
		case i >= want.Len():
			o.Printf("+\t%d\t", i).Print(got.Index(i).Interface()).Rawln("\t;")
		default:
			g, w := got.Index(i).Interface(), want.Index(i).Interface()
			if same(g, w) {
				o.Printf("\t%d\t", i).Print(g).Rawln("\t;")
				continue
			}
			equal = false
			o.Printf("*\t%d\t", i).Print(g).Printf("\t==>\t").Println(w)
		}
	}
	return o.Test(equal)
}
