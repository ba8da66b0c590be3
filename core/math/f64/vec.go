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


// Package f64 holds small fixed-size float64 vector types.
package f64

// Vec2 is a two element vector of float64.
// The elements are in the order X, Y.
type Vec2 [2]float64

// Vec3 is a three element vector of float64.
// The elements are in the order X, Y, Z.
type Vec3 [3]float64

// Vec4 is a four element vector of float64.
// The elements are in the order X, Y, Z, W.
type Vec4 [4]float64

// W returns a Vec4 with the first three elements set to v and the fourth set
// to w.
func (v Vec3) W(w float64) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// XY returns the first two elements of v.
func (v Vec3) XY() Vec2 {
	return Vec2{v[0], v[1]}
}

// XYZ returns the first three elements of v.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
