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


package f32_test

import (
	"testing"

	"github.com/MarSe32m/SebbuKit/core/assert"
	"github.com/MarSe32m/SebbuKit/core/log"
	"github.com/MarSe32m/SebbuKit/core/math/f32"
)

func TestSwizzle(t *testing.T) {
	ctx := log.Testing(t)
	v := f32.Vec3{1, 2, 3}
	assert.For(ctx, "W").That(v.W(4)).Equals(f32.Vec4{1, 2, 3, 4})
	assert.For(ctx, "XY").That(v.XY()).Equals(f32.Vec2{1, 2})
	assert.For(ctx, "XYZ").That(v.W(4).XYZ()).Equals(v)
}
