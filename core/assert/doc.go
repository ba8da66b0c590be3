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

// Package assert is a fluent assertion library for tests.
//
// An assertion starts from something to report to (normally the context
// returned by log.Testing), is titled with For, picks the kind of value with
// one of the That methods and finishes with a test:
//
//	ctx := log.Testing(t)
//	assert.For(ctx, "bit count").That(w.BitCount()).Equals(uint64(3))
//	assert.For(ctx, "read").ThatError(err).HasCause(bitstream.ErrShortStream)
//
// Failing assertions are reported with the Got / Expect lines aligned in
// columns, and the test continues unless the assertion was marked Critical.
package assert
