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


// Package fault holds the error primitives shared by the rest of the
// codebase.
package fault

import "github.com/pkg/errors"

// Const is the type for constant error values.
type Const string

// Error implements error for Const returning the string value of the const.
func (e Const) Error() string { return string(e) }

// Matches returns true if the root cause of err is e.
// Errors annotated with errors.Wrap and friends are unwrapped first.
func (e Const) Matches(err error) bool {
	if err == nil {
		return false
	}
	c, ok := errors.Cause(err).(Const)
	return ok && c == e
}

// One is something that collects only the first error handed to it.
type One struct{ err error }

// First returns the first error added to it.
func (o *One) First() error {
	return o.err
}

// Collect adds an error to the collection.
// Everything after the first non-nil error is dropped.
func (o *One) Collect(err error) {
	if o.err != nil {
		return
	}
	o.err = err
}
