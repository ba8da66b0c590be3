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


package log

import (
	"fmt"
	"time"
)

// Message is a single log record.
type Message struct {
	// The message text.
	Text string

	// The time the message was logged.
	Time time.Time

	// The severity of the message.
	Severity Severity

	// If true then the message indicates the process is about to stop.
	StopProcess bool

	// The tag of the context that logged the message.
	Tag string

	// The values bound to the context that logged the message, sorted by name.
	Values Values
}

// Value is a named value bound to a message.
type Value struct {
	Name  string
	Value interface{}
}

// Values is a sortable list of values.
type Values []*Value

func (v Values) Len() int           { return len(v) }
func (v Values) Less(i, j int) bool { return v[i].Name < v[j].Name }
func (v Values) Swap(i, j int)      { v[i], v[j] = v[j], v[i] }

func (v *Value) String() string {
	return fmt.Sprintf("%v: %v", v.Name, v.Value)
}
