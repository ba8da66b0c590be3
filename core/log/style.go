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
	"strings"
)

// Style provides customization for printing messages.
type Style struct {
	Name      string
	Timestamp bool // Show timestamps?
	Tag       bool // Show tags?
	Severity  bool // Show the short severity?
	Values    bool // Show bound values?
}

var (
	// Raw is a style that only prints the text of the message.
	Raw = Style{Name: "raw"}

	// Brief is a style that only prints the text and short severity of the
	// message.
	Brief = Style{Name: "brief", Severity: true}

	// Normal is a style that prints the timestamp, tag, short severity and
	// values.
	Normal = Style{Name: "normal", Timestamp: true, Tag: true, Severity: true, Values: true}
)

// Print returns the message m printed using the style s.
func (s Style) Print(m *Message) string {
	sb := strings.Builder{}
	if s.Timestamp {
		sb.WriteString(m.Time.Format("15:04:05.000"))
		sb.WriteRune(' ')
	}
	if s.Severity {
		sb.WriteString(m.Severity.Short())
		sb.WriteRune(' ')
	}
	if s.Tag && m.Tag != "" {
		fmt.Fprintf(&sb, "[%s] ", m.Tag)
	}
	sb.WriteString(m.Text)
	if s.Values && len(m.Values) > 0 {
		sb.WriteString(" {")
		for i, v := range m.Values {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(v.String())
		}
		sb.WriteRune('}')
	}
	return sb.String()
}
