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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/math/u64"
)

const bytesPerLine = 8

// dump writes a description of the packed stream in data to w.
// Decoding errors of individual fields are printed, not returned.
func dump(w io.Writer, data []byte, fields []field, showBits bool) error {
	r, err := bitstream.NewReader(data)
	if err != nil {
		return err
	}
	payload := data[bitstream.HeaderSize:]
	end := r.EndBitIndex()
	fmt.Fprintf(w, "header:  %d bits\n", end)
	fmt.Fprintf(w, "payload: %d bytes", len(payload))
	if need := u64.AlignUp(end, 8) / 8; need != uint64(len(payload)) {
		fmt.Fprintf(w, " (header needs %d)", need)
	}
	fmt.Fprintln(w)

	if showBits {
		fmt.Fprintln(w, "bits:")
		writeBits(w, payload, end)
	}

	if len(fields) == 0 {
		return nil
	}
	fmt.Fprintln(w, "fields:")
	for i, f := range fields {
		at := r.Position()
		v, err := f.decode(r)
		if err != nil {
			fmt.Fprintf(w, "  %2d %-18s @%-6d error: %v\n", i, f.name, at, err)
			return nil
		}
		fmt.Fprintf(w, "  %2d %-18s @%-6d %s\n", i, f.name, at, format(v))
	}
	if rem := r.Remaining(); rem > 0 {
		fmt.Fprintf(w, "%d bits not decoded\n", rem)
	}
	return nil
}

// writeBits prints the payload bits in stream order. Bits past end are shown
// as dots.
func writeBits(w io.Writer, payload []byte, end uint64) {
	sb := strings.Builder{}
	for i, b := range payload {
		if i%bytesPerLine == 0 {
			if i > 0 {
				fmt.Fprintln(w, sb.String())
				sb.Reset()
			}
			fmt.Fprintf(&sb, "  %04x:", i)
		}
		sb.WriteByte(' ')
		for bit := 0; bit < 8; bit++ {
			switch {
			case uint64(i*8+bit) >= end:
				sb.WriteByte('.')
			case (b>>bit)&1 == 1:
				sb.WriteByte('1')
			default:
				sb.WriteByte('0')
			}
		}
	}
	if sb.Len() > 0 {
		fmt.Fprintln(w, sb.String())
	}
}

func format(v interface{}) string {
	switch v := v.(type) {
	case []byte:
		if len(v) > 32 {
			return fmt.Sprintf("[%d bytes] % x ...", len(v), v[:32])
		}
		return fmt.Sprintf("[%d bytes] % x", len(v), v)
	case string:
		return fmt.Sprintf("%q", v)
	case float32, float64:
		return fmt.Sprintf("%g", v)
	case uint64:
		return fmt.Sprintf("%d (0x%x)", v, v)
	default:
		return fmt.Sprint(v)
	}
}
