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
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/data/bitstream/compressed"
	"github.com/MarSe32m/SebbuKit/core/data/bitstream/quant"
	"github.com/MarSe32m/SebbuKit/core/fault"
)

const fieldHelp = "bool, u8, u16, u32, u64, i8, i16, i32, i64, f32, f64, bytes, string, " +
	"uint:BITS, enum:CASES, float:MIN:MAX:BITS, int:MIN:MAX, zstd:MAXSIZE"

// ErrField is returned for a field list entry that cannot be parsed.
const ErrField = fault.Const("Invalid field")

type field struct {
	name   string
	decode func(r *bitstream.Reader) (interface{}, error)
}

func using[T any](c bitstream.Codec[T]) func(r *bitstream.Reader) (interface{}, error) {
	return func(r *bitstream.Reader) (interface{}, error) {
		v, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

var simpleFields = map[string]func(r *bitstream.Reader) (interface{}, error){
	"bool":   using[bool](bitstream.Bool{}),
	"u8":     using[uint8](bitstream.Fixed[uint8]{}),
	"u16":    using[uint16](bitstream.Fixed[uint16]{}),
	"u32":    using[uint32](bitstream.Fixed[uint32]{}),
	"u64":    using[uint64](bitstream.Fixed[uint64]{}),
	"i8":     using[int8](bitstream.Fixed[int8]{}),
	"i16":    using[int16](bitstream.Fixed[int16]{}),
	"i32":    using[int32](bitstream.Fixed[int32]{}),
	"i64":    using[int64](bitstream.Fixed[int64]{}),
	"f32":    using[float32](bitstream.Float32{}),
	"f64":    using[float64](bitstream.Float64{}),
	"bytes":  using[[]byte](bitstream.Bytes{}),
	"string": using[string](bitstream.String{}),
}

// parseFields parses a comma separated field list such as
// "bool,uint:7,float:-1:1:10".
func parseFields(list string) ([]field, error) {
	out := []field{}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		decode, err := parseField(name)
		if err != nil {
			return nil, err
		}
		out = append(out, field{name, decode})
	}
	return out, nil
}

func parseField(name string) (func(r *bitstream.Reader) (interface{}, error), error) {
	if f, ok := simpleFields[name]; ok {
		return f, nil
	}
	parts := strings.Split(name, ":")
	args := parts[1:]
	want := func(n int) error {
		if len(args) != n {
			return errors.Wrapf(ErrField, "%s takes %d arguments, got %d", parts[0], n, len(args))
		}
		return nil
	}
	switch parts[0] {
	case "uint":
		if err := want(1); err != nil {
			return nil, err
		}
		bits, err := parseUint(args[0], 64)
		if err != nil {
			return nil, err
		}
		return using[uint64](bitstream.Unsigned[uint64]{Bits: uint32(bits)}), nil
	case "enum":
		if err := want(1); err != nil {
			return nil, err
		}
		cases, err := parseUint(args[0], 1<<32-1)
		if err != nil {
			return nil, err
		}
		if cases == 0 {
			return nil, errors.Wrap(ErrField, "enum needs at least one case")
		}
		return using[uint32](bitstream.Enum{Cases: uint32(cases)}), nil
	case "float":
		if err := want(3); err != nil {
			return nil, err
		}
		min, err1 := strconv.ParseFloat(args[0], 64)
		max, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil {
			return nil, errors.Wrapf(ErrField, "%s: bad range", name)
		}
		bits, err := parseUint(args[2], 53)
		if err != nil {
			return nil, err
		}
		c, err := quant.NewFloat64(min, max, uint32(bits))
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		return using[float64](c), nil
	case "int":
		if err := want(2); err != nil {
			return nil, err
		}
		min, err1 := strconv.ParseInt(args[0], 10, 64)
		max, err2 := strconv.ParseInt(args[1], 10, 64)
		if err1 != nil || err2 != nil {
			return nil, errors.Wrapf(ErrField, "%s: bad range", name)
		}
		c, err := quant.NewIntRange(min, max)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		return using[int64](c), nil
	case "zstd":
		if err := want(1); err != nil {
			return nil, err
		}
		size, err := parseUint(args[0], compressed.Limit)
		if err != nil {
			return nil, err
		}
		return using[[]byte](compressed.Block{MaxSize: uint32(size)}), nil
	}
	return nil, errors.Wrapf(ErrField, "Unknown field %q, want one of %s", name, fieldHelp)
}

func parseUint(s string, max uint64) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrField, "%q is not a number", s)
	}
	if v > max {
		return 0, errors.Wrapf(ErrField, "%d is larger than %d", v, max)
	}
	return v, nil
}
