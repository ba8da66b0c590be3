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

// The bitdump command prints the contents of a packed bit stream.
//
// It shows the header, the payload bits in stream order (least significant
// bit of each byte first) and, when given a field list, decodes the listed
// fields in order until the stream ends or a field fails to decode.
//
//	bitdump -hex -fields "bool,u32,string,float:-10:10:8,enum:5" packet.txt
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/log"
)

var (
	hexInput = flag.Bool("hex", false, "Read the input as hex text instead of binary")
	fieldSet = flag.String("fields", "", "Comma separated list of fields to decode: "+fieldHelp)
	noBits   = flag.Bool("nobits", false, "Do not print the payload bits")
	verbose  = flag.Bool("v", false, "Log debug messages")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: bitdump [flags] [file]\n\nReads stdin when no file is given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := log.PutHandler(context.Background(), log.Writer(log.Brief, os.Stderr))
	if !*verbose {
		ctx = log.PutFilter(ctx, log.SeverityFilter(log.Info))
	}
	if err := run(ctx); err != nil {
		log.E(ctx, "%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	fields, err := parseFields(*fieldSet)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	name := "stdin"
	if flag.NArg() > 0 {
		name = flag.Arg(0)
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrapf(err, "Reading %s", name)
	}
	if *hexInput {
		if data, err = decodeHex(string(data)); err != nil {
			return errors.Wrapf(err, "Decoding %s", name)
		}
	}
	log.D(ctx, "Read %d bytes from %s", len(data), name)

	return dump(os.Stdout, data, fields, !*noBits)
}

// decodeHex decodes hex text, ignoring white space and an optional 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
