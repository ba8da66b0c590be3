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


// Package log provides a context bound, severity filtered logger.
//
// Handlers, filters, tags and values are all carried by the context.Context,
// so a library only needs the context it was handed to log into whatever the
// application (or test) has installed:
//
//	ctx := log.PutHandler(context.Background(), log.Writer(log.Normal, os.Stderr))
//	log.I(ctx, "Read %d bits", n)
//
// If no handler has been installed messages are dropped.
package log
