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

// Package message dispatches packed bit streams to one of a fixed set of
// message types.
//
// Each registered type is assigned a kind, its index in registration order.
// A packed message is its kind, written as an enum over the number of
// registered kinds, followed by the message body. Both peers must register
// the same types in the same order.
//
//	reg := message.NewRegistry()
//	message.Add[Join](reg, "join")
//	message.Add[Chat](reg, "chat")
//
//	data, err := reg.Pack(&Chat{Text: "hi"})
//	...
//	msg, err := reg.Unpack(ctx, data)
//	switch msg := msg.(type) {
//	case *Chat:
//	...
package message
