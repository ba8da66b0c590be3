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

package message

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/pkg/errors"

	"github.com/MarSe32m/SebbuKit/core/data/bitstream"
	"github.com/MarSe32m/SebbuKit/core/fault"
	"github.com/MarSe32m/SebbuKit/core/log"
)

// ErrUnregistered is recorded when packing a message whose type was never
// added to the Registry.
const ErrUnregistered = fault.Const("Message type not registered")

// Message is the interface to any type that can be sent through a Registry.
// Messages are pointers to Codable structs.
type Message interface {
	bitstream.Codable
}

// Kind identifies a message type within a Registry.
type Kind uint32

// Class describes a registered message type.
type Class struct {
	Kind Kind
	Name string
	Type reflect.Type
	New  func() Message
}

// Registry maps kinds to message types.
//
// Types are added at start-up. After that Pack, Unpack, Encode and Decode are
// safe for concurrent use.
type Registry struct {
	mutex   sync.RWMutex
	classes []Class
	byType  map[reflect.Type]Kind
}

var _ bitstream.Codec[Message] = (*Registry)(nil)

// NewRegistry returns a new, empty Registry.
func NewRegistry() *Registry {
	return &Registry{byType: map[reflect.Type]Kind{}}
}

// Add registers the type of the messages returned by create under name, and
// returns the kind it was assigned. It panics if create is nil, returns nil,
// or if the type is already registered.
func (r *Registry) Add(name string, create func() Message) Kind {
	if create == nil {
		panic(fmt.Errorf("Attempt to add nil factory for %s to registry", name))
	}
	m := create()
	if m == nil {
		panic(fmt.Errorf("Factory for %s returned nil", name))
	}
	t := reflect.TypeOf(m)

	r.mutex.Lock()
	defer r.mutex.Unlock()
	if k, found := r.byType[t]; found {
		panic(fmt.Errorf("Message type %v already present as %s", t, r.classes[k].Name))
	}
	k := Kind(len(r.classes))
	r.classes = append(r.classes, Class{Kind: k, Name: name, Type: t, New: create})
	r.byType[t] = k
	return k
}

// Add registers *T in r under name. It is shorthand for
//
//	r.Add(name, func() message.Message { return new(T) })
func Add[T any, P interface {
	*T
	Message
}](r *Registry, name string) Kind {
	return r.Add(name, func() Message { return P(new(T)) })
}

// Count returns the number of registered kinds.
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.classes)
}

// Lookup returns the class registered for kind, or false if there is none.
func (r *Registry) Lookup(kind Kind) (Class, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	if int(kind) >= len(r.classes) {
		return Class{}, false
	}
	return r.classes[kind], true
}

// KindOf returns the kind registered for the type of m, or false if it was
// never added.
func (r *Registry) KindOf(m Message) (Kind, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	k, ok := r.byType[reflect.TypeOf(m)]
	return k, ok
}

// Visit invokes visitor for every registered class in kind order.
func (r *Registry) Visit(visitor func(Class)) {
	r.mutex.RLock()
	classes := append([]Class(nil), r.classes...)
	r.mutex.RUnlock()
	for _, c := range classes {
		visitor(c)
	}
}

// Encode appends the kind of m followed by its body to w.
// Unregistered message types are recorded as ErrUnregistered on w.
func (r *Registry) Encode(w *bitstream.Writer, m Message) {
	r.mutex.RLock()
	k, ok := r.byType[reflect.TypeOf(m)]
	count := uint32(len(r.classes))
	r.mutex.RUnlock()
	if !ok {
		w.SetError(errors.Wrapf(ErrUnregistered, "%T", m))
		return
	}
	w.AppendEnum(uint32(k), count)
	m.Encode(w)
}

// Decode reads a message written by Encode. Kinds outside the registered
// range are rejected with bitstream.ErrEncoding.
func (r *Registry) Decode(br *bitstream.Reader) (Message, error) {
	r.mutex.RLock()
	count := uint32(len(r.classes))
	r.mutex.RUnlock()
	if count == 0 {
		return nil, errors.Wrap(ErrUnregistered, "Empty registry")
	}
	start := br.Position()
	raw, err := br.ReadEnum(count)
	if err != nil {
		return nil, errors.Wrap(err, "Message kind")
	}
	class, _ := r.Lookup(Kind(raw))
	m := class.New()
	if err := m.Decode(br); err != nil {
		br.Rewind(start)
		return nil, errors.Wrapf(err, "Message %s", class.Name)
	}
	return m, nil
}

// Pack encodes m into a new packed bit stream.
func (r *Registry) Pack(m Message) ([]byte, error) {
	return bitstream.Pack[Message](r, m)
}

// Unpack decodes a message from a packed bit stream. Malformed input is
// logged at debug level to the logger bound to ctx and returned as an error.
func (r *Registry) Unpack(ctx context.Context, data []byte) (Message, error) {
	m, err := bitstream.Unpack[Message](r, data)
	if err != nil {
		log.Bind(ctx, log.V{"bytes": len(data), "kinds": r.Count()}).D("Dropping message: %v", err)
		return nil, err
	}
	return m, nil
}
