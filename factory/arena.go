// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package factory turns resolved binding graphs into component
// implementations: the fields a component caches, the order they are
// initialized in, and the expression producing each requested key.
package factory

import (
	"fmt"

	"github.com/ShikaSD/injekt-sub000/binding"
)

// Arena holds the implementations of a component tree, indexed by
// ComponentID. Children point at their parent by index, never the other
// way around.
type Arena struct {
	impls []*Implementation
}

// NewArena returns an arena with room for n components.
func NewArena(n int) *Arena {
	return &Arena{impls: make([]*Implementation, n)}
}

// Set stores impl at its ID.
func (a *Arena) Set(impl *Implementation) {
	a.impls[impl.ID()] = impl
}

// Get returns the implementation with the given ID.
func (a *Arena) Get(id binding.ComponentID) *Implementation {
	if id < 0 || int(id) >= len(a.impls) {
		panic(fmt.Sprintf("component #%d is not in the arena", id))
	}
	return a.impls[id]
}

// Root returns the implementation of the root component.
func (a *Arena) Root() *Implementation { return a.Get(0) }

// Len returns the number of components.
func (a *Arena) Len() int { return len(a.impls) }

// All returns the implementations in ID order.
func (a *Arena) All() []*Implementation {
	out := make([]*Implementation, len(a.impls))
	copy(out, a.impls)
	return out
}
