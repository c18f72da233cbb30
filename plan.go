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

package injekt

import (
	"sync"

	"github.com/ShikaSD/injekt-sub000/factory"
	"github.com/ShikaSD/injekt-sub000/injektevent"
	"github.com/ShikaSD/injekt-sub000/runtime"
)

// Plan is the resolved implementation of a component tree.
type Plan struct {
	arena  *factory.Arena
	logger injektevent.Logger

	compileOnce sync.Once
	program     *runtime.Program
	compileErr  error
}

// Root returns the implementation of the root component.
func (p *Plan) Root() *factory.Implementation { return p.arena.Root() }

// Components returns the implementations of all components, parents
// before children.
func (p *Plan) Components() []*factory.Implementation { return p.arena.All() }

// Component returns the implementation of the first component called
// name, in Components order.
func (p *Plan) Component(name string) (*factory.Implementation, bool) {
	for _, impl := range p.arena.All() {
		if impl.Name() == name {
			return impl, true
		}
	}
	return nil, false
}

// Instantiate creates a container of the root component from its
// constructor parameters, in declaration order. The plan is compiled on the
// first call; every producer must carry an implementation.
func (p *Plan) Instantiate(args ...any) (*runtime.Container, error) {
	p.compileOnce.Do(func() {
		p.program, p.compileErr = runtime.Compile(p.arena, p.logger)
	})
	if p.compileErr != nil {
		return nil, p.compileErr
	}
	return p.program.New(args...)
}
