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

package decl

import (
	"fmt"

	"github.com/ShikaSD/injekt-sub000/internal/injektreflect"
	"github.com/ShikaSD/injekt-sub000/key"
)

// Site identifies where a statement was declared.
type Site = injektreflect.Frame

// Kind is the caching behavior of a bound key.
type Kind int

const (
	// Transient bindings produce a new value on every request.
	Transient Kind = iota
	// ScopedKind bindings produce one value per component instance.
	ScopedKind
	// InstanceKind bindings hold a value captured when the component is
	// constructed.
	InstanceKind
)

func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case ScopedKind:
		return "scoped"
	case InstanceKind:
		return "instance"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Func produces a value from its arguments, passed in parameter declaration
// order.
type Func func(args ...any) any

// Producer names a constructor and, when the plan is meant to be executed,
// carries its implementation.
type Producer struct {
	Name string
	Fn   Func
}

// Produce returns a Producer named name.
func Produce(name string, fn Func) Producer {
	return Producer{Name: name, Fn: fn}
}

func (p Producer) String() string {
	if p.Name != "" {
		return p.Name
	}
	return injektreflect.FuncName(p.Fn)
}

// Param is a single parameter of a producer.
type Param struct {
	Request key.Request

	// Assisted parameters are supplied by the caller at invocation time
	// instead of being resolved from the graph.
	Assisted bool
}

// Dep declares a parameter resolved from the graph as an instance of k.
func Dep(k key.Key) Param { return Param{Request: key.InstanceOf(k)} }

// DepProvider declares a parameter resolved as a Provider of k.
func DepProvider(k key.Key) Param { return Param{Request: key.ProviderOf(k)} }

// DepLazy declares a parameter resolved as a Lazy of k.
func DepLazy(k key.Key) Param { return Param{Request: key.LazyOf(k)} }

// Assisted declares a parameter supplied by the caller.
func Assisted(k key.Key) Param { return Param{Request: key.InstanceOf(k), Assisted: true} }

// AssistedKey returns the key a producer with params is bound under when
// it targets t: the target key itself, or the function type over the
// assisted parameter types when any parameter is assisted.
func AssistedKey(target key.Key, params []Param) key.Key {
	var assisted []key.Type
	for _, p := range params {
		if p.Assisted {
			assisted = append(assisted, p.Request.Key.Type())
		}
	}
	if len(assisted) == 0 {
		return target
	}
	return target.WithType(key.Func(target.Type(), assisted...))
}
