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

package injektevent

// Event defines an event emitted by injekt.
type Event interface {
	event() // Only injekt can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*GraphBuilt) event()         {}
func (*BindingResolved) event()    {}
func (*MultibindingMerged) event() {}
func (*Walked) event()             {}
func (*FieldsOrdered) event()      {}
func (*Built) event()              {}
func (*Instantiated) event()       {}

// GraphBuilt is emitted after the declarations of a component were
// collected into its binding graph.
type GraphBuilt struct {
	// Component is the name of the component.
	Component string
	// Scope is the scope tag the component declares, if any.
	Scope string
	// Parent is the name of the parent component, if any.
	Parent string
	// Err is non-nil if the declarations were rejected.
	Err error
}

// BindingResolved is emitted the first time a component resolves a key.
type BindingResolved struct {
	Component string
	Key       string
	// Kind is the binding node variant, e.g. "scoped" or "alias".
	Kind string
	// Resolver is the resolver that produced the node, or "parent".
	Resolver string
	// Owner is the component producing the value.
	Owner string
}

// MultibindingMerged is emitted when a component finalizes a multibound
// collection.
type MultibindingMerged struct {
	Component  string
	Collection string
	Inherited  int
	Local      int
	Err        error
}

// Walked is emitted after a component walked the transitive closure of its
// entry points.
type Walked struct {
	Component string
	Roots     int
	Nodes     int
	Err       error
}

// FieldsOrdered is emitted after a component ordered the initialization of
// its cached fields.
type FieldsOrdered struct {
	Component string
	// Fields are the keys of the fields, in initialization order.
	Fields []string
	Passes int
	Err    error
}

// Built is emitted when the whole component tree was resolved.
type Built struct {
	Root       string
	Components int
	Err        error
}

// Instantiated is emitted when a container instance of a component is
// created.
type Instantiated struct {
	Component string
	Fields    int
	Err       error
}
