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

package binding

import (
	"fmt"
	"strings"

	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
)

// UnresolvedBindingError is returned when no resolver anywhere in the
// parent chain produced a node for Key.
type UnresolvedBindingError struct {
	Key       key.Key
	Component string
	// Path is the chain of keys that led to the request, outermost first.
	Path []key.Key
	At   decl.Site
}

func (e *UnresolvedBindingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "missing binding for %v in component %s", e.Key, e.Component)
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, ", requested by %s", joinKeys(e.Path, " -> "))
	}
	fmt.Fprintf(&b, " (declared at %v)", e.At)
	return b.String()
}

// Candidate is one of the nodes competing for an ambiguous key.
type Candidate struct {
	Resolver string
	Node     Node
}

// AmbiguousBindingError is returned when more than one resolver produced a
// node for Key.
type AmbiguousBindingError struct {
	Key        key.Key
	Component  string
	Candidates []Candidate
}

func (e *AmbiguousBindingError) Error() string {
	parts := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		parts[i] = fmt.Sprintf("%s from %s resolver at %v", c.Node.Kind(), c.Resolver, c.Node.Site())
	}
	return fmt.Sprintf("ambiguous binding for %v in component %s: %s",
		e.Key, e.Component, strings.Join(parts, "; "))
}

// DuplicateBindingError is returned when one component declares the same
// non-multibinding key twice.
type DuplicateBindingError struct {
	Key       key.Key
	Component string
	First     decl.Site
	Second    decl.Site
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%v is already bound in component %s at %v, bound again at %v",
		e.Key, e.Component, e.First, e.Second)
}

// DuplicateMultibindingEntryError is returned when a map entry key or a set
// element is contributed twice across a component and its ancestors.
type DuplicateMultibindingEntryError struct {
	Collection key.Key
	Component  string
	// Entry is the duplicated map entry key or set element.
	Entry  string
	IsSet  bool
	First  decl.Site
	Second decl.Site
}

func (e *DuplicateMultibindingEntryError) Error() string {
	kind := "map"
	if e.IsSet {
		kind = "set"
	}
	return fmt.Sprintf("already bound %s into %s %v in component %s (first at %v, again at %v)",
		e.Entry, kind, e.Collection, e.Component, e.First, e.Second)
}

// DuplicateScopeError is returned when a scope tag is declared twice in one
// ancestor chain.
type DuplicateScopeError struct {
	Scope     string
	Component string
	// Declarer is the component that already declared Scope: an ancestor,
	// or Component itself when it declares the scope twice.
	Declarer string
	At       decl.Site
}

func (e *DuplicateScopeError) Error() string {
	return fmt.Sprintf("scope %q of component %s is already declared by %s (at %v)",
		e.Scope, e.Component, e.Declarer, e.At)
}

// CyclicBindingError is returned when keys depend on each other without a
// Provider or Lazy request breaking the cycle.
type CyclicBindingError struct {
	Component string
	// Cycle lists the keys of the cycle; the first key is repeated last.
	Cycle []key.Key
}

func (e *CyclicBindingError) Error() string {
	return fmt.Sprintf("dependency cycle in component %s: %s", e.Component, joinKeys(e.Cycle, " -> "))
}

// UnresolvableInitializationOrderError is returned when cached fields depend
// on each other so that no initialization order exists.
type UnresolvableInitializationOrderError struct {
	Component string
	Pending   []key.Key
}

func (e *UnresolvableInitializationOrderError) Error() string {
	return fmt.Sprintf("cannot order field initialization in component %s, fields stuck: %s",
		e.Component, joinKeys(e.Pending, ", "))
}

func joinKeys(keys []key.Key, sep string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, sep)
}
