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

package factory

import (
	"fmt"
	"strings"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
)

// Expression is the code producing a value inside a component
// implementation. String renders it as Go-like source where "this" is the
// component instance.
type Expression interface {
	String() string

	expression()
}

func (*Call) expression()           {}
func (*FieldRef) expression()       {}
func (*Value) expression()          {}
func (*ComponentParam) expression() {}
func (*ArgRef) expression()         {}
func (*Closure) expression()        {}
func (*DependencyCall) expression() {}
func (*MapLiteral) expression()     {}
func (*SetLiteral) expression()     {}
func (*NewChild) expression()       {}
func (*Self) expression()           {}
func (*Ancestor) expression()       {}
func (*MembersInject) expression()  {}
func (*Ref) expression()            {}

// MemberValue assigns the value of an expression to an injectable member.
type MemberValue struct {
	Member decl.Member
	Value  Expression
}

func (mv MemberValue) String() string {
	return fmt.Sprintf("%s = %v", mv.Member.Name, mv.Value)
}

// Call invokes a producer, then injects Members into its result.
type Call struct {
	Producer decl.Producer
	Args     []Expression
	Members  []MemberValue
}

func (e *Call) String() string {
	call := fmt.Sprintf("%v(%s)", e.Producer, join(e.Args))
	if len(e.Members) == 0 {
		return call
	}
	parts := make([]string, len(e.Members))
	for i, mv := range e.Members {
		parts[i] = mv.String()
	}
	return fmt.Sprintf("inject(%s, %s)", call, strings.Join(parts, ", "))
}

// FieldRef reads a field of the component, initializing it on first use
// when it caches a scoped binding.
type FieldRef struct {
	Field *Field
}

func (e *FieldRef) String() string { return "this." + e.Field.Name }

// Value is a value captured at declaration time.
type Value struct {
	V any
}

func (e *Value) String() string { return fmt.Sprintf("%#v", e.V) }

// ComponentParam is a constructor parameter of the component.
type ComponentParam struct {
	Index int
	Key   key.Key
}

func (e *ComponentParam) String() string { return fmt.Sprintf("param%d", e.Index) }

// ArgRef is an argument of the innermost enclosing Closure.
type ArgRef struct {
	Index int
}

func (e *ArgRef) String() string { return fmt.Sprintf("arg%d", e.Index) }

// Closure is a function literal. Provider and Lazy closures take no
// arguments; assisted factories take the assisted parameters. A memoized
// closure evaluates Body once, on its first call.
type Closure struct {
	Params   []key.Type
	Result   key.Type
	Body     Expression
	Memoized bool
}

func (e *Closure) String() string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = fmt.Sprintf("arg%d %v", i, p)
	}
	fn := fmt.Sprintf("func(%s) %v { return %v }", strings.Join(params, ", "), e.Result, e.Body)
	if e.Memoized {
		return "lazy(" + fn + ")"
	}
	return fn
}

// DependencyCall reads an accessor of a dependency component.
type DependencyCall struct {
	Component Expression
	Accessor  decl.DependencyAccessor
}

func (e *DependencyCall) String() string {
	return fmt.Sprintf("%v.%s()", e.Component, e.Accessor.Name)
}

// MapEntry is an entry of a MapLiteral.
type MapEntry struct {
	Key   any
	Value Expression
}

// MapLiteral builds a multibound map.
type MapLiteral struct {
	Type    key.Type
	Entries []MapEntry
}

func (e *MapLiteral) String() string {
	parts := make([]string, len(e.Entries))
	for i, en := range e.Entries {
		parts[i] = fmt.Sprintf("%#v: %v", en.Key, en.Value)
	}
	return fmt.Sprintf("%v{%s}", e.Type, strings.Join(parts, ", "))
}

// SetLiteral builds a multibound set, in contribution order.
type SetLiteral struct {
	Type     key.Type
	Elements []Expression
}

func (e *SetLiteral) String() string {
	return fmt.Sprintf("%v{%s}", e.Type, join(e.Elements))
}

// NewChild is a factory function instantiating a child component with the
// current component as its parent.
type NewChild struct {
	Child     binding.ComponentID
	Component string
	Type      key.Type
	Params    []key.Type
}

func (e *NewChild) String() string {
	params := make([]string, len(e.Params))
	args := []string{"this"}
	for i, p := range e.Params {
		params[i] = fmt.Sprintf("arg%d %v", i, p)
		args = append(args, fmt.Sprintf("arg%d", i))
	}
	return fmt.Sprintf("func(%s) %v { return new%s(%s) }",
		strings.Join(params, ", "), e.Type, e.Component, strings.Join(args, ", "))
}

// Self is the component instance.
type Self struct{}

func (*Self) String() string { return "this" }

// Ancestor evaluates Inner on the component Hops parents up.
type Ancestor struct {
	Hops  int
	Inner Expression
}

func (e *Ancestor) String() string {
	return fmt.Sprintf("this%s.eval(%v)", strings.Repeat(".parent", e.Hops), e.Inner)
}

// MembersInject is a function injecting members into an existing value.
type MembersInject struct {
	Target  key.Type
	Members []MemberValue
}

func (e *MembersInject) String() string {
	stmts := make([]string, len(e.Members))
	for i, mv := range e.Members {
		stmts[i] = fmt.Sprintf("target.%s = %v; ", mv.Member.Name, mv.Value)
	}
	return fmt.Sprintf("func(target %v) { %s}", e.Target, strings.Join(stmts, ""))
}

// Ref refers to the expression of a request that was still being rendered
// when the reference was made. It only occurs under a Closure, and resolves
// once rendering completed.
type Ref struct {
	Request key.Request

	expressions *Expressions
}

// Target returns the referenced expression, nil if it was never rendered.
func (e *Ref) Target() Expression {
	return e.expressions.memo[e.Request.BindingKey().ID()]
}

func (e *Ref) String() string { return fmt.Sprintf("ref(%v)", e.Request) }

func join(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, x := range exprs {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}
