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

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/key"
)

// Expressions renders the expression producing each request of one
// component. Rendering is memoized per binding key, so every request of a
// key shares one expression.
type Expressions struct {
	impl *Implementation

	memo      map[key.ID]Expression
	rendering map[key.ID]struct{}
}

func newExpressions(impl *Implementation) *Expressions {
	return &Expressions{
		impl:      impl,
		memo:      make(map[key.ID]Expression),
		rendering: make(map[key.ID]struct{}),
	}
}

// Render returns the expression producing r in the component. Keys owned
// by an ancestor are rendered by the ancestor and wrapped in an Ancestor
// hop. A request reached again while it is being rendered, through a
// Provider or Lazy, yields a Ref.
func (e *Expressions) Render(r key.Request) (Expression, error) {
	bk := r.BindingKey()
	id := bk.ID()
	if x, ok := e.memo[id]; ok {
		return x, nil
	}
	if _, ok := e.rendering[id]; ok {
		return &Ref{Request: r, expressions: e}, nil
	}

	n, err := e.impl.graph.Binding(bk)
	if err != nil {
		return nil, err
	}

	e.rendering[id] = struct{}{}
	defer delete(e.rendering, id)

	var x Expression
	if n.Owner() != e.impl.ID() {
		owner, hops := e.impl.ancestor(n.Owner())
		if owner == nil {
			return nil, fmt.Errorf("%v is owned by component #%d, which is not an ancestor of %s",
				bk, n.Owner(), e.impl.Name())
		}
		inner, err := owner.expressions.Render(r)
		if err != nil {
			return nil, err
		}
		x = &Ancestor{Hops: hops, Inner: inner}
	} else {
		x, err = e.render(n)
		if err != nil {
			return nil, err
		}
	}

	e.memo[id] = x
	return x, nil
}

// Initializer returns the expression computing the value of f.
func (e *Expressions) Initializer(f *Field) (Expression, error) {
	switch n := f.Node.(type) {
	case *binding.Provision:
		return e.call(n)
	case *binding.Instance:
		if n.Captured {
			return &Value{V: n.Value}, nil
		}
		return &ComponentParam{Index: n.Param, Key: n.Key()}, nil
	}
	return nil, fmt.Errorf("%s has no field initializer", binding.Describe(f.Node))
}

func (e *Expressions) render(n binding.Node) (Expression, error) {
	if binding.Cached(n) {
		f, ok := e.impl.members.Field(n.Key())
		if !ok {
			return nil, fmt.Errorf("no field for %v in component %s", n.Key(), e.impl.Name())
		}
		return &FieldRef{Field: f}, nil
	}

	switch n := n.(type) {
	case *binding.Provision:
		return e.call(n)

	case *binding.AssistedProvision:
		call := &Call{Producer: n.Producer}
		var params []key.Type
		for _, p := range n.Params {
			if p.Assisted {
				call.Args = append(call.Args, &ArgRef{Index: len(params)})
				params = append(params, p.Request.Key.Type())
				continue
			}
			arg, err := e.Render(p.Request)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		return &Closure{Params: params, Result: n.Target.Type(), Body: call}, nil

	case *binding.Delegate:
		return e.Render(key.InstanceOf(n.Original))

	case *binding.Dependency:
		comp, err := e.Render(key.InstanceOf(n.Component))
		if err != nil {
			return nil, err
		}
		return &DependencyCall{Component: comp, Accessor: n.Accessor}, nil

	case *binding.MapBinding:
		lit := &MapLiteral{Type: n.Key().Type()}
		for i, dep := range n.Dependencies() {
			v, err := e.Render(dep)
			if err != nil {
				return nil, err
			}
			lit.Entries = append(lit.Entries, MapEntry{Key: n.Entries[i].EntryKey, Value: v})
		}
		return lit, nil

	case *binding.SetBinding:
		lit := &SetLiteral{Type: n.Key().Type()}
		for _, dep := range n.Dependencies() {
			v, err := e.Render(dep)
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, v)
		}
		return lit, nil

	case *binding.ChildFactory:
		child := e.impl.arena.Get(n.Child)
		params := make([]key.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Type()
		}
		return &NewChild{
			Child:     n.Child,
			Component: child.Name(),
			Type:      child.graph.Component().Type,
			Params:    params,
		}, nil

	case *binding.FactoryImplementation:
		return &Self{}, nil

	case *binding.Provider:
		body, err := e.Render(key.InstanceOf(n.Inner))
		if err != nil {
			return nil, err
		}
		return &Closure{Result: n.Inner.Type(), Body: body}, nil

	case *binding.Lazy:
		body, err := e.Render(key.InstanceOf(n.Inner))
		if err != nil {
			return nil, err
		}
		return &Closure{Result: n.Inner.Type(), Body: body, Memoized: true}, nil

	case *binding.MembersInjector:
		inj := &MembersInject{Target: n.Target}
		for _, m := range n.Members {
			v, err := e.Render(m.Request)
			if err != nil {
				return nil, err
			}
			inj.Members = append(inj.Members, MemberValue{Member: m, Value: v})
		}
		return inj, nil
	}
	return nil, fmt.Errorf("cannot render %s", binding.Describe(n))
}

func (e *Expressions) call(n *binding.Provision) (Expression, error) {
	call := &Call{Producer: n.Producer}
	for _, p := range n.Params {
		arg, err := e.Render(p.Request)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	for _, m := range n.Members {
		v, err := e.Render(m.Request)
		if err != nil {
			return nil, err
		}
		call.Members = append(call.Members, MemberValue{Member: m, Value: v})
	}
	return call, nil
}
