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

package runtime

import (
	"fmt"
	"sync"

	"github.com/ShikaSD/injekt-sub000/factory"
)

// fn evaluates a compiled expression in container c. args are the
// arguments of the innermost assisted factory call, if any.
type fn func(c *Container, args []any) any

// box lets expressions refer to a compiled expression whose compilation is
// still in progress.
type box struct {
	fn fn
}

type compiler struct {
	memo map[factory.Expression]*box
}

func newCompiler() *compiler {
	return &compiler{memo: make(map[factory.Expression]*box)}
}

func (cp *compiler) compile(x factory.Expression) (fn, error) {
	if b, ok := cp.memo[x]; ok {
		if b.fn != nil {
			return b.fn, nil
		}
		return func(c *Container, args []any) any { return b.fn(c, args) }, nil
	}
	b := &box{}
	cp.memo[x] = b

	f, err := cp.compileExpression(x)
	if err != nil {
		delete(cp.memo, x)
		return nil, err
	}
	b.fn = f
	return f, nil
}

func (cp *compiler) compileAll(xs []factory.Expression) ([]fn, error) {
	out := make([]fn, len(xs))
	for i, x := range xs {
		f, err := cp.compile(x)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

type memberSetter struct {
	set   func(target, value any)
	value fn
}

func (cp *compiler) compileMembers(mvs []factory.MemberValue) ([]memberSetter, error) {
	out := make([]memberSetter, len(mvs))
	for i, mv := range mvs {
		if mv.Member.Set == nil {
			return nil, fmt.Errorf("member %s has no setter", mv.Member.Name)
		}
		v, err := cp.compile(mv.Value)
		if err != nil {
			return nil, err
		}
		out[i] = memberSetter{set: mv.Member.Set, value: v}
	}
	return out, nil
}

func (cp *compiler) compileExpression(x factory.Expression) (fn, error) {
	switch x := x.(type) {
	case *factory.Call:
		produce := x.Producer.Fn
		if produce == nil {
			return nil, fmt.Errorf("producer %v has no implementation", x.Producer)
		}
		argFns, err := cp.compileAll(x.Args)
		if err != nil {
			return nil, err
		}
		members, err := cp.compileMembers(x.Members)
		if err != nil {
			return nil, err
		}
		return func(c *Container, args []any) any {
			vals := make([]any, len(argFns))
			for i, a := range argFns {
				vals[i] = a(c, args)
			}
			v := produce(vals...)
			for _, m := range members {
				m.set(v, m.value(c, args))
			}
			return v
		}, nil

	case *factory.FieldRef:
		i := x.Field.Index
		return func(c *Container, _ []any) any { return c.field(i) }, nil

	case *factory.Value:
		v := x.V
		return func(*Container, []any) any { return v }, nil

	case *factory.ComponentParam:
		i := x.Index
		return func(c *Container, _ []any) any { return c.params[i] }, nil

	case *factory.ArgRef:
		i := x.Index
		return func(_ *Container, args []any) any { return args[i] }, nil

	case *factory.Closure:
		body, err := cp.compile(x.Body)
		if err != nil {
			return nil, err
		}
		switch n := len(x.Params); {
		case n > 0:
			return func(c *Container, _ []any) any {
				return func(args ...any) any {
					if len(args) != n {
						panic(fmt.Sprintf("factory of %v takes %d arguments, got %d", x.Result, n, len(args)))
					}
					return body(c, args)
				}
			}, nil
		case x.Memoized:
			return func(c *Container, args []any) any {
				var (
					once sync.Once
					v    any
				)
				return func() any {
					once.Do(func() { v = body(c, args) })
					return v
				}
			}, nil
		default:
			return func(c *Container, args []any) any {
				return func() any { return body(c, args) }
			}, nil
		}

	case *factory.DependencyCall:
		get := x.Accessor.Get
		if get == nil {
			return nil, fmt.Errorf("accessor %s has no implementation", x.Accessor.Name)
		}
		comp, err := cp.compile(x.Component)
		if err != nil {
			return nil, err
		}
		return func(c *Container, args []any) any { return get(comp(c, args)) }, nil

	case *factory.MapLiteral:
		keys := make([]any, len(x.Entries))
		vals := make([]factory.Expression, len(x.Entries))
		for i, e := range x.Entries {
			keys[i], vals[i] = e.Key, e.Value
		}
		valFns, err := cp.compileAll(vals)
		if err != nil {
			return nil, err
		}
		return func(c *Container, args []any) any {
			m := make(map[any]any, len(keys))
			for i, k := range keys {
				m[k] = valFns[i](c, args)
			}
			return m
		}, nil

	case *factory.SetLiteral:
		elemFns, err := cp.compileAll(x.Elements)
		if err != nil {
			return nil, err
		}
		return func(c *Container, args []any) any {
			s := make([]any, len(elemFns))
			for i, e := range elemFns {
				s[i] = e(c, args)
			}
			return s
		}, nil

	case *factory.NewChild:
		child := x.Child
		return func(c *Container, _ []any) any {
			return func(args ...any) *Container {
				kid, err := c.program.newContainer(child, c, args)
				if err != nil {
					panic(err)
				}
				return kid
			}
		}, nil

	case *factory.Self:
		return func(c *Container, _ []any) any { return c }, nil

	case *factory.Ancestor:
		inner, err := cp.compile(x.Inner)
		if err != nil {
			return nil, err
		}
		hops := x.Hops
		return func(c *Container, args []any) any {
			a := c
			for i := 0; i < hops; i++ {
				a = a.parent
			}
			return inner(a, args)
		}, nil

	case *factory.MembersInject:
		members, err := cp.compileMembers(x.Members)
		if err != nil {
			return nil, err
		}
		return func(c *Container, args []any) any {
			return func(target any) {
				for _, m := range members {
					m.set(target, m.value(c, args))
				}
			}
		}, nil

	case *factory.Ref:
		target := x.Target()
		if target == nil {
			return nil, fmt.Errorf("reference to %v was never rendered", x.Request)
		}
		return cp.compile(target)
	}
	return nil, fmt.Errorf("cannot compile %T", x)
}
