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

package key

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strings"
)

// ParseType parses a Go-like type expression into a Type.
//
//	pkg.Foo                 named type
//	pkg.Box[pkg.Foo]        named type with arguments
//	func(int, pkg.Foo) Bar  function type
//	map[string]pkg.Handler  map
//	set[pkg.Command]        set
//
// Pointer and slice types are kept as opaque named types ("*pkg.Foo",
// "[]pkg.Foo").
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, fmt.Errorf("empty type expression")
	}
	expr, err := parser.ParseExpr(s)
	if err != nil {
		return Type{}, fmt.Errorf("cannot parse type %q: %w", s, err)
	}
	t, err := fromExpr(expr)
	if err != nil {
		return Type{}, fmt.Errorf("cannot parse type %q: %w", s, err)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on malformed input.
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func fromExpr(expr ast.Expr) (Type, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		return Named(e.Name), nil
	case *ast.SelectorExpr:
		name, err := selectorName(e)
		if err != nil {
			return Type{}, err
		}
		return Named(name), nil
	case *ast.ParenExpr:
		return fromExpr(e.X)
	case *ast.StarExpr:
		inner, err := fromExpr(e.X)
		if err != nil {
			return Type{}, err
		}
		return Named("*" + inner.String()), nil
	case *ast.ArrayType:
		if e.Len != nil {
			return Type{}, fmt.Errorf("array types are not supported")
		}
		inner, err := fromExpr(e.Elt)
		if err != nil {
			return Type{}, err
		}
		return Named("[]" + inner.String()), nil
	case *ast.MapType:
		k, err := fromExpr(e.Key)
		if err != nil {
			return Type{}, err
		}
		v, err := fromExpr(e.Value)
		if err != nil {
			return Type{}, err
		}
		return Map(k, v), nil
	case *ast.FuncType:
		return funcType(e)
	case *ast.IndexExpr:
		return generic(e.X, []ast.Expr{e.Index})
	case *ast.IndexListExpr:
		return generic(e.X, e.Indices)
	default:
		return Type{}, fmt.Errorf("unsupported type expression %T", expr)
	}
}

func funcType(e *ast.FuncType) (Type, error) {
	var params []Type
	if e.Params != nil {
		for _, f := range e.Params.List {
			pt, err := fromExpr(f.Type)
			if err != nil {
				return Type{}, err
			}
			n := len(f.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				params = append(params, pt)
			}
		}
	}
	if e.Results == nil || len(e.Results.List) != 1 || len(e.Results.List[0].Names) > 1 {
		return Type{}, fmt.Errorf("function types must have exactly one result")
	}
	result, err := fromExpr(e.Results.List[0].Type)
	if err != nil {
		return Type{}, err
	}
	return Func(result, params...), nil
}

func generic(x ast.Expr, indices []ast.Expr) (Type, error) {
	base, err := fromExpr(x)
	if err != nil {
		return Type{}, err
	}
	if len(base.Args) > 0 {
		return Type{}, fmt.Errorf("unexpected type arguments on %v", base)
	}
	args := make([]Type, len(indices))
	for i, idx := range indices {
		if args[i], err = fromExpr(idx); err != nil {
			return Type{}, err
		}
	}
	if base.Name == SetName {
		if len(args) != 1 {
			return Type{}, fmt.Errorf("set takes exactly one element type")
		}
		return Set(args[0]), nil
	}
	return Named(base.Name, args...), nil
}

func selectorName(e *ast.SelectorExpr) (string, error) {
	switch x := e.X.(type) {
	case *ast.Ident:
		return x.Name + "." + e.Sel.Name, nil
	case *ast.SelectorExpr:
		prefix, err := selectorName(x)
		if err != nil {
			return "", err
		}
		return prefix + "." + e.Sel.Name, nil
	default:
		return "", fmt.Errorf("unsupported qualified name %T", e.X)
	}
}
