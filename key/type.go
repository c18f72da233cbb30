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

import "strings"

// Reserved type names for the structural kinds a Type may take. Every other
// name denotes a named (declared) type.
const (
	FuncName = "func"
	MapName  = "map"
	SetName  = "set"
)

// Type is an immutable descriptor of a type as supplied by the declaration
// front end.
//
// Named types carry their fully qualified name and optional type arguments.
// Function types use FuncName with the parameters followed by the result in
// Args. Maps use MapName with key and value, sets use SetName with the
// element type.
type Type struct {
	Name string
	Args []Type
}

// Named returns a named type with the given type arguments.
func Named(name string, args ...Type) Type {
	return Type{Name: name, Args: cloneTypes(args)}
}

// Func returns the function type taking params and returning result.
func Func(result Type, params ...Type) Type {
	args := make([]Type, 0, len(params)+1)
	args = append(args, params...)
	args = append(args, result)
	return Type{Name: FuncName, Args: args}
}

// Map returns the map type from k to v.
func Map(k, v Type) Type {
	return Type{Name: MapName, Args: []Type{k, v}}
}

// Set returns the set type of elem.
func Set(elem Type) Type {
	return Type{Name: SetName, Args: []Type{elem}}
}

// IsFunc reports whether t is a function type.
func (t Type) IsFunc() bool { return t.Name == FuncName && len(t.Args) > 0 }

// IsMap reports whether t is a map type.
func (t Type) IsMap() bool { return t.Name == MapName && len(t.Args) == 2 }

// IsSet reports whether t is a set type.
func (t Type) IsSet() bool { return t.Name == SetName && len(t.Args) == 1 }

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool { return t.Name == "" && len(t.Args) == 0 }

// Params returns the parameter types of a function type.
func (t Type) Params() []Type {
	if !t.IsFunc() {
		return nil
	}
	return cloneTypes(t.Args[:len(t.Args)-1])
}

// Result returns the result type of a function type.
func (t Type) Result() Type {
	if !t.IsFunc() {
		return Type{}
	}
	return t.Args[len(t.Args)-1]
}

// Elem returns the value type of a map or the element type of a set.
func (t Type) Elem() Type {
	switch {
	case t.IsMap():
		return t.Args[1]
	case t.IsSet():
		return t.Args[0]
	}
	return Type{}
}

// MapKey returns the key type of a map type.
func (t Type) MapKey() Type {
	if !t.IsMap() {
		return Type{}
	}
	return t.Args[0]
}

// Equal reports whether t and o have the same canonical form.
func (t Type) Equal(o Type) bool { return t.String() == o.String() }

// String returns the canonical form of t.
func (t Type) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Type) write(b *strings.Builder) {
	switch {
	case t.IsFunc():
		b.WriteString("func(")
		params := t.Args[:len(t.Args)-1]
		for i, p := range params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b)
		}
		b.WriteString(") ")
		t.Args[len(t.Args)-1].write(b)
	case t.IsMap():
		b.WriteString("map[")
		t.Args[0].write(b)
		b.WriteString("]")
		t.Args[1].write(b)
	default:
		b.WriteString(t.Name)
		if len(t.Args) == 0 {
			return
		}
		b.WriteString("[")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b)
		}
		b.WriteString("]")
	}
}

func cloneTypes(ts []Type) []Type {
	if len(ts) == 0 {
		return nil
	}
	out := make([]Type, len(ts))
	copy(out, ts)
	return out
}

// MembersInjectorName is the name of the type of functions injecting the
// members of an existing value.
const MembersInjectorName = "injekt.MembersInjector"

// MembersInjector returns the type of a members injector for t.
func MembersInjector(t Type) Type {
	return Named(MembersInjectorName, t)
}
