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
	"sort"
	"strings"
)

// Qualifier is a tag distinguishing otherwise identical types.
type Qualifier string

// Qualifiers reserved by the engine for deferred requests and for the
// deferred views of multibound collections.
const (
	ProviderQualifier Qualifier = "@Provider"
	LazyQualifier     Qualifier = "@Lazy"
)

// ID is the canonical, comparable form of a Key.
type ID string

// Key is the identity of a requested or provided value. Keys are immutable;
// use ID to index maps.
type Key struct {
	typ   Type
	quals []Qualifier
	id    ID
}

// New builds the canonical key for t with the given qualifiers. Qualifier
// order does not matter and duplicates collapse.
func New(t Type, quals ...Qualifier) Key {
	k := Key{typ: t, quals: canonicalQualifiers(quals)}
	k.id = ID(k.render())
	return k
}

// Of is shorthand for New(Named(name), quals...).
func Of(name string, quals ...Qualifier) Key {
	return New(Named(name), quals...)
}

// Type returns the type of the key.
func (k Key) Type() Type { return k.typ }

// Qualifiers returns a copy of the canonical qualifier list.
func (k Key) Qualifiers() []Qualifier {
	if len(k.quals) == 0 {
		return nil
	}
	out := make([]Qualifier, len(k.quals))
	copy(out, k.quals)
	return out
}

// Has reports whether the key carries q.
func (k Key) Has(q Qualifier) bool {
	for _, kq := range k.quals {
		if kq == q {
			return true
		}
	}
	return false
}

// ID returns the canonical identity of the key.
func (k Key) ID() ID { return k.id }

// IsZero reports whether k is the zero Key.
func (k Key) IsZero() bool { return k.id == "" }

// Equal reports whether the canonical forms of k and o are equal.
func (k Key) Equal(o Key) bool { return k.id == o.id }

// WithQualifiers returns a key of the same type carrying the union of the
// key's qualifiers and quals.
func (k Key) WithQualifiers(quals ...Qualifier) Key {
	all := append(k.Qualifiers(), quals...)
	return New(k.typ, all...)
}

// WithoutQualifiers returns a key of the same type without quals.
func (k Key) WithoutQualifiers(quals ...Qualifier) Key {
	kept := make([]Qualifier, 0, len(k.quals))
	for _, q := range k.quals {
		drop := false
		for _, d := range quals {
			if q == d {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, q)
		}
	}
	return New(k.typ, kept...)
}

// WithType returns a key carrying the same qualifiers over t.
func (k Key) WithType(t Type) Key {
	return New(t, k.quals...)
}

// String returns the canonical form of the key, e.g. "@named:db pkg.Conn".
func (k Key) String() string { return string(k.id) }

func (k Key) render() string {
	if len(k.quals) == 0 {
		return k.typ.String()
	}
	var b strings.Builder
	for _, q := range k.quals {
		b.WriteString(string(q))
		b.WriteByte(' ')
	}
	b.WriteString(k.typ.String())
	return b.String()
}

func canonicalQualifiers(quals []Qualifier) []Qualifier {
	if len(quals) == 0 {
		return nil
	}
	out := make([]Qualifier, 0, len(quals))
	seen := make(map[Qualifier]struct{}, len(quals))
	for _, q := range quals {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
