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

import "fmt"

// Flavor is the way a dependency is requested.
type Flavor int

const (
	// Instance requests the value itself.
	Instance Flavor = iota
	// Provider requests a function producing the value on every call.
	Provider
	// Lazy requests a function producing the value once, on first call.
	Lazy
)

func (f Flavor) String() string {
	switch f {
	case Instance:
		return "Instance"
	case Provider:
		return "Provider"
	case Lazy:
		return "Lazy"
	default:
		return fmt.Sprintf("Flavor(%d)", int(f))
	}
}

// Deferred reports whether values of this flavor are produced after graph
// construction, when the returned function is invoked.
func (f Flavor) Deferred() bool { return f == Provider || f == Lazy }

// Qualifier returns the reserved qualifier marking keys of this flavor. It
// is empty for Instance.
func (f Flavor) Qualifier() Qualifier {
	switch f {
	case Provider:
		return ProviderQualifier
	case Lazy:
		return LazyQualifier
	}
	return ""
}

// Request is a Key plus the flavor it is requested in.
type Request struct {
	Key    Key
	Flavor Flavor
}

// InstanceOf requests k directly.
func InstanceOf(k Key) Request { return Request{Key: k, Flavor: Instance} }

// ProviderOf requests a Provider of k.
func ProviderOf(k Key) Request { return Request{Key: k, Flavor: Provider} }

// LazyOf requests a Lazy of k.
func LazyOf(k Key) Request { return Request{Key: k, Flavor: Lazy} }

// BindingKey returns the key whose binding satisfies r. Instance requests
// map to their own key; deferred requests map to the synthetic key of a
// zero-argument function returning the requested type, tagged with the
// flavor's qualifier.
func (r Request) BindingKey() Key {
	if !r.Flavor.Deferred() {
		return r.Key
	}
	return New(Func(r.Key.Type()), append(r.Key.Qualifiers(), r.Flavor.Qualifier())...)
}

// ID returns a comparable identity for the request.
func (r Request) ID() ID {
	if r.Flavor == Instance {
		return r.Key.ID()
	}
	return ID(r.Flavor.String() + "<" + string(r.Key.ID()) + ">")
}

// Equal reports whether r and o request the same key in the same flavor.
func (r Request) Equal(o Request) bool {
	return r.Flavor == o.Flavor && r.Key.Equal(o.Key)
}

func (r Request) String() string {
	if r.Flavor == Instance {
		return r.Key.String()
	}
	return fmt.Sprintf("%v<%v>", r.Flavor, r.Key)
}

// Unwrap inverts Request.BindingKey. It reports false when k is not the
// synthetic key of a deferred request.
func Unwrap(k Key) (Request, bool) {
	for _, f := range []Flavor{Provider, Lazy} {
		if !k.Has(f.Qualifier()) {
			continue
		}
		t := k.Type()
		if !t.IsFunc() || len(t.Params()) != 0 {
			return Request{}, false
		}
		inner := New(t.Result(), k.WithoutQualifiers(f.Qualifier()).Qualifiers()...)
		return Request{Key: inner, Flavor: f}, true
	}
	return Request{}, false
}

// CollectionView returns the key of the flavor view of a map or set key:
// Map<K, V> becomes Map<K, Provider<V>> for Provider, and likewise for Lazy
// and for sets. Instance returns k unchanged.
func CollectionView(k Key, f Flavor) Key {
	if !f.Deferred() {
		return k
	}
	t := k.Type()
	var vt Type
	switch {
	case t.IsMap():
		vt = Map(t.MapKey(), Func(t.Elem()))
	case t.IsSet():
		vt = Set(Func(t.Elem()))
	default:
		return k
	}
	return New(vt, append(k.Qualifiers(), f.Qualifier())...)
}

// UnwrapCollection inverts CollectionView. It returns the plain collection
// key and the element flavor; ok is false when k is not a map or set key.
func UnwrapCollection(k Key) (plain Key, f Flavor, ok bool) {
	t := k.Type()
	if !t.IsMap() && !t.IsSet() {
		return Key{}, Instance, false
	}
	for _, df := range []Flavor{Provider, Lazy} {
		if !k.Has(df.Qualifier()) {
			continue
		}
		elem := t.Elem()
		if !elem.IsFunc() || len(elem.Params()) != 0 {
			return Key{}, Instance, false
		}
		var pt Type
		if t.IsMap() {
			pt = Map(t.MapKey(), elem.Result())
		} else {
			pt = Set(elem.Result())
		}
		return New(pt, k.WithoutQualifiers(df.Qualifier()).Qualifiers()...), df, true
	}
	return k, Instance, true
}
