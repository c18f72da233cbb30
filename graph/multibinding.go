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

package graph

import (
	"fmt"
	"reflect"

	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
)

// CollectionBuilder accumulates the contributions of one component to a
// multibound map or set while its statements are collected. Finalize turns it
// into an immutable Collection.
type CollectionBuilder struct {
	key   key.Key
	isSet bool
	owner binding.ComponentID
	at    decl.Site

	entries  []binding.MapEntry
	elements []binding.SetElement
}

func newCollectionBuilder(k key.Key, isSet bool, owner binding.ComponentID, at decl.Site) *CollectionBuilder {
	return &CollectionBuilder{key: k, isSet: isSet, owner: owner, at: at}
}

func (b *CollectionBuilder) put(e decl.MapEntry) {
	b.entries = append(b.entries, binding.MapEntry{
		EntryKey: e.EntryKey,
		Element:  e.Element,
		Owner:    b.owner,
		At:       e.At,
	})
}

func (b *CollectionBuilder) add(e decl.SetElement) {
	b.elements = append(b.elements, binding.SetElement{
		Element: e.Element,
		Owner:   b.owner,
		At:      e.At,
	})
}

// Finalize merges the builder's contributions after those of inherited,
// the nearest ancestor's collection for the same key (nil if none). Entries
// are strictly additive: an entry key or element already present is an
// error.
func (b *CollectionBuilder) Finalize(inherited *Collection, component string) (*Collection, error) {
	c := &Collection{Key: b.key, IsSet: b.isSet, Owner: b.owner, At: b.at}
	if inherited != nil {
		if inherited.IsSet != b.isSet {
			return nil, &decl.InvalidDeclarationError{
				Reason: fmt.Sprintf("%v is declared both as a map and as a set", b.key),
				At:     b.at,
			}
		}
		c.Entries = append(c.Entries, inherited.Entries...)
		c.Elements = append(c.Elements, inherited.Elements...)
	}

	seen := make(map[any]decl.Site)
	dup := func(id any, display string, at decl.Site) error {
		if first, ok := seen[id]; ok {
			return &binding.DuplicateMultibindingEntryError{
				Collection: b.key,
				Component:  component,
				Entry:      display,
				IsSet:      b.isSet,
				First:      first,
				Second:     at,
			}
		}
		seen[id] = at
		return nil
	}

	if b.isSet {
		for _, e := range c.Elements {
			seen[e.Element.ID()] = e.At
		}
		for _, e := range b.elements {
			if err := dup(e.Element.ID(), e.Element.String(), e.At); err != nil {
				return nil, err
			}
			c.Elements = append(c.Elements, e)
		}
	} else {
		for _, e := range c.Entries {
			seen[e.EntryKey] = e.At
		}
		for _, e := range b.entries {
			if t := reflect.TypeOf(e.EntryKey); t == nil || !t.Comparable() {
				return nil, &decl.InvalidDeclarationError{
					Reason: fmt.Sprintf("entry key %#v of %v is not comparable", e.EntryKey, b.key),
					At:     e.At,
				}
			}
			if err := dup(e.EntryKey, entryString(e.EntryKey), e.At); err != nil {
				return nil, err
			}
			c.Entries = append(c.Entries, e)
		}
	}

	c.views = [3]binding.Node{}
	for _, f := range []key.Flavor{key.Instance, key.Provider, key.Lazy} {
		if c.IsSet {
			c.views[f] = binding.NewSetBinding(c.Owner, c.At, c.Key, f, c.Elements)
		} else {
			c.views[f] = binding.NewMapBinding(c.Owner, c.At, c.Key, f, c.Entries)
		}
	}
	return c, nil
}

// Collection is the finalized, immutable content of a multibound map or set
// as seen by one component: the ancestors' contributions first, then the
// component's own, each in declaration order.
type Collection struct {
	Key      key.Key
	IsSet    bool
	Owner    binding.ComponentID
	At       decl.Site
	Entries  []binding.MapEntry
	Elements []binding.SetElement

	// views are the plain, Provider and Lazy bindings, all sharing the
	// same entries.
	views [3]binding.Node
}

// View returns the binding node for the flavor view of the collection.
func (c *Collection) View(f key.Flavor) binding.Node {
	return c.views[f]
}

// Len returns the number of entries or elements.
func (c *Collection) Len() int {
	if c.IsSet {
		return len(c.Elements)
	}
	return len(c.Entries)
}

func entryString(v any) string {
	return fmt.Sprintf("%#v", v)
}
