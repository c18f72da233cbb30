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

package modulefile

import (
	"strings"

	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
	"github.com/pkg/errors"
)

// ParseKey parses a key written in its canonical form: its qualifiers, each
// starting with '@', followed by a type expression. For example
// "@primary app.DB" or "map[string]app.H".
func ParseKey(s string) (key.Key, error) {
	rest := strings.TrimSpace(s)
	var quals []key.Qualifier
	for strings.HasPrefix(rest, "@") {
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			return key.Key{}, errors.Errorf("key %q has no type", s)
		}
		quals = append(quals, key.Qualifier(rest[:i]))
		rest = strings.TrimSpace(rest[i:])
	}
	t, err := key.ParseType(rest)
	if err != nil {
		return key.Key{}, errors.Wrapf(err, "key %q", s)
	}
	return key.New(t, quals...), nil
}

// ParseRequest parses a key, optionally wrapped as "Provider<key>" or
// "Lazy<key>".
func ParseRequest(s string) (key.Request, error) {
	s = strings.TrimSpace(s)
	for _, f := range []key.Flavor{key.Provider, key.Lazy} {
		prefix := f.String() + "<"
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, ">") {
			k, err := ParseKey(s[len(prefix) : len(s)-1])
			if err != nil {
				return key.Request{}, err
			}
			return key.Request{Key: k, Flavor: f}, nil
		}
	}
	k, err := ParseKey(s)
	if err != nil {
		return key.Request{}, err
	}
	return key.InstanceOf(k), nil
}

// ParseParam parses a producer parameter: a request, or "assisted key" for
// a parameter supplied by the caller.
func ParseParam(s string) (decl.Param, error) {
	s = strings.TrimSpace(s)
	if rest := strings.TrimPrefix(s, "assisted "); rest != s {
		k, err := ParseKey(rest)
		if err != nil {
			return decl.Param{}, err
		}
		return decl.Assisted(k), nil
	}
	r, err := ParseRequest(s)
	if err != nil {
		return decl.Param{}, err
	}
	return decl.Param{Request: r}, nil
}
