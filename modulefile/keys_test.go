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
	"testing"

	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want string
	}{
		{give: "app.DB", want: "app.DB"},
		{give: "  @primary app.DB ", want: "@primary app.DB"},
		{give: "@b @a app.DB", want: "@a @b app.DB"},
		{give: "map[string]app.H", want: "map[string]app.H"},
		{give: "func(int, string) app.Bar", want: "func(int, string) app.Bar"},
		{give: "set[app.Command]", want: "set[app.Command]"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			k, err := ParseKey(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.String())
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	t.Parallel()

	for _, give := range []string{"@primary", "", "app.", "map[string]"} {
		_, err := ParseKey(give)
		assert.Error(t, err, "%q", give)
	}
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	r, err := ParseRequest("Provider<@primary app.DB>")
	require.NoError(t, err)
	assert.Equal(t, key.Provider, r.Flavor)
	assert.Equal(t, "@primary app.DB", r.Key.String())

	r, err = ParseRequest("Lazy<app.DB>")
	require.NoError(t, err)
	assert.Equal(t, key.Lazy, r.Flavor)

	r, err = ParseRequest("app.DB")
	require.NoError(t, err)
	assert.Equal(t, key.Instance, r.Flavor)

	_, err = ParseRequest("Provider<>")
	assert.Error(t, err)
}

func TestParseParam(t *testing.T) {
	t.Parallel()

	p, err := ParseParam("assisted int")
	require.NoError(t, err)
	assert.Equal(t, decl.Assisted(key.Of("int")), p)

	p, err = ParseParam("Lazy<app.DB>")
	require.NoError(t, err)
	assert.False(t, p.Assisted)
	assert.Equal(t, key.LazyOf(key.Of("app.DB")), p.Request)
}
