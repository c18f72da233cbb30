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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCanonicalization(t *testing.T) {
	t.Parallel()

	t.Run("qualifier order does not matter", func(t *testing.T) {
		t.Parallel()

		a := New(Named("db.Conn"), "primary", "readonly")
		b := New(Named("db.Conn"), "readonly", "primary", "readonly")
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.ID(), b.ID())
		assert.Equal(t, []Qualifier{"primary", "readonly"}, b.Qualifiers())
	})

	t.Run("different qualifiers differ", func(t *testing.T) {
		t.Parallel()

		assert.False(t, Of("db.Conn", "primary").Equal(Of("db.Conn")))
	})

	t.Run("with and without qualifiers", func(t *testing.T) {
		t.Parallel()

		k := Of("db.Conn").WithQualifiers("b", "a")
		assert.Equal(t, ID("a b db.Conn"), k.ID())
		assert.Equal(t, ID("b db.Conn"), k.WithoutQualifiers("a").ID())
	})
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give Type
		want string
	}{
		{give: Named("int"), want: "int"},
		{give: Named("box.Box", Named("int"), Named("string")), want: "box.Box[int, string]"},
		{give: Func(Named("app.Bar"), Named("int")), want: "func(int) app.Bar"},
		{give: Func(Named("app.Bar")), want: "func() app.Bar"},
		{give: Map(Named("string"), Named("app.Handler")), want: "map[string]app.Handler"},
		{give: Set(Named("app.Cmd")), want: "set[app.Cmd]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.give.String())
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"int",
		"app.Bar",
		"box.Box[int, string]",
		"func(int, app.Foo) app.Bar",
		"func() app.Bar",
		"map[string]app.Handler",
		"set[app.Cmd]",
		"map[string]func() app.Handler",
		"*app.Foo",
		"[]app.Foo",
	} {
		got, err := ParseType(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, got.String())
	}

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", "func(int)", "[3]int", "set[a, b]", "1 + 2"} {
			_, err := ParseType(s)
			assert.Error(t, err, s)
		}
	})
}

func TestRequestBindingKey(t *testing.T) {
	t.Parallel()

	foo := Of("app.Foo", "named")

	t.Run("instance", func(t *testing.T) {
		t.Parallel()

		assert.True(t, InstanceOf(foo).BindingKey().Equal(foo))
	})

	t.Run("deferred round trip", func(t *testing.T) {
		t.Parallel()

		for _, r := range []Request{ProviderOf(foo), LazyOf(foo)} {
			bk := r.BindingKey()
			assert.Equal(t, "func() app.Foo", bk.Type().String())
			assert.True(t, bk.Has(r.Flavor.Qualifier()))

			got, ok := Unwrap(bk)
			require.True(t, ok)
			assert.True(t, got.Equal(r), "got %v want %v", got, r)
		}
	})

	t.Run("unwrap rejects plain keys", func(t *testing.T) {
		t.Parallel()

		_, ok := Unwrap(foo)
		assert.False(t, ok)
		_, ok = Unwrap(New(Func(Named("app.Foo"), Named("int")), ProviderQualifier))
		assert.False(t, ok)
	})

	t.Run("request identity", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, InstanceOf(foo).ID(), ProviderOf(foo).ID())
		assert.Equal(t, "Lazy<named app.Foo>", LazyOf(foo).String())
	})
}

func TestCollectionView(t *testing.T) {
	t.Parallel()

	m := New(Map(Named("string"), Named("app.Handler")))
	pv := CollectionView(m, Provider)
	assert.Equal(t, ID("@Provider map[string]func() app.Handler"), pv.ID())

	plain, f, ok := UnwrapCollection(pv)
	require.True(t, ok)
	assert.Equal(t, Provider, f)
	assert.True(t, plain.Equal(m))

	s := New(Set(Named("app.Cmd")))
	plain, f, ok = UnwrapCollection(CollectionView(s, Lazy))
	require.True(t, ok)
	assert.Equal(t, Lazy, f)
	assert.True(t, plain.Equal(s))

	_, _, ok = UnwrapCollection(Of("app.Cmd"))
	assert.False(t, ok)
}
