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

package modulefile_test

import (
	"testing"

	"github.com/ShikaSD/injekt-sub000"
	"github.com/ShikaSD/injekt-sub000/binding"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/modulefile"
	"github.com/ShikaSD/injekt-sub000/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	config  struct{ dsn string }
	db      struct{ cfg *config }
	session struct {
		db *db
		id string
	}
	handler struct {
		session *session
		lazy    func() any
	}
	migrate struct{ db func() any }
)

func producers() map[string]decl.Func {
	return map[string]decl.Func{
		"OpenDB": func(args ...any) any {
			return &db{cfg: args[0].(*config)}
		},
		"NewMigrate": func(args ...any) any {
			return &migrate{db: args[0].(func() any)}
		},
		"NewSession": func(args ...any) any {
			return &session{db: args[0].(*db), id: args[1].(string)}
		},
		"NewHandler": func(args ...any) any {
			return &handler{session: args[0].(*session), lazy: args[1].(func() any)}
		},
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	tree, err := modulefile.LoadFile("testdata/app.yaml")
	require.NoError(t, err)

	assert.Equal(t, "App", tree.Root.Name)
	assert.Equal(t, "app.App", tree.Root.Type.String())
	assert.Len(t, tree.Components, 2)
	assert.Same(t, tree.Root, tree.Components["App"])

	require.Len(t, tree.Classes, 1)
	class := tree.Classes[0]
	assert.Equal(t, "app.Session", class.Type.String())
	assert.Equal(t, "request", class.Scope)
	assert.Equal(t, "NewSession", class.Producer.Name)
	assert.Nil(t, class.Producer.Fn)
	assert.Equal(t, "testdata/app.yaml", class.At.File)
	assert.Equal(t, 3, class.At.Line)

	assert.Equal(t, "func(string) app.Request", tree.Components["Request"].FactoryKey().String())

	var accessors []string
	for _, s := range tree.Root.Flatten() {
		if a, ok := s.(*decl.AccessorStatement); ok {
			accessors = append(accessors, a.Name)
		}
	}
	assert.Equal(t, []string{"DB", "Primary", "Name", "Commands", "CommandsByName", "NewRequest"}, accessors)
}

func TestLoadedTreeResolves(t *testing.T) {
	t.Parallel()

	tree, err := modulefile.LoadFile("testdata/app.yaml", modulefile.WithProducers(producers()))
	require.NoError(t, err)

	plan, err := injekt.Build(tree.Root, injekt.WithClasses(tree.Classes...))
	require.NoError(t, err)

	cfg := &config{dsn: "mem://"}
	app, err := plan.Instantiate(cfg)
	require.NoError(t, err)

	database := app.MustGet("DB").(*db)
	assert.Same(t, cfg, database.cfg)
	assert.Same(t, database, app.MustGet("DB"))
	assert.Same(t, database, app.MustGet("Primary"))
	assert.Equal(t, "demo", app.MustGet("Name"))

	commands := app.MustGet("Commands").([]any)
	require.Len(t, commands, 1)
	assert.Same(t, database, commands[0].(*migrate).db())

	byName := app.MustGet("CommandsByName").(map[any]any)
	assert.Contains(t, byName, "migrate")

	newRequest := app.MustGet("NewRequest").(func(...any) *runtime.Container)
	req := newRequest("r1")
	s := req.MustGet("Session").(*session)
	assert.Equal(t, "r1", s.id)
	assert.Same(t, database, s.db)
	assert.Same(t, s, req.MustGet("Session"))

	h := req.MustGet("Handler").(*handler)
	assert.Same(t, s, h.session)
	assert.Same(t, s, h.lazy())

	other := newRequest("r2").MustGet("Session").(*session)
	assert.NotSame(t, s, other)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want string
	}{
		{
			desc: "unknown field",
			give: "rooot: App",
			want: "field rooot not found",
		},
		{
			desc: "unknown root",
			give: "root: Missing\ncomponents:\n  - {name: App, type: app.App}",
			want: `unknown component "Missing"`,
		},
		{
			desc: "unknown child",
			give: "components:\n  - {name: App, type: app.App, children: [Missing]}",
			want: `unknown component "Missing"`,
		},
		{
			desc: "duplicate component",
			give: "components:\n  - {name: App, type: app.App}\n  - {name: App, type: app.Other}",
			want: `component "App" declared twice`,
		},
		{
			desc: "component nested in itself",
			give: "components:\n  - {name: App, type: app.App, children: [Child]}\n  - {name: Child, type: app.Child, children: [App]}",
			want: `component "App" is its own descendant`,
		},
		{
			desc: "unknown module",
			give: "components:\n  - {name: App, type: app.App, include: [storage]}",
			want: `includes unknown module "storage"`,
		},
		{
			desc: "module includes itself",
			give: "modules:\n  - {name: a, include: [b]}\n  - {name: b, include: [a]}\ncomponents:\n  - {name: App, type: app.App, include: [a]}",
			want: `module "a" includes itself`,
		},
		{
			desc: "unknown binding kind",
			give: "components:\n  - name: App\n    type: app.App\n    bindings:\n      - {key: app.DB, kind: eager, producer: OpenDB}",
			want: `test.yaml:5: unknown binding kind "eager"`,
		},
		{
			desc: "malformed key",
			give: "components:\n  - name: App\n    type: app.App\n    bindings:\n      - {key: \"map[string]\", producer: OpenDB}",
			want: "test.yaml:5",
		},
		{
			desc: "malformed component type",
			give: "components:\n  - {name: App, type: \"func()\"}",
			want: "component App",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			_, err := modulefile.Parse([]byte(tt.give), "test.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSharedModule(t *testing.T) {
	t.Parallel()

	data := `
modules:
  - name: shared
    instances:
      - {key: int, value: 42}
components:
  - name: App
    type: app.App
    include: [shared]
    children: [Child]
    accessors:
      - {name: Answer, request: int}
  - name: Child
    type: app.Child
    include: [shared]
    accessors:
      - {name: Answer, request: int}
`
	tree, err := modulefile.Parse([]byte(data), "shared.yaml")
	require.NoError(t, err)

	plan, err := injekt.Build(tree.Root)
	require.NoError(t, err)
	app, err := plan.Instantiate()
	require.NoError(t, err)
	assert.Equal(t, 42, app.MustGet("Answer"))
}

func TestDeclarationLines(t *testing.T) {
	t.Parallel()

	tree, err := modulefile.LoadFile("testdata/app.yaml")
	require.NoError(t, err)

	lines := make(map[string]int)
	for _, s := range tree.Root.Statements {
		switch s := s.(type) {
		case *decl.BindsInstanceStatement:
			lines["bindsInstance "+s.Key.String()] = s.At.Line
		case *decl.IncludeStatement:
			lines["include "+s.Module.Name] = s.At.Line
			for _, inner := range s.Module.Statements {
				if set, ok := inner.(*decl.SetStatement); ok {
					for _, e := range set.Elements {
						lines["element "+e.Element.String()] = e.At.Line
					}
				}
			}
		}
	}
	assert.Equal(t, map[string]int{
		"bindsInstance app.Config": 22,
		"include storage":          21,
		"element app.Migrate":      16,
	}, lines)
}

func TestDuplicateSetElementSites(t *testing.T) {
	t.Parallel()

	data := `
components:
  - name: App
    type: app.App
    sets:
      - key: set[app.Command]
        elements:
          - app.Migrate
          - app.Migrate
`
	tree, err := modulefile.Parse([]byte(data), "dup.yaml")
	require.NoError(t, err)

	_, err = injekt.Build(tree.Root)
	var dup *binding.DuplicateMultibindingEntryError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 8, dup.First.Line)
	assert.Equal(t, 9, dup.Second.Line)
}
