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

// Package injekt resolves the binding graphs of a tree of dependency
// injection components.
//
// Components are declared with package decl, either directly in Go or
// loaded from YAML with package modulefile:
//
//	app := decl.NewComponent("App", key.Named("app.App"),
//		decl.Scope("app"),
//		decl.Scoped(key.Of("app.DB"), decl.Produce("NewDB", newDB),
//			decl.Dep(key.Of("app.Config"))),
//		decl.BindsInstance(key.Of("app.Config")),
//		decl.Accessor("DB", key.InstanceOf(key.Of("app.DB"))),
//	)
//
//	plan, err := injekt.Build(app)
//
// Build resolves every component of the tree, parent before child. Each
// key requested by a component is satisfied by exactly one binding: a
// local declaration, an annotated class, a multibound map or set, a
// Provider or Lazy wrapper, a members injector, a dependency component, a
// child factory, the component itself, or, failing all of those, the
// parent component. Scoped bindings and instances are cached in fields of
// the component that owns them.
//
// The resulting Plan describes the generated implementation of every
// component: its fields, their initialization order and the expression
// producing each accessor. When the declarations carry producer
// implementations, Plan.Instantiate runs the plan.
//
// # Errors
//
// Build reports every problem it finds, combined with go.uber.org/multierr.
// Individual errors are the typed errors of package binding and
// decl.InvalidDeclarationError; use errors.As to match them.
package injekt
