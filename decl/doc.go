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

// Package decl holds the normalized declaration statements consumed by the
// resolution engine.
//
// A declaration front end (the YAML loader in package modulefile, or Go code
// using the constructors in this package) produces a tree of Components. Each
// Component is a flat list of tagged statements:
//
//	app := decl.NewComponent("App", key.Named("app.Component"),
//		decl.Scope("app"),
//		decl.Scoped(key.Of("app.DB"), decl.Produce("app.NewDB", newDB)),
//		decl.Alias(key.Of("app.DB"), key.Of("app.Store")),
//		decl.Set(key.New(key.Set(key.Named("app.Cmd"))),
//			decl.Add(key.InstanceOf(key.Of("app.Migrate"))),
//		),
//		decl.Accessor("store", key.InstanceOf(key.Of("app.Store"))),
//	)
//
// Statements record the site that declared them, which is reported with
// every resolution error.
package decl
