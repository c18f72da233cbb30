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

// Package injekttest provides helpers for tests that build component trees.
package injekttest

import (
	"bytes"

	"github.com/ShikaSD/injekt-sub000"
	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/injektevent"
	"github.com/ShikaSD/injekt-sub000/runtime"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	FailNow()
}

// NewTestLogger returns an event logger that writes to the test log.
func NewTestLogger(t TB) injektevent.Logger {
	return &injektevent.ConsoleLogger{W: testLogWriter{t}, Verbose: true}
}

type testLogWriter struct{ t TB }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", bytes.TrimRight(p, "\n"))
	return len(p), nil
}

// Plan is a built component tree bound to a test.
type Plan struct {
	*injekt.Plan

	t TB
}

// New builds root, logging resolution events to the test log. The test
// fails immediately if the tree does not resolve.
func New(t TB, root *decl.Component, opts ...injekt.Option) *Plan {
	opts = append([]injekt.Option{injekt.WithLogger(NewTestLogger(t))}, opts...)
	plan, err := injekt.Build(root, opts...)
	if err != nil {
		t.Errorf("injekt.Build failed: %v", err)
		t.FailNow()
	}
	return &Plan{Plan: plan, t: t}
}

// RequireInstantiate creates the root container, failing the test if an
// error is encountered.
func (p *Plan) RequireInstantiate(args ...any) *runtime.Container {
	if p.Plan == nil {
		p.t.Errorf("cannot instantiate a plan that failed to build")
		p.t.FailNow()
		return nil
	}
	c, err := p.Instantiate(args...)
	if err != nil {
		p.t.Errorf("instantiating %s failed: %v", p.Root().Name(), err)
		p.t.FailNow()
	}
	return c
}

// BuildError builds root and returns the resulting error, failing the test
// if the tree resolves.
func BuildError(t TB, root *decl.Component, opts ...injekt.Option) error {
	opts = append([]injekt.Option{injekt.WithLogger(NewTestLogger(t))}, opts...)
	_, err := injekt.Build(root, opts...)
	if err == nil {
		t.Errorf("expected injekt.Build to fail")
		t.FailNow()
	}
	return err
}
