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

package injekt

import (
	"fmt"
	"strings"

	"github.com/ShikaSD/injekt-sub000/decl"
	"github.com/ShikaSD/injekt-sub000/injektevent"
)

// Option configures Build.
type Option interface {
	apply(*buildOptions)
}

type buildOptions struct {
	logger  injektevent.Logger
	classes []decl.Class
}

type loggerOption struct{ logger injektevent.Logger }

var _ Option = loggerOption{}

func (o loggerOption) apply(opts *buildOptions) {
	opts.logger = o.logger
}

func (o loggerOption) String() string {
	return fmt.Sprintf("injekt.WithLogger(%v)", o.logger)
}

// WithLogger specifies the logger receiving the events of Build and of the
// containers the plan instantiates. Events are dropped by default.
func WithLogger(l injektevent.Logger) Option {
	return loggerOption{logger: l}
}

type classesOption []decl.Class

var _ Option = classesOption(nil)

func (o classesOption) apply(opts *buildOptions) {
	opts.classes = append(opts.classes, o...)
}

func (o classesOption) String() string {
	names := make([]string, len(o))
	for i, cl := range o {
		names[i] = cl.Type.String()
	}
	return fmt.Sprintf("injekt.WithClasses(%s)", strings.Join(names, ", "))
}

// WithClasses makes annotated classes resolvable in every component of the
// tree. May be given more than once; a class type may only appear once.
func WithClasses(classes ...decl.Class) Option {
	return classesOption(classes)
}
