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

package injektevent

import (
	"fmt"
	"io"
	"strings"
)

// ConsoleLogger is an injekt event logger that attempts to write
// human-readable messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer

	// Verbose also logs every resolved binding.
	Verbose bool
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[injekt] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *GraphBuilt:
		if e.Err != nil {
			l.logf("ERROR\t\tInvalid declarations in %s: %v", e.Component, e.Err)
		} else if e.Parent != "" {
			l.logf("GRAPH\t%s (scope %q, parent %s)", e.Component, e.Scope, e.Parent)
		} else {
			l.logf("GRAPH\t%s (scope %q)", e.Component, e.Scope)
		}
	case *BindingResolved:
		if l.Verbose {
			l.logf("BIND\t%s\t%v <= %s via %s (owner %s)", e.Component, e.Key, e.Kind, e.Resolver, e.Owner)
		}
	case *MultibindingMerged:
		if e.Err != nil {
			l.logf("ERROR\t\tMerging %v in %s: %v", e.Collection, e.Component, e.Err)
		} else {
			l.logf("MULTIBIND\t%s\t%v (%d inherited, %d local)", e.Component, e.Collection, e.Inherited, e.Local)
		}
	case *Walked:
		if e.Err != nil {
			l.logf("ERROR\t\tResolving %s failed: %v", e.Component, e.Err)
		} else {
			l.logf("WALK\t%s\t%d roots, %d bindings", e.Component, e.Roots, e.Nodes)
		}
	case *FieldsOrdered:
		if e.Err != nil {
			l.logf("ERROR\t\tOrdering fields of %s failed: %v", e.Component, e.Err)
		} else {
			l.logf("FIELDS\t%s\t[%s] in %d passes", e.Component, strings.Join(e.Fields, ", "), e.Passes)
		}
	case *Built:
		if e.Err != nil {
			l.logf("ERROR\t\tBuilding %s failed: %v", e.Root, e.Err)
		} else {
			l.logf("BUILT\t%s (%d components)", e.Root, e.Components)
		}
	case *Instantiated:
		if e.Err != nil {
			l.logf("ERROR\t\tInstantiating %s failed: %v", e.Component, e.Err)
		} else {
			l.logf("NEW\t\t%s (%d fields)", e.Component, e.Fields)
		}
	}
}
