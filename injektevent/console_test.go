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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    Event
		verbose bool
		want    string
	}{
		{
			name: "GraphBuilt",
			give: &GraphBuilt{Component: "App", Scope: "app"},
			want: "[injekt] GRAPH\tApp (scope \"app\")\n",
		},
		{
			name: "GraphBuiltChild",
			give: &GraphBuilt{Component: "Request", Scope: "request", Parent: "App"},
			want: "[injekt] GRAPH\tRequest (scope \"request\", parent App)\n",
		},
		{
			name: "BindingResolvedQuiet",
			give: &BindingResolved{Component: "App", Key: "a.A"},
			want: "",
		},
		{
			name:    "BindingResolvedVerbose",
			give:    &BindingResolved{Component: "App", Key: "a.A", Kind: "provision", Resolver: "class", Owner: "App"},
			verbose: true,
			want:    "[injekt] BIND\tApp\ta.A <= provision via class (owner App)\n",
		},
		{
			name: "WalkedError",
			give: &Walked{Component: "App", Err: errors.New("great sadness")},
			want: "[injekt] ERROR\t\tResolving App failed: great sadness\n",
		},
		{
			name: "FieldsOrdered",
			give: &FieldsOrdered{Component: "App", Fields: []string{"a.A"}, Passes: 1},
			want: "[injekt] FIELDS\tApp\t[a.A] in 1 passes\n",
		},
		{
			name: "Built",
			give: &Built{Root: "App", Components: 2},
			want: "[injekt] BUILT\tApp (2 components)\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buff bytes.Buffer
			(&ConsoleLogger{W: &buff, Verbose: tt.verbose}).LogEvent(tt.give)

			assert.Equal(t, tt.want, buff.String())
		})
	}
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { NopLogger.LogEvent(&Built{}) })
	assert.Equal(t, "NopLogger", NopLogger.String())
}
