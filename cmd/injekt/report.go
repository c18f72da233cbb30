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

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ShikaSD/injekt-sub000"
	"github.com/ShikaSD/injekt-sub000/factory"
	"github.com/davecgh/go-spew/spew"
)

// componentPlan is the printable summary of one resolved component.
type componentPlan struct {
	Name      string
	Scope     string
	Parent    string
	Bindings  []bindingPlan
	Fields    []string
	Accessors []accessorPlan
}

type bindingPlan struct {
	Key  string
	Kind string
	Site string
}

type accessorPlan struct {
	Name       string
	Expression string
}

func summarize(plan *injekt.Plan) ([]componentPlan, error) {
	impls := plan.Components()
	out := make([]componentPlan, 0, len(impls))
	for _, impl := range impls {
		c, err := summarizeComponent(impl)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func summarizeComponent(impl *factory.Implementation) (componentPlan, error) {
	g := impl.Graph()
	c := componentPlan{Name: impl.Name(), Scope: g.Scope()}
	if p := impl.Parent(); p != nil {
		c.Parent = p.Name()
	}
	for _, n := range g.Nodes() {
		c.Bindings = append(c.Bindings, bindingPlan{
			Key:  n.Key().String(),
			Kind: n.Kind(),
			Site: n.Site().String(),
		})
	}
	for _, f := range impl.Members().Initialization() {
		c.Fields = append(c.Fields, fmt.Sprintf("%s %v", f.Name, f.Key))
	}
	for _, a := range g.Accessors() {
		x, err := impl.Expressions().Render(a.Request)
		if err != nil {
			return componentPlan{}, fmt.Errorf("rendering accessor %s of %s: %w", a.Name, impl.Name(), err)
		}
		c.Accessors = append(c.Accessors, accessorPlan{Name: a.Name, Expression: x.String()})
	}
	return c, nil
}

func report(w io.Writer, plan *injekt.Plan) error {
	components, err := summarize(plan)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, c := range components {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "component %s (scope %q", c.Name, c.Scope)
		if c.Parent != "" {
			fmt.Fprintf(tw, ", parent %s", c.Parent)
		}
		fmt.Fprintln(tw, ")")

		fmt.Fprintln(tw, "  bindings:")
		for _, b := range c.Bindings {
			fmt.Fprintf(tw, "    %s\t%s\t%s\n", b.Key, b.Kind, b.Site)
		}
		if len(c.Fields) > 0 {
			fmt.Fprintln(tw, "  fields:")
			for j, f := range c.Fields {
				fmt.Fprintf(tw, "    %d. %s\n", j+1, f)
			}
		}
		if len(c.Accessors) > 0 {
			fmt.Fprintln(tw, "  accessors:")
			for _, a := range c.Accessors {
				fmt.Fprintf(tw, "    %s\t= %s\n", a.Name, a.Expression)
			}
		}
	}
	return tw.Flush()
}

func dump(w io.Writer, plan *injekt.Plan) error {
	components, err := summarize(plan)
	if err != nil {
		return err
	}
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, components)
	return nil
}
