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
	"strings"

	"go.uber.org/zap"
)

// ZapLogger is an injekt event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *GraphBuilt:
		if e.Err != nil {
			l.Logger.Error("invalid component declarations",
				zap.String("component", e.Component),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("graph built",
				zap.String("component", e.Component),
				zap.String("scope", e.Scope),
				zap.String("parent", e.Parent))
		}
	case *BindingResolved:
		l.Logger.Debug("binding resolved",
			zap.String("component", e.Component),
			zap.String("key", e.Key),
			zap.String("kind", e.Kind),
			zap.String("resolver", e.Resolver),
			zap.String("owner", e.Owner))
	case *MultibindingMerged:
		if e.Err != nil {
			l.Logger.Error("multibinding merge failed",
				zap.String("component", e.Component),
				zap.String("collection", e.Collection),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("multibinding merged",
				zap.String("component", e.Component),
				zap.String("collection", e.Collection),
				zap.Int("inherited", e.Inherited),
				zap.Int("local", e.Local))
		}
	case *Walked:
		if e.Err != nil {
			l.Logger.Error("graph walk failed",
				zap.String("component", e.Component),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("graph walked",
				zap.String("component", e.Component),
				zap.Int("roots", e.Roots),
				zap.Int("nodes", e.Nodes))
		}
	case *FieldsOrdered:
		if e.Err != nil {
			l.Logger.Error("field ordering failed",
				zap.String("component", e.Component),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("fields ordered",
				zap.String("component", e.Component),
				zap.String("fields", strings.Join(e.Fields, ", ")),
				zap.Int("passes", e.Passes))
		}
	case *Built:
		if e.Err != nil {
			l.Logger.Error("build failed",
				zap.String("root", e.Root),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("built",
				zap.String("root", e.Root),
				zap.Int("components", e.Components))
		}
	case *Instantiated:
		if e.Err != nil {
			l.Logger.Error("instantiation failed",
				zap.String("component", e.Component),
				zap.Error(e.Err))
		} else {
			l.Logger.Info("instantiated",
				zap.String("component", e.Component),
				zap.Int("fields", e.Fields))
		}
	}
}
