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

// Package injektevent defines a means of changing how injekt logs internal
// events.
//
// # Changing the Logger
//
// By default nothing is logged. Use the injekt.WithLogger option to pass
// an implementation of the [Logger] interface.
//
//	injekt.Build(root, injekt.WithLogger(&injektevent.ConsoleLogger{W: os.Stderr}))
//
// If you're using Zap inside your application, use the [ZapLogger]
// implementation of the interface.
//
//	injekt.Build(root, injekt.WithLogger(&injektevent.ZapLogger{Logger: log}))
//
// # Implementing a custom logger
//
// To implement a custom logger, implement the [Logger] interface and handle
// the events you care about with a type switch over [Event].
package injektevent
