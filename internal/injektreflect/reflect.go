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

// Package injektreflect captures declaration sites so that resolution errors
// can point back at the statement that caused them.
package injektreflect

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

const modulePath = "github.com/ShikaSD/injekt-sub000"

// Frame is a single frame of a declaration site.
type Frame struct {
	Function string
	File     string
	Line     int
}

// String formats the frame as "function (file:line)".
func (f Frame) String() string {
	if f.Function == "" {
		return "n/a"
	}
	return fmt.Sprintf("%s (%s:%d)", f.Function, filepath.Base(f.File), f.Line)
}

// Caller returns the first frame outside the engine's own production code.
func Caller() Frame {
	// Ascend at most 8 frames looking for a caller outside injekt.
	pcs := make([]uintptr, 8)

	// Don't include this frame.
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return Frame{}
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !shouldIgnoreFrame(f) {
			return Frame{Function: f.Function, File: f.File, Line: f.Line}
		}
		if !more {
			break
		}
	}
	return Frame{}
}

// FuncName returns a funcs formatted name
func FuncName(fn interface{}) string {
	fnV := reflect.ValueOf(fn)
	if fnV.Kind() != reflect.Func || fnV.IsNil() {
		return "n/a"
	}

	fnName := runtime.FuncForPC(fnV.Pointer()).Name()
	return fmt.Sprintf("%s()", fnName)
}

// Ascend the call stack until we leave the production code. This allows us
// to avoid hard-coding a frame skip, which makes this code work well even
// when it's wrapped.
func shouldIgnoreFrame(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	return strings.HasPrefix(f.Function, modulePath+"/") ||
		strings.HasPrefix(f.Function, modulePath+".")
}
