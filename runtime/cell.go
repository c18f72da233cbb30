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

package runtime

import (
	"bytes"
	"fmt"
	goruntime "runtime"
	"strconv"
	"sync"

	"go.uber.org/atomic"
)

// cell holds the value of one field of a container. Scoped fields are
// filled on first read with double-checked locking: a lock-free check of
// ready, then the cell's own mutex, a second check, the producer call and
// the publication of the value.
type cell struct {
	ready atomic.Bool
	// producer is the id of the goroutine running init, 0 when none is.
	producer atomic.Int64
	mu       sync.Mutex
	value    any
}

// get returns the value of the cell, running init if the cell is empty. A
// goroutine asking for a value it is producing panics with the message
// built by name instead of blocking on its own lock.
func (c *cell) get(init func() any, name func() string) any {
	if c.ready.Load() {
		return c.value
	}

	g := goid()
	if c.producer.Load() == g {
		panic(fmt.Sprintf("%s is requested while it is being produced", name()))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready.Load() {
		c.producer.Store(g)
		defer c.producer.Store(0)
		c.value = init()
		c.ready.Store(true)
	}
	return c.value
}

// set fills the cell during container construction, before the container
// is shared.
func (c *cell) set(v any) {
	c.value = v
	c.ready.Store(true)
}

// goid returns the id of the calling goroutine, parsed from the
// "goroutine N [running]:" header of its stack trace.
func goid() int64 {
	var buf [64]byte
	b := buf[:goruntime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
