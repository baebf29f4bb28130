// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package sink writes finished audit records to their destination.
package sink

import (
	"context"

	"github.com/retr0h/osaudit/internal/audit"
)

// Sink receives finished audit records.
type Sink interface {
	// Open prepares the destination for writing.
	Open(ctx context.Context) error
	// Write renders and writes one record.
	Write(ctx context.Context, snap *audit.Snapshot) error
	// Close flushes pending output and releases the destination.
	Close(ctx context.Context) error
}

// Result summarizes a Run.
type Result struct {
	// Written is the number of records written.
	Written int
	// Failed is the number of records the sink rejected.
	Failed int
}
