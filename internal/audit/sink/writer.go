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

package sink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/retr0h/osaudit/internal/audit"
)

// Sink types.
const (
	TypeStdout = "stdout"
	TypeFile   = "file"
)

// ErrNotOpened is returned when writing to or closing a sink that was not opened.
var ErrNotOpened = errors.New("sink not opened")

// stdout is the destination of the stdout sink. Override in tests.
var stdout io.Writer = os.Stdout

// openFile opens the file sink destination in append mode.
func openFile(
	appFs afero.Fs,
	path string,
) (io.WriteCloser, error) {
	return appFs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
}

// WriterSink writes each rendered record followed by a newline. Records are
// one per line only for single-line formats; config validation keeps the
// pretty and text formats away from file sinks. Writes are serialized so a
// single sink can be shared by concurrent request handlers.
type WriterSink struct {
	Format audit.Format

	mu     sync.Mutex
	open   func() (io.WriteCloser, error)
	file   io.WriteCloser
	writer *bufio.Writer
}

// NewFileSink creates a sink appending records to path on appFs.
func NewFileSink(
	appFs afero.Fs,
	path string,
	format audit.Format,
) *WriterSink {
	return &WriterSink{
		Format: format,
		open: func() (io.WriteCloser, error) {
			return openFile(appFs, path)
		},
	}
}

// NewStdoutSink creates a sink writing records to standard output.
func NewStdoutSink(
	format audit.Format,
) *WriterSink {
	return &WriterSink{
		Format: format,
		open: func() (io.WriteCloser, error) {
			return nopCloser{stdout}, nil
		},
	}
}

// New creates the sink named by sinkType.
func New(
	appFs afero.Fs,
	sinkType string,
	path string,
	format audit.Format,
) (*WriterSink, error) {
	switch sinkType {
	case TypeStdout, "":
		return NewStdoutSink(format), nil
	case TypeFile:
		return NewFileSink(appFs, path, format), nil
	default:
		return nil, fmt.Errorf("unsupported sink type: %q", sinkType)
	}
}

// Open opens the destination and prepares for writing.
func (w *WriterSink) Open(
	_ context.Context,
) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return fmt.Errorf("opening sink: %w", err)
	}

	w.file = f
	w.writer = bufio.NewWriter(f)

	return nil
}

// Write renders the record and writes it as a single line. Output is
// flushed after every record.
func (w *WriterSink) Write(
	_ context.Context,
	snap *audit.Snapshot,
) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return ErrNotOpened
	}

	line, err := snap.Render(w.Format)
	if err != nil {
		return fmt.Errorf("rendering record: %w", err)
	}

	if _, err := w.writer.WriteString(line); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}

	if err := w.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("flushing writer: %w", err)
	}

	return nil
}

// Close flushes the buffer and closes the destination.
func (w *WriterSink) Close(
	_ context.Context,
) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer == nil {
		return ErrNotOpened
	}

	defer func() { w.writer = nil }()

	if err := w.writer.Flush(); err != nil {
		return fmt.Errorf("flushing writer: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
