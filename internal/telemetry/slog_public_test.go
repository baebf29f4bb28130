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

package telemetry_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/retr0h/osaudit/internal/telemetry"
)

type SlogPublicTestSuite struct {
	suite.Suite

	ctx context.Context
	buf *bytes.Buffer
}

func (s *SlogPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.buf = &bytes.Buffer{}

	otel.SetTracerProvider(sdktrace.NewTracerProvider())
}

func (s *SlogPublicTestSuite) newHandler() slog.Handler {
	inner := slog.NewTextHandler(s.buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return telemetry.NewTraceHandler(inner)
}

func (s *SlogPublicTestSuite) TestHandle() {
	tests := []struct {
		name         string
		setupCtx     func() context.Context
		validateFunc func(ctx context.Context, output string)
	}{
		{
			name: "when active span adds trace_id and span_id",
			setupCtx: func() context.Context {
				ctx, _ := otel.Tracer("test").Start(s.ctx, "test-span")

				return ctx
			},
			validateFunc: func(ctx context.Context, output string) {
				sc := trace.SpanContextFromContext(ctx)
				s.Contains(output, "trace_id="+sc.TraceID().String())
				s.Contains(output, "span_id="+sc.SpanID().String())
				s.NotContains(output, "record_id=")
			},
		},
		{
			name: "when record id is present adds record_id",
			setupCtx: func() context.Context {
				return telemetry.WithRecordID(s.ctx, "rec-1")
			},
			validateFunc: func(_ context.Context, output string) {
				s.Contains(output, "record_id=rec-1")
				s.NotContains(output, "trace_id=")
			},
		},
		{
			name: "when record id is empty does not add record_id",
			setupCtx: func() context.Context {
				return telemetry.WithRecordID(s.ctx, "")
			},
			validateFunc: func(_ context.Context, output string) {
				s.NotContains(output, "record_id=")
			},
		},
		{
			name: "when context is bare adds nothing",
			setupCtx: func() context.Context {
				return s.ctx
			},
			validateFunc: func(_ context.Context, output string) {
				s.NotContains(output, "trace_id=")
				s.NotContains(output, "span_id=")
				s.NotContains(output, "record_id=")
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.buf.Reset()

			ctx := tc.setupCtx()
			slog.New(s.newHandler()).InfoContext(ctx, "audit record written")

			tc.validateFunc(ctx, s.buf.String())
		})
	}
}

func (s *SlogPublicTestSuite) TestWithAttrsAndGroup() {
	handler := s.newHandler().
		WithAttrs([]slog.Attr{slog.String("component", "sink")}).
		WithGroup("record")

	ctx := telemetry.WithRecordID(s.ctx, "rec-2")
	slog.New(handler).InfoContext(ctx, "written", slog.String("category", "AUTHENTICATED"))

	out := s.buf.String()
	s.Contains(out, "component=sink")
	s.Contains(out, "record.category=AUTHENTICATED")
	s.Contains(out, "record.record_id=rec-2")
}

func (s *SlogPublicTestSuite) TestEnabled() {
	inner := slog.NewTextHandler(s.buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	handler := telemetry.NewTraceHandler(inner)

	s.False(handler.Enabled(s.ctx, slog.LevelDebug))
	s.True(handler.Enabled(s.ctx, slog.LevelWarn))
}

func (s *SlogPublicTestSuite) TestRecordIDFromContext() {
	id, ok := telemetry.RecordIDFromContext(s.ctx)
	s.False(ok)
	s.Empty(id)

	id, ok = telemetry.RecordIDFromContext(telemetry.WithRecordID(s.ctx, "rec-3"))
	s.True(ok)
	s.Equal("rec-3", id)
}

func TestSlogPublicTestSuite(t *testing.T) {
	suite.Run(t, new(SlogPublicTestSuite))
}
