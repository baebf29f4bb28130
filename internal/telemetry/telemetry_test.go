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

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/retr0h/osaudit/internal/config"
)

// noopClient implements otlptrace.Client without a collector.
type noopClient struct{}

func (noopClient) Start(_ context.Context) error { return nil }
func (noopClient) Stop(_ context.Context) error  { return nil }

func (noopClient) UploadTraces(
	_ context.Context,
	_ []*tracepb.ResourceSpans,
) error {
	return nil
}

type InitTracerTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *InitTracerTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *InitTracerTestSuite) TearDownTest() {
	resourceNewFn = resource.New
	stdouttraceNewFn = stdouttrace.New
	otlptraceNewFn = otlptracegrpc.New
}

func (s *InitTracerTestSuite) TearDownSubTest() {
	resourceNewFn = resource.New
	stdouttraceNewFn = stdouttrace.New
	otlptraceNewFn = otlptracegrpc.New
}

func (s *InitTracerTestSuite) TestInitTracer() {
	tests := []struct {
		name         string
		cfg          config.TracingConfig
		setup        func()
		validateFunc func(shutdown func(context.Context) error, err error)
	}{
		{
			name: "when resource creation fails returns error",
			cfg:  config.TracingConfig{Enabled: true},
			setup: func() {
				resourceNewFn = func(
					_ context.Context,
					_ ...resource.Option,
				) (*resource.Resource, error) {
					return nil, errors.New("resource creation failed")
				}
			},
			validateFunc: func(shutdown func(context.Context) error, err error) {
				s.Nil(shutdown)
				s.ErrorContains(err, "creating resource")
			},
		},
		{
			name: "when stdout exporter creation fails returns error",
			cfg:  config.TracingConfig{Enabled: true, Exporter: "stdout"},
			setup: func() {
				stdouttraceNewFn = func(_ ...stdouttrace.Option) (*stdouttrace.Exporter, error) {
					return nil, errors.New("stdout exporter failed")
				}
			},
			validateFunc: func(shutdown func(context.Context) error, err error) {
				s.Nil(shutdown)
				s.ErrorContains(err, "creating stdout exporter")
			},
		},
		{
			name: "when OTLP exporter configured creates valid provider",
			cfg: config.TracingConfig{
				Enabled:      true,
				Exporter:     "otlp",
				OTLPEndpoint: "localhost:4317",
			},
			setup: func() {
				otlptraceNewFn = func(
					_ context.Context,
					_ ...otlptracegrpc.Option,
				) (*otlptrace.Exporter, error) {
					return otlptrace.NewUnstarted(noopClient{}), nil
				}
			},
			validateFunc: func(shutdown func(context.Context) error, err error) {
				s.Require().NoError(err)

				_, span := otel.Tracer("test").Start(s.ctx, "audit")
				s.True(span.SpanContext().IsValid())
				span.End()

				s.NoError(shutdown(s.ctx))
			},
		},
		{
			name: "when OTLP exporter creation fails returns error",
			cfg:  config.TracingConfig{Enabled: true, Exporter: "otlp"},
			setup: func() {
				otlptraceNewFn = func(
					_ context.Context,
					_ ...otlptracegrpc.Option,
				) (*otlptrace.Exporter, error) {
					return nil, errors.New("otlp exporter failed")
				}
			},
			validateFunc: func(shutdown func(context.Context) error, err error) {
				s.Nil(shutdown)
				s.ErrorContains(err, "creating OTLP exporter")
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			tc.setup()

			tc.validateFunc(InitTracer(s.ctx, "osaudit", tc.cfg))
		})
	}
}

func TestInitTracerTestSuite(t *testing.T) {
	suite.Run(t, new(InitTracerTestSuite))
}
