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
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel"

	"github.com/retr0h/osaudit/internal/config"
	"github.com/retr0h/osaudit/internal/telemetry"
)

type InitTracerPublicTestSuite struct {
	suite.Suite

	ctx context.Context
}

func (s *InitTracerPublicTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *InitTracerPublicTestSuite) TestInitTracer() {
	tests := []struct {
		name        string
		cfg         config.TracingConfig
		errContains string
		wantValid   bool
	}{
		{
			name: "when disabled spans are not recorded",
			cfg:  config.TracingConfig{},
		},
		{
			name:      "when enabled without exporter spans carry ids",
			cfg:       config.TracingConfig{Enabled: true},
			wantValid: true,
		},
		{
			name:      "when stdout exporter configured spans carry ids",
			cfg:       config.TracingConfig{Enabled: true, Exporter: "stdout"},
			wantValid: true,
		},
		{
			name:        "when exporter is unsupported returns error",
			cfg:         config.TracingConfig{Enabled: true, Exporter: "zipkin"},
			errContains: "unsupported tracing exporter",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			shutdown, err := telemetry.InitTracer(s.ctx, "osaudit", tc.cfg)
			if tc.errContains != "" {
				s.ErrorContains(err, tc.errContains)

				return
			}

			s.Require().NoError(err)

			_, span := otel.Tracer("test").Start(s.ctx, "audit")
			s.Equal(tc.wantValid, span.SpanContext().IsValid())
			span.End()

			s.NoError(shutdown(s.ctx))
		})
	}
}

func TestInitTracerPublicTestSuite(t *testing.T) {
	suite.Run(t, new(InitTracerPublicTestSuite))
}
