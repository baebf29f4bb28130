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

// Package api is the HTTP front end that audits every request it receives.
package api

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/config"
	"github.com/retr0h/osaudit/internal/telemetry"
)

// Server implementation of the audit HTTP server.
type Server struct {
	// Echo servers instance.
	Echo *echo.Echo

	logger    *slog.Logger
	appConfig config.Config
	identity  audit.Identity
	filter    audit.Filter

	ignorePaths *audit.Matcher
	records     chan<- *audit.Snapshot
	metrics     *telemetry.AuditMetrics
	taskID      atomic.Int64

	metricsHandler http.Handler
	metricsPath    string
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithRecords sets the channel finished audit records are published on.
// Records are dropped when the channel is full.
func WithRecords(
	records chan<- *audit.Snapshot,
) Option {
	return func(s *Server) {
		s.records = records
	}
}

// WithMetrics sets the counters updated for every audit record.
func WithMetrics(
	metrics *telemetry.AuditMetrics,
) Option {
	return func(s *Server) {
		s.metrics = metrics
	}
}

// WithMetricsHandler mounts the Prometheus scrape handler at path.
func WithMetricsHandler(
	handler http.Handler,
	path string,
) Option {
	return func(s *Server) {
		s.metricsHandler = handler
		s.metricsPath = path
	}
}

// WithFilter replaces the redaction filter built from the configuration.
func WithFilter(
	filter audit.Filter,
) Option {
	return func(s *Server) {
		s.filter = filter
	}
}
