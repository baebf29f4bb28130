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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/config"
)

// HealthPath answers liveness probes and is never audited.
const HealthPath = "/health"

// New initialize a new Server and configure an Echo server.
func New(
	appConfig config.Config,
	logger *slog.Logger,
	identity audit.Identity,
	opts ...Option,
) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ipExtractor, err := newIPExtractor(appConfig.Server.Security.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("parsing trusted proxies: %w", err)
	}
	e.IPExtractor = ipExtractor

	// Initialize CORS configuration
	corsConfig := middleware.CORSConfig{}

	allowOrigins := appConfig.Server.Security.CORS.AllowOrigins
	if len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	}

	e.Use(otelecho.Middleware("osaudit"))
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(corsConfig))

	s := &Server{
		Echo:      e,
		logger:    logger,
		appConfig: appConfig,
		identity:  identity,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.filter == nil {
		filter, err := audit.NewFilter(audit.FilterConfig{
			ExcludeSensitiveHeaders: appConfig.Audit.ExcludeSensitiveHeaders,
			LogRequestBody:          appConfig.Audit.LogRequestBody,
			IgnoreHeaders:           append([]string{HeaderProxySecret}, appConfig.Audit.IgnoreHeaders...),
			IgnoreURLParams:         appConfig.Audit.IgnoreURLParams,
		})
		if err != nil {
			return nil, fmt.Errorf("building audit filter: %w", err)
		}
		s.filter = filter
	}

	ignored := append([]string{HealthPath}, appConfig.Audit.IgnorePaths...)
	if s.metricsHandler != nil {
		ignored = append(ignored, s.metricsPath)
	}

	ignorePaths, err := audit.NewMatcher(ignored, false)
	if err != nil {
		return nil, fmt.Errorf("compiling ignored paths: %w", err)
	}
	s.ignorePaths = ignorePaths

	e.GET(HealthPath, s.handleHealth)

	if s.metricsHandler != nil {
		e.GET(s.metricsPath, echo.WrapHandler(s.metricsHandler))
	}

	e.Any("/*", s.handleRequest, s.auditMiddleware(), s.remoteUserMiddleware())

	return s, nil
}

// newIPExtractor uses the connection peer as the client address unless
// trusted proxy ranges are configured, in which case X-Forwarded-For is
// followed through those ranges only.
func newIPExtractor(
	trustedProxies []string,
) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(opts...), nil
}

// Start starts the Echo server with the configured port.
func (s *Server) Start() {
	go func() {
		s.logger.Info(
			"starting server",
			slog.Int("port", s.appConfig.Server.Port),
		)
		listenAddr := fmt.Sprintf(":%d", s.appConfig.Server.Port)
		if err := s.Echo.Start(listenAddr); err != nil && err != http.ErrServerClosed {
			s.logger.Error(
				"failed to start server",
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Stop gracefully shuts down the Echo server.
func (s *Server) Stop(
	ctx context.Context,
) {
	s.logger.Info("stopping server")

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.logger.Error(
			"server shutdown failed",
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("server stopped gracefully")
	}
}
