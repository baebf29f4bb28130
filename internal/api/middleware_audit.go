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
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/telemetry"
)

// newRecordID generates audit record correlation ids. Override in tests.
var newRecordID = uuid.NewString

// auditMiddleware builds one audit record per request once the handler
// chain has returned and publishes it without blocking the response.
func (s *Server) auditMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s.ignorePaths.Match(c.Request().URL.Path) {
				return next(c)
			}

			req := newEchoRequest(c)

			recordID := newRecordID()
			ctx := telemetry.WithRecordID(c.Request().Context(), recordID)
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = http.StatusInternalServerError

				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			rec, recErr := audit.NewRecord(
				s.logger,
				categoryForStatus(status),
				s.identity,
				audit.OriginREST,
				audit.OriginREST,
			)
			if recErr != nil {
				s.logger.ErrorContext(
					ctx,
					"creating audit record",
					slog.String("error", recErr.Error()),
				)

				return err
			}

			rec.AddRestRequestInfo(req, s.filter)
			rec.AddRemoteAddress(c.RealIP())
			rec.AddTaskID(s.taskID.Add(1))
			s.addUsers(c, rec)
			rec.AddException(err)

			s.publish(ctx, rec.Finalize())

			return err
		}
	}
}

// addUsers records the effective user, falling back to the attempted user
// on failed logins. The initiating user is recorded only for run-as requests.
func (s *Server) addUsers(
	c echo.Context,
	rec *audit.Record,
) {
	initiating, _ := c.Get(ContextKeyInitiatingUser).(string)
	effective, _ := c.Get(ContextKeyEffectiveUser).(string)
	if effective == "" {
		effective = initiating
	}

	rec.AddEffectiveUser(effective)
	if initiating != effective {
		rec.AddInitiatingUser(initiating)
	}
}

// publish hands snap to the sink queue. A full queue drops the record.
func (s *Server) publish(
	ctx context.Context,
	snap *audit.Snapshot,
) {
	if s.records == nil {
		return
	}

	select {
	case s.records <- snap:
		if s.metrics != nil {
			s.metrics.RecordEmitted(ctx, string(snap.Category()), string(snap.Origin()))
		}
	default:
		s.logger.WarnContext(
			ctx,
			"audit queue full, dropping record",
			slog.String("category", string(snap.Category())),
		)
		if s.metrics != nil {
			s.metrics.RecordDropped(ctx, "queue_full")
		}
	}
}

func categoryForStatus(
	status int,
) audit.Category {
	switch status {
	case http.StatusUnauthorized:
		return audit.CategoryFailedLogin
	case http.StatusForbidden:
		return audit.CategoryMissingPrivileges
	default:
		return audit.CategoryAuthenticated
	}
}
