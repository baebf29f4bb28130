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
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/osaudit/internal/audit/content"
	"github.com/retr0h/osaudit/internal/telemetry"
)

// RequestResponse acknowledges an audited request.
type RequestResponse struct {
	RecordID string `json:"record_id"`
	User     string `json:"user"`
}

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(
	c echo.Context,
) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleRequest accepts any request that passed authentication. A body
// that cannot be rendered as JSON is rejected.
func (s *Server) handleRequest(
	c echo.Context,
) error {
	req := newEchoRequest(c)
	if req.readErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body").
			SetInternal(req.readErr)
	}

	if len(req.body) > 0 {
		if _, err := content.ToJSON(content.Tuple{
			MediaType: c.Request().Header.Get(echo.HeaderContentType),
			Raw:       req.body,
		}); err != nil {
			code := http.StatusBadRequest
			if errors.Is(err, content.ErrUnsupportedMediaType) {
				code = http.StatusUnsupportedMediaType
			}

			return echo.NewHTTPError(code, "request body is not valid structured content").
				SetInternal(err)
		}
	}

	recordID, _ := telemetry.RecordIDFromContext(c.Request().Context())
	user, _ := c.Get(ContextKeyEffectiveUser).(string)

	return c.JSON(http.StatusOK, RequestResponse{
		RecordID: recordID,
		User:     user,
	})
}
