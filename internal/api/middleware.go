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
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Headers set by the authenticating proxy in front of the server.
const (
	HeaderRemoteUser  = "X-Remote-User"
	HeaderRunAs       = "X-Run-As"
	HeaderProxySecret = "X-Proxy-Secret"
)

// Context key constants for injecting user identity into handlers.
const (
	ContextKeyInitiatingUser = "auth.initiating_user"
	ContextKeyEffectiveUser  = "auth.effective_user"
)

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// remoteUserMiddleware trusts the user named by the proxy. When a proxy
// secret is configured the request must present it, otherwise the request
// is rejected as unauthenticated. X-Run-As switches the effective user.
func (s *Server) remoteUserMiddleware() echo.MiddlewareFunc {
	secret := s.appConfig.Server.Security.ProxySecret

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header
			user := header.Get(HeaderRemoteUser)

			// Record the attempted user for failed logins.
			c.Set(ContextKeyInitiatingUser, user)

			if secret != "" &&
				subtle.ConstantTimeCompare([]byte(header.Get(HeaderProxySecret)), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error: "proxy secret mismatch",
				})
			}

			if user == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Error: HeaderRemoteUser + " header required",
				})
			}

			effective := user
			if runAs := header.Get(HeaderRunAs); runAs != "" {
				effective = runAs
			}
			c.Set(ContextKeyEffectiveUser, effective)

			return next(c)
		}
	}
}
