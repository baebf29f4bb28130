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
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/audit/content"
)

// Query parameters carrying a request body on methods without one.
const (
	paramSource            = "source"
	paramSourceContentType = "source_content_type"
)

// ensure echoRequest implements audit.ContentRequest at compile time.
var _ audit.ContentRequest = (*echoRequest)(nil)

// echoRequest exposes an echo request to the audit layer. The body is read
// once and put back so later handlers still see it.
type echoRequest struct {
	req     *http.Request
	params  map[string]string
	body    []byte
	readErr error
}

func newEchoRequest(
	c echo.Context,
) *echoRequest {
	req := c.Request()

	params := make(map[string]string)
	for name, values := range c.QueryParams() {
		if len(values) > 0 {
			params[name] = values[0]
		}
	}

	r := &echoRequest{
		req:    req,
		params: params,
	}

	if req.Body != nil && req.Body != http.NoBody {
		r.body, r.readErr = io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(r.body))
	}

	return r
}

func (r *echoRequest) Path() string {
	return r.req.URL.Path
}

func (r *echoRequest) Method() audit.Method {
	m, _ := audit.ParseMethod(r.req.Method)

	return m
}

func (r *echoRequest) Headers() map[string][]string {
	return r.req.Header.Clone()
}

func (r *echoRequest) Params() map[string]string {
	return r.params
}

func (r *echoRequest) HasContent() bool {
	if r.readErr != nil || len(r.body) > 0 {
		return true
	}

	_, ok := r.params[paramSource]

	return ok
}

func (r *echoRequest) Content() (content.Tuple, error) {
	if r.readErr != nil {
		return content.Tuple{}, r.readErr
	}

	if len(r.body) > 0 {
		return content.Tuple{
			MediaType: r.req.Header.Get(echo.HeaderContentType),
			Raw:       r.body,
		}, nil
	}

	return content.Tuple{
		MediaType: r.params[paramSourceContentType],
		Raw:       []byte(r.params[paramSource]),
	}, nil
}
