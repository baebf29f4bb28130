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

package audit

import (
	"log/slog"

	"github.com/retr0h/osaudit/internal/audit/content"
)

// Request body placeholders stored when content cannot be rendered.
const (
	bodyConversionError       = "ERROR: Unable to convert to json"
	bodyConversionErrorPrefix = "ERROR: Unable to convert to json because of "
	bodyGenerationError       = "ERROR: Unable to generate request body"
)

// Request is the REST request abstraction audited by AddRestRequestInfo.
type Request interface {
	Path() string
	Method() Method
	Headers() map[string][]string
	Params() map[string]string
}

// ContentRequest is a Request whose body is available to the audit layer.
type ContentRequest interface {
	Request
	// HasContent reports whether the request carries a body or source param.
	HasContent() bool
	// Content returns the request body and its media type.
	Content() (content.Tuple, error)
}

// AddRequestBody records already rendered JSON text as the request body.
func (r *Record) AddRequestBody(
	source string,
) {
	r.setString(FieldRequestBody, source)
}

// AddTupleToRequestBody records structured content as the request body. A
// conversion failure is recorded in place of the body.
func (r *Record) AddTupleToRequestBody(
	t *content.Tuple,
) {
	if t == nil {
		return
	}

	body, err := content.ToJSON(*t)
	if err != nil {
		r.set(FieldRequestBody, StringValue(bodyConversionErrorPrefix+err.Error()))

		return
	}

	r.AddRequestBody(body)
}

// AddMapToRequestBody records a structured map as the request body.
func (r *Record) AddMapToRequestBody(
	m map[string]any,
) {
	if m == nil {
		return
	}

	body, err := content.MapToJSON(m)
	if err != nil {
		r.set(FieldRequestBody, StringValue(bodyConversionErrorPrefix+err.Error()))

		return
	}

	r.AddRequestBody(body)
}

// AddSecurityConfigContentToRequestBody records security configuration
// content as the request body, with password hashes redacted when the
// content belongs to the internal users document. Every security
// configuration body passes through here.
func (r *Record) AddSecurityConfigContentToRequestBody(
	source string,
	docID string,
) {
	r.setString(FieldRequestBody, RedactSecurityConfigContent(source, docID))
}

// AddSecurityConfigTupleToRequestBody converts structured security
// configuration content to JSON and records it redacted.
func (r *Record) AddSecurityConfigTupleToRequestBody(
	t *content.Tuple,
	docID string,
) {
	if t == nil {
		return
	}

	body, err := content.ToJSON(*t)
	if err != nil {
		r.set(FieldRequestBody, StringValue(bodyConversionError))

		return
	}

	r.AddSecurityConfigContentToRequestBody(body, docID)
}

// AddSecurityConfigMapToRequestBody converts a security configuration map
// to JSON and records it redacted.
func (r *Record) AddSecurityConfigMapToRequestBody(
	m map[string]any,
	docID string,
) {
	if m == nil {
		return
	}

	body, err := content.MapToJSON(m)
	if err != nil {
		r.set(FieldRequestBody, StringValue(bodyConversionError))

		return
	}

	r.AddSecurityConfigContentToRequestBody(body, docID)
}

// AddRestParams records URL parameters. Values of parameters excluded by
// the filter are replaced with RedactedParamValue.
func (r *Record) AddRestParams(
	params map[string]string,
	filter Filter,
) {
	if len(params) == 0 {
		return
	}

	r.set(FieldRestRequestParams, ParamsValue(FilterParams(params, filter)))
}

// AddRestHeaders records REST headers minus the sensitive and excluded ones.
func (r *Record) AddRestHeaders(
	headers map[string][]string,
	excludeSensitive bool,
	filter Filter,
) {
	if len(headers) == 0 {
		return
	}

	r.set(FieldRestRequestHeaders, HeadersValue(FilterHeaders(headers, excludeSensitive, filter)))
}

// AddRestMethod records the REST request method.
func (r *Record) AddRestMethod(
	method Method,
) {
	if method == "" {
		return
	}

	r.set(FieldRestRequestMethod, method)
}

// AddTransportHeaders records transport headers, dropping Authorization
// when excludeSensitive is set.
func (r *Record) AddTransportHeaders(
	headers map[string]string,
	excludeSensitive bool,
) {
	if len(headers) == 0 {
		return
	}

	multi := make(map[string][]string, len(headers))
	for name, value := range headers {
		multi[name] = []string{value}
	}

	filtered := make(ParamsValue, len(multi))
	for name, values := range FilterHeaders(multi, excludeSensitive, nil) {
		filtered[name] = values[0]
	}

	r.set(FieldTransportHeaders, filtered)
}

// AddRestRequestInfo records path, headers, params and method of req, and
// its body when the filter asks for it and req exposes one. The body is
// replaced entirely when it was sent to a credentials endpoint and mentions
// a password. Failures are recorded in the body field, never returned.
func (r *Record) AddRestRequestInfo(
	req Request,
	filter Filter,
) {
	if req == nil {
		return
	}

	path := req.Path()
	r.AddPath(path)

	excludeSensitive := filter != nil && filter.ShouldExcludeSensitiveHeaders()
	r.AddRestHeaders(req.Headers(), excludeSensitive, filter)
	r.AddRestParams(req.Params(), filter)
	r.AddRestMethod(req.Method())

	if filter == nil || !filter.ShouldLogRequestBody() {
		return
	}

	cr, ok := req.(ContentRequest)
	if !ok || !cr.HasContent() {
		return
	}

	t, err := cr.Content()
	if err == nil {
		var body string
		body, err = content.ToJSON(t)
		if err == nil {
			r.set(FieldRequestBody, StringValue(RedactRestRequestBody(path, body)))

			return
		}
	}

	r.set(FieldRequestBody, StringValue(bodyGenerationError))
	r.logger.Error(
		"error while generating request body for audit log",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}
