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
	"regexp"
	"strings"

	"github.com/retr0h/osaudit/internal/audit/content"
)

// Password hash encodings recognised in security configuration content.
const (
	BcryptPattern = `\$2[ayb]\$.{56}`
	PBKDF2Pattern = `\$\d+\$\d+\$[A-Za-z0-9+/]+={0,2}\$[A-Za-z0-9+/]+={0,2}`
	Argon2Pattern = `\$argon2(?:id|i|d)\$v=\d+\$(?:[a-z]=\d+,?)+\$[A-Za-z0-9+/]+={0,2}\$[A-Za-z0-9+/]+={0,2}`
)

const (
	// HashReplacement replaces every password hash found in internal users content.
	HashReplacement = "__HASH__"
	// SensitiveReplacement replaces a whole REST body sent to a credentials endpoint.
	SensitiveReplacement = "__SENSITIVE__"
	// RedactedParamValue replaces the value of an excluded URL parameter.
	RedactedParamValue = "REDACTED"
	// InternalUsersDocID is the security configuration document holding password hashes.
	InternalUsersDocID = "internalusers"

	sensitiveKey        = "password"
	authorizationHeader = "Authorization"
)

var (
	// HashPattern matches bcrypt, PBKDF2 and argon2 hash encodings.
	HashPattern = regexp.MustCompile(BcryptPattern + "|" + PBKDF2Pattern + "|" + Argon2Pattern)

	// SensitivePathPattern matches the account and user administration endpoints
	// under both security plugin prefixes.
	SensitivePathPattern = regexp.MustCompile(
		`^/(_opendistro/_security|_plugins/_security)/api/(account.*|internalusers.*|user.*)$`,
	)
)

// RedactSecurityConfigContent replaces password hashes in content belonging
// to the internal users document. JSON content is re-encoded first so escaped
// hashes are matched. Content of any other document is returned unchanged.
func RedactSecurityConfigContent(
	source string,
	docID string,
) string {
	if source == "" || docID != InternalUsersDocID {
		return source
	}

	return HashPattern.ReplaceAllLiteralString(canonicalJSON(source), HashReplacement)
}

// RedactRestRequestBody returns SensitiveReplacement when body was sent to a
// credentials endpoint and mentions a password, otherwise body unchanged.
func RedactRestRequestBody(
	path string,
	body string,
) string {
	if path == "" || !SensitivePathPattern.MatchString(path) {
		return body
	}

	if strings.Contains(canonicalJSON(body), sensitiveKey) {
		return SensitiveReplacement
	}

	return body
}

// canonicalJSON returns s re-encoded when it is a JSON document, otherwise s.
func canonicalJSON(
	s string,
) string {
	out, err := content.ToJSON(content.Tuple{
		MediaType: content.MediaTypeJSON,
		Raw:       []byte(s),
	})
	if err != nil {
		return s
	}

	return out
}

// FilterHeaders returns a copy of headers without the Authorization header
// (case-insensitive) when excludeSensitive is set, and without every header
// the filter excludes.
func FilterHeaders(
	headers map[string][]string,
	excludeSensitive bool,
	filter Filter,
) map[string][]string {
	out := make(map[string][]string, len(headers))
	for name, values := range headers {
		if excludeSensitive && strings.EqualFold(name, authorizationHeader) {
			continue
		}

		if filter != nil && filter.ShouldExcludeHeader(name) {
			continue
		}

		cp := make([]string, len(values))
		copy(cp, values)
		out[name] = cp
	}

	return out
}

// FilterParams returns a copy of params where every parameter the filter
// excludes keeps its name but has its value replaced by RedactedParamValue.
func FilterParams(
	params map[string]string,
	filter Filter,
) map[string]string {
	out := make(map[string]string, len(params))
	for name, value := range params {
		if filter != nil && filter.ShouldExcludeURLParam(name) {
			out[name] = RedactedParamValue

			continue
		}

		out[name] = value
	}

	return out
}
