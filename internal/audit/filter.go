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
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Filter is the per-event redaction policy consumed by the accumulators.
type Filter interface {
	// ShouldExcludeSensitiveHeaders reports whether Authorization headers are dropped.
	ShouldExcludeSensitiveHeaders() bool
	// ShouldExcludeHeader reports whether the named header is dropped.
	ShouldExcludeHeader(name string) bool
	// ShouldExcludeURLParam reports whether the named parameter value is redacted.
	ShouldExcludeURLParam(name string) bool
	// ShouldLogRequestBody reports whether request bodies are captured.
	ShouldLogRequestBody() bool
}

// FilterConfig describes a Filter. Header and parameter lists hold glob
// patterns ('*' matches any run of characters, '?' one character). A pattern
// wrapped in slashes is a regular expression.
type FilterConfig struct {
	ExcludeSensitiveHeaders bool
	LogRequestBody          bool
	IgnoreHeaders           []string
	IgnoreURLParams         []string
}

// ensure PatternFilter implements Filter at compile time.
var _ Filter = (*PatternFilter)(nil)

// PatternFilter is a Filter driven by wildcard pattern lists.
type PatternFilter struct {
	excludeSensitiveHeaders bool
	logRequestBody          bool
	headers                 *Matcher
	params                  *Matcher
}

// NewFilter compiles cfg into a PatternFilter. Header patterns match
// case-insensitively, parameter patterns case-sensitively.
func NewFilter(
	cfg FilterConfig,
) (*PatternFilter, error) {
	headers, err := NewMatcher(cfg.IgnoreHeaders, true)
	if err != nil {
		return nil, fmt.Errorf("compiling ignored headers: %w", err)
	}

	params, err := NewMatcher(cfg.IgnoreURLParams, false)
	if err != nil {
		return nil, fmt.Errorf("compiling ignored url params: %w", err)
	}

	return &PatternFilter{
		excludeSensitiveHeaders: cfg.ExcludeSensitiveHeaders,
		logRequestBody:          cfg.LogRequestBody,
		headers:                 headers,
		params:                  params,
	}, nil
}

// ShouldExcludeSensitiveHeaders implements Filter.
func (f *PatternFilter) ShouldExcludeSensitiveHeaders() bool {
	return f.excludeSensitiveHeaders
}

// ShouldExcludeHeader implements Filter.
func (f *PatternFilter) ShouldExcludeHeader(
	name string,
) bool {
	return f.headers.Match(name)
}

// ShouldExcludeURLParam implements Filter.
func (f *PatternFilter) ShouldExcludeURLParam(
	name string,
) bool {
	return f.params.Match(name)
}

// ShouldLogRequestBody implements Filter.
func (f *PatternFilter) ShouldLogRequestBody() bool {
	return f.logRequestBody
}

// Matcher tests names against a list of wildcard or regex patterns.
type Matcher struct {
	ignoreCase bool
	globs      []glob.Glob
	regexps    []*regexp.Regexp
}

// NewMatcher compiles patterns. A pattern wrapped in slashes is a regular
// expression, anything else a glob. Empty patterns are ignored.
func NewMatcher(
	patterns []string,
	ignoreCase bool,
) (*Matcher, error) {
	m := &Matcher{ignoreCase: ignoreCase}
	for _, p := range patterns {
		if p == "" {
			continue
		}

		if expr, ok := regexpPattern(p); ok {
			if ignoreCase {
				expr = "(?i)" + expr
			}

			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
			}

			m.regexps = append(m.regexps, re)

			continue
		}

		expr := p
		if ignoreCase {
			expr = strings.ToLower(expr)
		}

		g, err := glob.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}

		m.globs = append(m.globs, g)
	}

	return m, nil
}

// Match reports whether name matches any pattern.
func (m *Matcher) Match(
	name string,
) bool {
	if m == nil {
		return false
	}

	for _, re := range m.regexps {
		if re.MatchString(name) {
			return true
		}
	}

	if m.ignoreCase {
		name = strings.ToLower(name)
	}

	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}

	return false
}

// regexpPattern returns the anchored expression of a /regex/ pattern.
func regexpPattern(
	pattern string,
) (string, bool) {
	if len(pattern) > 1 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
		return "^(?:" + pattern[1:len(pattern)-1] + ")$", true
	}

	return "", false
}
