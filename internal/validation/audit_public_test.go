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

package validation_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/osaudit/internal/validation"
)

type AuditPublicTestSuite struct {
	suite.Suite
}

type auditInput struct {
	Format   string   `validate:"omitempty,audit_format"`
	Category string   `validate:"omitempty,audit_category"`
	Patterns []string `validate:"dive,wildcard"`
}

func (s *AuditPublicTestSuite) TestAuditValidators() {
	tests := []struct {
		name     string
		input    auditInput
		wantOK   bool
		contains []string
	}{
		{
			name: "when all values are valid",
			input: auditInput{
				Format:   "pretty",
				Category: "failed_login",
				Patterns: []string{"X-*", "/^trace-[0-9]+$/"},
			},
			wantOK: true,
		},
		{
			name:   "when values are empty",
			input:  auditInput{},
			wantOK: true,
		},
		{
			name:     "when format is unknown",
			input:    auditInput{Format: "xml"},
			wantOK:   false,
			contains: []string{"Format", "audit_format", `format "xml" is not one of json, pretty, text, url`},
		},
		{
			name:     "when category is unknown",
			input:    auditInput{Category: "LOGIN"},
			wantOK:   false,
			contains: []string{"Category", `unknown audit category "LOGIN"`},
		},
		{
			name:     "when pattern does not compile",
			input:    auditInput{Patterns: []string{"ok", "/[/"}},
			wantOK:   false,
			contains: []string{"Patterns[1]", `pattern "/[/" does not compile`},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			errMsg, ok := validation.Struct(tt.input)
			s.Equal(tt.wantOK, ok)

			for _, c := range tt.contains {
				s.Contains(errMsg, c)
			}
		})
	}
}

func TestAuditPublicTestSuite(t *testing.T) {
	suite.Run(t, new(AuditPublicTestSuite))
}
