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

package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/retr0h/osaudit/internal/audit"
)

// registerAuditValidators adds the audit_format, audit_category and
// wildcard tags.
func registerAuditValidators(
	v *validator.Validate,
) {
	// Cannot error: tags are non-empty and functions are non-nil.
	_ = v.RegisterValidation("audit_format", validFormat)
	_ = v.RegisterValidation("audit_category", validCategory)
	_ = v.RegisterValidation("wildcard", validWildcard)
}

// validFormat checks the value names a supported record format.
func validFormat(fl validator.FieldLevel) bool {
	format := audit.Format(fl.Field().String())
	for _, f := range audit.Formats {
		if f == format {
			return true
		}
	}

	return false
}

// validCategory checks the value names an audit category.
func validCategory(fl validator.FieldLevel) bool {
	_, err := audit.ParseCategory(fl.Field().String())

	return err == nil
}

// validWildcard checks that a header, param or path pattern compiles.
func validWildcard(fl validator.FieldLevel) bool {
	_, err := audit.NewMatcher([]string{fl.Field().String()}, false)

	return err == nil
}

func formatNames() string {
	names := make([]string, 0, len(audit.Formats))
	for _, f := range audit.Formats {
		names = append(names, string(f))
	}

	return strings.Join(names, ", ")
}
