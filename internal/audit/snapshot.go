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
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// marshalJSON is the JSON encoder used by the serializers. Override in tests.
var marshalJSON = json.Marshal

// Snapshot is the immutable view of a finalized Record. It is safe for
// concurrent use.
type Snapshot struct {
	fieldSet
}

// AsMap returns a copy of the populated fields keyed by field name, with
// JSON-ready values.
func (s *Snapshot) AsMap() map[string]any {
	out := make(map[string]any, len(s.values))
	for f, v := range s.values {
		out[string(f)] = v.clone().jsonValue()
	}

	return out
}

// MarshalJSON renders the snapshot as a JSON object in canonical field order.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	for _, f := range fieldOrder {
		v, ok := s.values[f]
		if !ok {
			continue
		}

		key, err := marshalJSON(string(f))
		if err != nil {
			return nil, err
		}

		val, err := marshalJSON(v.jsonValue())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f, err)
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// JSON renders the snapshot as compact JSON.
func (s *Snapshot) JSON() (string, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return string(data), nil
}

// PrettyJSON renders the snapshot as indented JSON.
func (s *Snapshot) PrettyJSON() (string, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	return buf.String(), nil
}

// Text renders one "key: value" line per field whose string form is not
// empty. Lines are newline separated without a trailing newline.
func (s *Snapshot) Text() string {
	lines := make([]string, 0, len(s.values))
	for _, f := range fieldOrder {
		v, ok := s.values[f]
		if !ok {
			continue
		}

		str := v.String()
		if str == "" {
			continue
		}

		lines = append(lines, string(f)+": "+str)
	}

	return strings.Join(lines, "\n")
}

// URLParameters renders every populated field as a query parameter,
// including fields whose string form is empty.
func (s *Snapshot) URLParameters() string {
	var b strings.Builder
	for _, f := range fieldOrder {
		v, ok := s.values[f]
		if !ok {
			continue
		}

		if b.Len() == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}

		b.WriteString(url.QueryEscape(string(f)))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v.String()))
	}

	return b.String()
}

// Format names a serializer.
type Format string

// Output formats.
const (
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
	FormatText   Format = "text"
	FormatURL    Format = "url"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatJSON, FormatPretty, FormatText, FormatURL}

// SingleLine reports whether records rendered in f never contain a newline.
func (f Format) SingleLine() bool {
	return f != FormatPretty && f != FormatText
}

// Render serializes the snapshot in the given format.
func (s *Snapshot) Render(
	format Format,
) (string, error) {
	switch format {
	case FormatJSON, "":
		return s.JSON()
	case FormatPretty:
		return s.PrettyJSON()
	case FormatText:
		return s.Text(), nil
	case FormatURL:
		return s.URLParameters(), nil
	default:
		return "", fmt.Errorf("unsupported format: %q", format)
	}
}
