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
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a typed audit field value. The set of implementations is closed.
type Value interface {
	// String returns the natural string form used by text and URL output.
	String() string

	jsonValue() any
	clone() Value
}

// StringValue is a plain string field.
type StringValue string

// BoolValue is a boolean field.
type BoolValue bool

// IntValue is an integer field.
type IntValue int64

// ListValue is an ordered list of strings.
type ListValue []string

// ParamsValue maps a name to a single value (URL params, transport headers).
type ParamsValue map[string]string

// HeadersValue maps a header name to its values.
type HeadersValue map[string][]string

// FileInfosValue is the ordered list of file fingerprints.
type FileInfosValue []FileInfo

func (v StringValue) String() string { return string(v) }
func (v StringValue) jsonValue() any { return string(v) }
func (v StringValue) clone() Value   { return v }

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }
func (v BoolValue) jsonValue() any { return bool(v) }
func (v BoolValue) clone() Value   { return v }

func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }
func (v IntValue) jsonValue() any { return int64(v) }
func (v IntValue) clone() Value   { return v }

func (v ListValue) String() string { return compactJSON(v.jsonValue()) }
func (v ListValue) jsonValue() any { return []string(v) }

func (v ListValue) clone() Value {
	out := make(ListValue, len(v))
	copy(out, v)

	return out
}

func (v ParamsValue) String() string { return compactJSON(v.jsonValue()) }
func (v ParamsValue) jsonValue() any { return map[string]string(v) }

func (v ParamsValue) clone() Value {
	out := make(ParamsValue, len(v))
	for k, val := range v {
		out[k] = val
	}

	return out
}

func (v HeadersValue) String() string { return compactJSON(v.jsonValue()) }
func (v HeadersValue) jsonValue() any { return map[string][]string(v) }

func (v HeadersValue) clone() Value {
	out := make(HeadersValue, len(v))
	for k, vals := range v {
		cp := make([]string, len(vals))
		copy(cp, vals)
		out[k] = cp
	}

	return out
}

func (v FileInfosValue) String() string { return compactJSON(v.jsonValue()) }
func (v FileInfosValue) jsonValue() any { return []FileInfo(v) }

func (v FileInfosValue) clone() Value {
	out := make(FileInfosValue, len(v))
	copy(out, v)

	return out
}

func (c Category) String() string { return string(c) }
func (c Category) jsonValue() any { return string(c) }
func (c Category) clone() Value   { return c }

func (o Origin) String() string { return string(o) }
func (o Origin) jsonValue() any { return string(o) }
func (o Origin) clone() Value   { return o }

func (o Operation) String() string { return string(o) }
func (o Operation) jsonValue() any { return string(o) }
func (o Operation) clone() Value   { return o }

func (m Method) String() string { return string(m) }
func (m Method) jsonValue() any { return string(m) }
func (m Method) clone() Value   { return m }

// compactJSON renders composite values for the flat serializers.
func compactJSON(
	v any,
) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return string(data)
}
