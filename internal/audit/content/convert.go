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

// Package content converts structured request content into the JSON text
// stored in audit records.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"go.yaml.in/yaml/v3"
)

// Supported media types.
const (
	MediaTypeJSON     = "application/json"
	MediaTypeYAML     = "application/yaml"
	MediaTypeXYAML    = "application/x-yaml"
	MediaTypeTextYAML = "text/yaml"
	MediaTypeCBOR     = "application/cbor"
)

var (
	// ErrUnsupportedMediaType is returned for content that cannot be rendered as JSON.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrInvalidJSON is returned when JSON content does not parse.
	ErrInvalidJSON = errors.New("invalid json content")
)

// Tuple is raw request content together with its media type.
type Tuple struct {
	MediaType string
	Raw       []byte
}

// marshalJSON is the JSON encoder. Override in tests.
var marshalJSON = marshalCanonical

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return dm
}()

// ToJSON renders the tuple as JSON text. Every media type, JSON included, is
// decoded and re-encoded so escape sequences never reach the redaction
// patterns.
func ToJSON(
	t Tuple,
) (string, error) {
	mediaType := t.MediaType
	if parsed, _, err := mime.ParseMediaType(t.MediaType); err == nil {
		mediaType = parsed
	}

	switch strings.ToLower(mediaType) {
	case MediaTypeJSON, "":
		v, err := decodeJSON(t.Raw)
		if err != nil {
			return "", err
		}

		return encode(v)
	case MediaTypeYAML, MediaTypeXYAML, MediaTypeTextYAML:
		var v any
		if err := yaml.Unmarshal(t.Raw, &v); err != nil {
			return "", fmt.Errorf("decoding yaml content: %w", err)
		}

		return encode(v)
	case MediaTypeCBOR:
		var v any
		if err := cborDecMode.Unmarshal(t.Raw, &v); err != nil {
			return "", fmt.Errorf("decoding cbor content: %w", err)
		}

		return encode(v)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, t.MediaType)
	}
}

// MapToJSON renders a structured map as JSON text.
func MapToJSON(
	m map[string]any,
) (string, error) {
	return encode(m)
}

func encode(
	v any,
) (string, error) {
	data, err := marshalJSON(v)
	if err != nil {
		return "", fmt.Errorf("encoding json content: %w", err)
	}

	return string(data), nil
}

// decodeJSON parses a single JSON value. Numbers keep their literal form.
func decodeJSON(
	raw []byte,
) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, ErrInvalidJSON
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrInvalidJSON
	}

	return v, nil
}

// marshalCanonical encodes v without HTML escaping and without the trailing
// newline json.Encoder appends.
func marshalCanonical(
	v any,
) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
