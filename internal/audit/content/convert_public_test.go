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

package content_test

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/osaudit/internal/audit/content"
)

type ConvertPublicTestSuite struct {
	suite.Suite
}

func (s *ConvertPublicTestSuite) TestToJSON() {
	cborDoc, err := cbor.Marshal(map[string]any{"user": "alice", "roles": []string{"admin"}})
	s.Require().NoError(err)

	tests := []struct {
		name         string
		tuple        content.Tuple
		want         string
		validateFunc func(err error)
	}{
		{
			name: "re-encodes json with sorted keys",
			tuple: content.Tuple{
				MediaType: content.MediaTypeJSON,
				Raw:       []byte(`{ "b": 1, "a": 2 }`),
			},
			want: `{"a":2,"b":1}`,
		},
		{
			name: "decodes unicode escapes in keys",
			tuple: content.Tuple{
				MediaType: content.MediaTypeJSON,
				Raw:       []byte(`{"p\u0061ssword":"hunter2"}`),
			},
			want: `{"password":"hunter2"}`,
		},
		{
			name: "decodes unicode escapes in values",
			tuple: content.Tuple{
				MediaType: content.MediaTypeJSON,
				Raw:       []byte(`{"hash":"\u00242y\u002412"}`),
			},
			want: `{"hash":"$2y$12"}`,
		},
		{
			name: "keeps number precision",
			tuple: content.Tuple{
				MediaType: content.MediaTypeJSON,
				Raw:       []byte(`{"n":12345678901234567890,"f":1.50}`),
			},
			want: `{"f":1.50,"n":12345678901234567890}`,
		},
		{
			name: "rejects trailing data",
			tuple: content.Tuple{
				MediaType: content.MediaTypeJSON,
				Raw:       []byte(`{} {}`),
			},
			validateFunc: func(err error) {
				s.ErrorIs(err, content.ErrInvalidJSON)
			},
		},
		{
			name: "accepts media type parameters",
			tuple: content.Tuple{
				MediaType: "application/json; charset=UTF-8",
				Raw:       []byte(`[1,2]`),
			},
			want: `[1,2]`,
		},
		{
			name: "treats missing media type as json",
			tuple: content.Tuple{
				Raw: []byte(`"x"`),
			},
			want: `"x"`,
		},
		{
			name: "converts yaml",
			tuple: content.Tuple{
				MediaType: content.MediaTypeYAML,
				Raw:       []byte("user: alice\nroles:\n  - admin\n"),
			},
			want: `{"roles":["admin"],"user":"alice"}`,
		},
		{
			name: "converts x-yaml",
			tuple: content.Tuple{
				MediaType: content.MediaTypeXYAML,
				Raw:       []byte("enabled: true\n"),
			},
			want: `{"enabled":true}`,
		},
		{
			name: "converts cbor",
			tuple: content.Tuple{
				MediaType: content.MediaTypeCBOR,
				Raw:       cborDoc,
			},
			want: `{"roles":["admin"],"user":"alice"}`,
		},
		{
			name: "when json is invalid returns error",
			tuple: content.Tuple{
				MediaType: content.MediaTypeJSON,
				Raw:       []byte(`{"a":`),
			},
			validateFunc: func(err error) {
				s.ErrorIs(err, content.ErrInvalidJSON)
			},
		},
		{
			name: "when yaml is invalid returns error",
			tuple: content.Tuple{
				MediaType: content.MediaTypeTextYAML,
				Raw:       []byte("a: [1, 2\n"),
			},
			validateFunc: func(err error) {
				s.Contains(err.Error(), "decoding yaml content")
			},
		},
		{
			name: "when cbor is truncated returns error",
			tuple: content.Tuple{
				MediaType: content.MediaTypeCBOR,
				Raw:       cborDoc[:3],
			},
			validateFunc: func(err error) {
				s.Contains(err.Error(), "decoding cbor content")
			},
		},
		{
			name: "when media type is unsupported returns error",
			tuple: content.Tuple{
				MediaType: "application/smile",
				Raw:       []byte{0x3a, 0x29},
			},
			validateFunc: func(err error) {
				s.ErrorIs(err, content.ErrUnsupportedMediaType)
				s.Contains(err.Error(), "application/smile")
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := content.ToJSON(tt.tuple)

			if tt.validateFunc != nil {
				s.Error(err)
				s.Empty(got)
				tt.validateFunc(err)

				return
			}

			s.NoError(err)
			s.Equal(tt.want, got)
		})
	}
}

func (s *ConvertPublicTestSuite) TestMapToJSON() {
	got, err := content.MapToJSON(map[string]any{
		"b": 2,
		"a": map[string]any{"nested": true},
	})

	s.NoError(err)
	s.Equal(`{"a":{"nested":true},"b":2}`, got)
}

func TestConvertPublicTestSuite(t *testing.T) {
	suite.Run(t, new(ConvertPublicTestSuite))
}
