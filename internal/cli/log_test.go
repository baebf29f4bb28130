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

package cli

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LogTestSuite struct {
	suite.Suite
}

func (s *LogTestSuite) TearDownTest() {
	osExit = os.Exit
}

func (s *LogTestSuite) TestLogFatal() {
	tests := []struct {
		name       string
		message    string
		err        error
		kvPairs    []any
		wantInLog  []string
		notInLog   []string
		wantStatus int
	}{
		{
			name:       "when error is provided logs error",
			message:    "failed to open sink",
			err:        errors.New("permission denied"),
			wantInLog:  []string{"level=ERROR", `msg="failed to open sink"`, `error="permission denied"`},
			wantStatus: 1,
		},
		{
			name:       "when error is nil logs without error key",
			message:    "fatal event",
			wantInLog:  []string{"fatal event"},
			notInLog:   []string{"error="},
			wantStatus: 1,
		},
		{
			name:       "when extra pairs are provided logs them",
			message:    "invalid config",
			err:        errors.New("bad port"),
			kvPairs:    []any{"path", "/etc/osaudit/osaudit.yaml"},
			wantInLog:  []string{"bad port", "path=/etc/osaudit/osaudit.yaml"},
			wantStatus: 1,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			status := -1
			osExit = func(code int) { status = code }

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			LogFatal(logger, tc.message, tc.err, tc.kvPairs...)

			s.Equal(tc.wantStatus, status)
			for _, want := range tc.wantInLog {
				s.Contains(buf.String(), want)
			}
			for _, unwanted := range tc.notInLog {
				s.NotContains(buf.String(), unwanted)
			}
		})
	}
}

func TestLogTestSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}
