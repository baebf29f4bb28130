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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type fixedIdentity struct{}

func (fixedIdentity) NodeID() string      { return "n1" }
func (fixedIdentity) HostAddress() string { return "10.0.0.1" }
func (fixedIdentity) HostName() string    { return "node-1.example.com" }
func (fixedIdentity) NodeName() string    { return "node-1" }
func (fixedIdentity) ClusterName() string { return "audit-cluster" }

type SnapshotTestSuite struct {
	suite.Suite
}

func (s *SnapshotTestSuite) SetupTest() {
	nowFn = func() time.Time {
		return time.Date(2026, 2, 21, 11, 30, 0, 0, time.FixedZone("CET", 3600))
	}
}

func (s *SnapshotTestSuite) TearDownTest() {
	nowFn = time.Now
	marshalJSON = json.Marshal
}

func (s *SnapshotTestSuite) newSnapshot() *Snapshot {
	r, err := NewRecord(nil, CategoryAuthenticated, fixedIdentity{}, OriginREST, "")
	s.Require().NoError(err)

	return r.Finalize()
}

func (s *SnapshotTestSuite) TestTimestamp() {
	snap := s.newSnapshot()

	v, ok := snap.Get(FieldUTCTimestamp)
	s.True(ok)
	s.Equal(StringValue("2026-02-21T10:30:00.000+00:00"), v)
}

func (s *SnapshotTestSuite) TestSerializationErrors() {
	tests := []struct {
		name      string
		serialize func(*Snapshot) (string, error)
	}{
		{
			name:      "json",
			serialize: (*Snapshot).JSON,
		},
		{
			name:      "pretty json",
			serialize: (*Snapshot).PrettyJSON,
		},
		{
			name: "render",
			serialize: func(snap *Snapshot) (string, error) {
				return snap.Render(FormatJSON)
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			marshalJSON = func(any) ([]byte, error) {
				return nil, errors.New("marshal failure")
			}
			defer func() { marshalJSON = json.Marshal }()

			out, err := tt.serialize(s.newSnapshot())
			s.Empty(out)
			s.ErrorIs(err, ErrSerialization)
			s.Contains(err.Error(), "marshal failure")
		})
	}
}

func (s *SnapshotTestSuite) TestFlatSerializersIgnoreEncoder() {
	marshalJSON = func(any) ([]byte, error) {
		return nil, errors.New("marshal failure")
	}

	snap := s.newSnapshot()

	s.Contains(snap.Text(), "audit_category: AUTHENTICATED")
	s.Contains(snap.URLParameters(), "audit_request_origin=REST")
}

func TestSnapshotTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}
