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

package node_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/osaudit/internal/config"
	"github.com/retr0h/osaudit/internal/node"
)

type IdentityPublicTestSuite struct {
	suite.Suite
}

func (s *IdentityPublicTestSuite) TestResolveConfigured() {
	id := node.Resolve(config.Node{
		ID:          "node-id",
		Name:        "data-1",
		HostName:    "data-1.example.com",
		HostAddress: "10.1.2.3",
		ClusterName: "prod",
	})

	s.Equal("node-id", id.NodeID())
	s.Equal("data-1", id.NodeName())
	s.Equal("data-1.example.com", id.HostName())
	s.Equal("10.1.2.3", id.HostAddress())
	s.Equal("prod", id.ClusterName())
}

func (s *IdentityPublicTestSuite) TestResolveDiscovers() {
	id := node.Resolve(config.Node{})

	s.NotEmpty(id.NodeID())
	s.NotEmpty(id.HostName())
	s.NotEmpty(id.HostAddress())
	s.Equal(id.HostName(), id.NodeName())
	s.Equal(node.DefaultClusterName, id.ClusterName())
}

func TestIdentityPublicTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityPublicTestSuite))
}
