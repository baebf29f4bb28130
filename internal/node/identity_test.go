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

package node

import (
	"errors"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/stretchr/testify/suite"

	"github.com/retr0h/osaudit/internal/config"
)

type IdentityTestSuite struct {
	suite.Suite
}

func (s *IdentityTestSuite) SetupTest() {
	newID = func() string { return "generated-id" }
}

func (s *IdentityTestSuite) TearDownTest() {
	hostInfoFn = host.Info
	interfaceAddrsFn = net.InterfaceAddrs
	newID = uuid.NewString
}

func cidr(
	s string,
) net.Addr {
	ip, ipNet, _ := net.ParseCIDR(s)
	ipNet.IP = ip

	return ipNet
}

func (s *IdentityTestSuite) TestResolve() {
	tests := []struct {
		name       string
		cfg        config.Node
		hostInfoFn func() (*host.InfoStat, error)
		addrsFn    func() ([]net.Addr, error)
		want       Identity
	}{
		{
			name: "when nothing is configured discovers host",
			hostInfoFn: func() (*host.InfoStat, error) {
				return &host.InfoStat{Hostname: "web-1"}, nil
			},
			addrsFn: func() ([]net.Addr, error) {
				return []net.Addr{
					cidr("127.0.0.1/8"),
					cidr("fe80::1/64"),
					cidr("2001:db8::5/64"),
					cidr("192.168.1.20/24"),
				}, nil
			},
			want: Identity{
				ID:      "generated-id",
				Name:    "web-1",
				Host:    "web-1",
				Address: "192.168.1.20",
				Cluster: DefaultClusterName,
			},
		},
		{
			name: "when only ipv6 is available uses it",
			cfg:  config.Node{Name: "edge", ClusterName: "prod"},
			hostInfoFn: func() (*host.InfoStat, error) {
				return &host.InfoStat{Hostname: "web-1"}, nil
			},
			addrsFn: func() ([]net.Addr, error) {
				return []net.Addr{cidr("::1/128"), cidr("2001:db8::5/64")}, nil
			},
			want: Identity{
				ID:      "generated-id",
				Name:    "edge",
				Host:    "web-1",
				Address: "2001:db8::5",
				Cluster: "prod",
			},
		},
		{
			name: "when discovery fails falls back",
			hostInfoFn: func() (*host.InfoStat, error) {
				return nil, errors.New("no host info")
			},
			addrsFn: func() ([]net.Addr, error) {
				return nil, errors.New("no interfaces")
			},
			want: Identity{
				ID:      "generated-id",
				Name:    UnknownHostName,
				Host:    UnknownHostName,
				Address: LoopbackAddress,
				Cluster: DefaultClusterName,
			},
		},
		{
			name: "when only loopback exists uses loopback",
			cfg:  config.Node{ID: "fixed"},
			hostInfoFn: func() (*host.InfoStat, error) {
				return &host.InfoStat{}, nil
			},
			addrsFn: func() ([]net.Addr, error) {
				return []net.Addr{cidr("127.0.0.1/8")}, nil
			},
			want: Identity{
				ID:      "fixed",
				Name:    UnknownHostName,
				Host:    UnknownHostName,
				Address: LoopbackAddress,
				Cluster: DefaultClusterName,
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			hostInfoFn = tt.hostInfoFn
			interfaceAddrsFn = tt.addrsFn

			s.Equal(&tt.want, Resolve(tt.cfg))
		})
	}
}

func TestIdentityTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityTestSuite))
}
