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

// Package node resolves the identity of the node that emits audit records.
package node

import (
	"net"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/config"
)

// Fallback identity values.
const (
	DefaultClusterName = "osaudit"
	UnknownHostName    = "unknown"
	LoopbackAddress    = "127.0.0.1"
)

// hostInfoFn is the function used to get host info (injectable for testing).
var hostInfoFn = host.Info

// interfaceAddrsFn lists the interface addresses (injectable for testing).
var interfaceAddrsFn = net.InterfaceAddrs

// newID generates a node id when none is configured.
var newID = uuid.NewString

// Identity is the resolved node identity stamped on every record.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Host    string `json:"host_name"`
	Address string `json:"host_address"`
	Cluster string `json:"cluster_name"`
}

var _ audit.Identity = (*Identity)(nil)

// NodeID returns the node id.
func (i *Identity) NodeID() string { return i.ID }

// HostAddress returns the node address.
func (i *Identity) HostAddress() string { return i.Address }

// HostName returns the node host name.
func (i *Identity) HostName() string { return i.Host }

// NodeName returns the logical node name.
func (i *Identity) NodeName() string { return i.Name }

// ClusterName returns the cluster name.
func (i *Identity) ClusterName() string { return i.Cluster }

// Resolve builds the node identity. Configured values win, the rest are
// discovered from the host.
func Resolve(
	cfg config.Node,
) *Identity {
	id := &Identity{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Host:    cfg.HostName,
		Address: cfg.HostAddress,
		Cluster: cfg.ClusterName,
	}

	if id.ID == "" {
		id.ID = newID()
	}

	if id.Host == "" {
		id.Host = hostname()
	}

	if id.Address == "" {
		id.Address = hostAddress()
	}

	if id.Name == "" {
		id.Name = id.Host
	}

	if id.Cluster == "" {
		id.Cluster = DefaultClusterName
	}

	return id
}

func hostname() string {
	info, err := hostInfoFn()
	if err != nil || info == nil || info.Hostname == "" {
		return UnknownHostName
	}

	return info.Hostname
}

// hostAddress returns the first non-loopback interface address, preferring
// IPv4.
func hostAddress() string {
	addrs, err := interfaceAddrsFn()
	if err != nil {
		return LoopbackAddress
	}

	var v6 string
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() || ipNet.IP.IsLinkLocalUnicast() {
			continue
		}

		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String()
		}

		if v6 == "" {
			v6 = ipNet.IP.String()
		}
	}

	if v6 != "" {
		return v6
	}

	return LoopbackAddress
}
