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
	"github.com/retr0h/osaudit/internal/audit"
)

// RecordSection lays out a finished record as a FIELD/VALUE table in
// canonical field order.
func RecordSection(
	title string,
	snap *audit.Snapshot,
) Section {
	section := Section{
		Title:   title,
		Headers: []string{"field", "value"},
	}

	for _, f := range audit.Fields() {
		v, ok := snap.Get(f)
		if !ok {
			continue
		}

		section.Rows = append(section.Rows, []string{string(f), v.String()})
	}

	return section
}

// PrintIdentity prints the node identity stamped on every record.
func PrintIdentity(
	identity audit.Identity,
) {
	PrintKV("Node ID", identity.NodeID(), "Node Name", identity.NodeName())
	PrintKV("Host Name", identity.HostName(), "Host Address", identity.HostAddress())
	PrintKV("Cluster", identity.ClusterName())
}
