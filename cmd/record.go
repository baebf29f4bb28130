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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/cli"
	"github.com/retr0h/osaudit/internal/node"
)

// formatTable prints a record as a field/value table instead of a
// serialized form.
const formatTable = "table"

// recordFormat is the output format shared by the record subcommands.
var recordFormat string

// recordCmd represents the record command.
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Build audit records locally",
	Long: `Build a single audit record on this node and print it instead of
sending it to the sink.`,
}

// newLocalRecord creates a record stamped with this node's identity.
func newLocalRecord(
	category audit.Category,
	origin audit.Origin,
) *audit.Record {
	rec, err := audit.NewRecord(
		logger,
		category,
		node.Resolve(appConfig.Node),
		origin,
		origin,
	)
	if err != nil {
		cli.LogFatal(logger, "failed to create record", err)
	}

	return rec
}

// printRecord writes snap to stdout in recordFormat, falling back to the
// configured audit format.
func printRecord(
	title string,
	snap *audit.Snapshot,
) {
	format := recordFormat
	if format == "" {
		format = appConfig.Audit.Format
	}

	if format == formatTable {
		cli.PrintCompactTable([]cli.Section{cli.RecordSection(title, snap)})

		return
	}

	out, err := snap.Render(audit.Format(format))
	if err != nil {
		cli.LogFatal(logger, "failed to render record", err, "format", format)
	}

	fmt.Println(out)
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.PersistentFlags().
		StringVarP(&recordFormat, "format", "o", "", "Output format (json, pretty, text, url, table)")
}
