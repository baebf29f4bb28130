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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retr0h/osaudit/internal/cli"
	"github.com/retr0h/osaudit/internal/node"
)

// nodeShowCmd represents the nodeShow command.
var nodeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the node identity stamped on records",
	Long: `Show the node identity stamped on every audit record. Values missing
from the configuration are discovered from the host.
`,
	Run: func(_ *cobra.Command, _ []string) {
		identity := node.Resolve(appConfig.Node)

		if jsonOutput {
			out, err := json.Marshal(identity)
			if err != nil {
				cli.LogFatal(logger, "failed to marshal node identity", err)
			}
			fmt.Println(string(out))

			return
		}

		fmt.Println()
		cli.PrintIdentity(identity)
	},
}

func init() {
	nodeCmd.AddCommand(nodeShowCmd)
}
