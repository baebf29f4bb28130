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
	"github.com/spf13/cobra"

	"github.com/retr0h/osaudit/internal/audit"
)

// recordFingerprintCmd represents the recordFingerprint command.
var recordFingerprintCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Fingerprint external configuration files",
	Long: `Build a COMPLIANCE_EXTERNAL_CONFIG record holding the SHA-256 digest and
modification time of every file listed under audit.file_infos and given
with --file. Unreadable files are skipped.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		extra, _ := cmd.Flags().GetStringToString("file")

		paths := make(map[string]string, len(appConfig.Audit.FileInfos)+len(extra))
		for k, v := range appConfig.Audit.FileInfos {
			paths[k] = v
		}
		for k, v := range extra {
			paths[k] = v
		}

		rec := newLocalRecord(audit.CategoryComplianceExternalConfig, audit.OriginLocal)
		rec.AddFileInfos(appFs, paths)

		printRecord("External Configuration", rec.Finalize())
	},
}

func init() {
	recordCmd.AddCommand(recordFingerprintCmd)

	recordFingerprintCmd.PersistentFlags().
		StringToString("file", map[string]string{}, "Additional key=path file to fingerprint (repeatable)")
}
