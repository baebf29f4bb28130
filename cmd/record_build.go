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
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/retr0h/osaudit/internal/audit"
	"github.com/retr0h/osaudit/internal/audit/content"
	"github.com/retr0h/osaudit/internal/cli"
)

// recordBuildCmd represents the recordBuild command.
var recordBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a record from flags",
	Long: `Build an audit record from the given flags. Request headers, parameters
and body pass through the configured redaction filter, and diffs of
security configuration documents have password hashes removed.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		flags := cmd.Flags()

		categoryName, _ := flags.GetString("category")
		category, err := audit.ParseCategory(categoryName)
		if err != nil {
			cli.LogFatal(logger, "invalid category", err, "category", categoryName)
		}

		originName, _ := flags.GetString("origin")
		origin, err := parseOptionalOrigin(originName)
		if err != nil {
			cli.LogFatal(logger, "invalid origin", err, "origin", originName)
		}

		operationName, _ := flags.GetString("operation")
		operation, err := parseOptionalOperation(operationName)
		if err != nil {
			cli.LogFatal(logger, "invalid operation", err, "operation", operationName)
		}

		rec := newLocalRecord(category, origin)

		filter, err := audit.NewFilter(audit.FilterConfig{
			ExcludeSensitiveHeaders: appConfig.Audit.ExcludeSensitiveHeaders,
			LogRequestBody:          appConfig.Audit.LogRequestBody,
			IgnoreHeaders:           appConfig.Audit.IgnoreHeaders,
			IgnoreURLParams:         appConfig.Audit.IgnoreURLParams,
		})
		if err != nil {
			cli.LogFatal(logger, "failed to build audit filter", err)
		}

		docID, _ := flags.GetString("doc-id")
		req := newFlagRequest(cmd)
		if req.path != "" {
			rec.AddRestRequestInfo(req, filter)
		}

		if body, _ := flags.GetString("body"); body != "" && req.path == "" {
			t := &content.Tuple{MediaType: req.contentType, Raw: []byte(body)}
			if security, _ := flags.GetBool("security-config"); security {
				rec.AddSecurityConfigTupleToRequestBody(t, docID)
			} else {
				rec.AddTupleToRequestBody(t)
			}
		}

		if flags.Changed("diff") {
			diff, _ := flags.GetString("diff")
			if security, _ := flags.GetBool("security-config"); security {
				rec.AddSecurityConfigWriteDiffSource(&diff, docID)
			} else {
				rec.AddComplianceWriteDiffSource(&diff)
			}
		}

		user, _ := flags.GetString("user")
		initiatingUser, _ := flags.GetString("initiating-user")
		remoteAddress, _ := flags.GetString("remote-address")
		privilege, _ := flags.GetString("privilege")
		action, _ := flags.GetString("action")
		indices, _ := flags.GetStringSlice("index")

		rec.AddEffectiveUser(user)
		rec.AddInitiatingUser(initiatingUser)
		rec.AddRemoteAddress(remoteAddress)
		rec.AddPrivilege(privilege)
		rec.AddAction(action)
		rec.AddID(docID)
		rec.AddIndices(indices)
		rec.AddComplianceOperation(operation)

		if flags.Changed("doc-version") {
			version, _ := flags.GetInt64("doc-version")
			rec.AddComplianceDocVersion(version)
		}

		printRecord("Audit Record", rec.Finalize())
	},
}

// parseOptionalOrigin parses name, treating an empty name as no origin.
func parseOptionalOrigin(
	name string,
) (audit.Origin, error) {
	if name == "" {
		return "", nil
	}

	return audit.ParseOrigin(name)
}

// parseOptionalOperation parses name, treating an empty name as no operation.
func parseOptionalOperation(
	name string,
) (audit.Operation, error) {
	if name == "" {
		return "", nil
	}

	return audit.ParseOperation(name)
}

// flagRequest is a REST request described on the command line.
type flagRequest struct {
	path        string
	method      string
	contentType string
	body        string
	headers     map[string][]string
	params      map[string]string
}

func newFlagRequest(
	cmd *cobra.Command,
) *flagRequest {
	flags := cmd.Flags()

	r := &flagRequest{}
	r.path, _ = flags.GetString("path")
	r.method, _ = flags.GetString("method")
	r.contentType, _ = flags.GetString("content-type")
	r.body, _ = flags.GetString("body")
	r.params, _ = flags.GetStringToString("param")

	headers, _ := flags.GetStringToString("header")
	r.headers = make(map[string][]string, len(headers)+1)
	for k, v := range headers {
		r.headers[http.CanonicalHeaderKey(k)] = []string{v}
	}
	if r.body != "" {
		r.headers["Content-Type"] = []string{r.contentType}
	}

	return r
}

func (r *flagRequest) Path() string                 { return r.path }
func (r *flagRequest) Headers() map[string][]string { return r.headers }
func (r *flagRequest) Params() map[string]string    { return r.params }
func (r *flagRequest) HasContent() bool             { return r.body != "" }

func (r *flagRequest) Method() audit.Method {
	m, _ := audit.ParseMethod(r.method)

	return m
}

func (r *flagRequest) Content() (content.Tuple, error) {
	return content.Tuple{MediaType: r.contentType, Raw: []byte(r.body)}, nil
}

// addRecordBuildFlags registers the record build flags on flags.
func addRecordBuildFlags(
	flags *pflag.FlagSet,
) {
	flags.String("category", string(audit.CategoryAuthenticated), "Audit category")
	flags.String("origin", string(audit.OriginREST), "Request origin (REST, TRANSPORT, LOCAL)")
	flags.String("user", "", "Effective user")
	flags.String("initiating-user", "", "Initiating user of a run-as request")
	flags.String("remote-address", "", "Client address")
	flags.String("privilege", "", "Evaluated privilege")
	flags.String("action", "", "Transport action name")
	flags.String("path", "", "REST request path")
	flags.String("method", http.MethodGet, "REST request method")
	flags.StringToString("header", map[string]string{}, "REST request header name=value (repeatable)")
	flags.StringToString("param", map[string]string{}, "REST request parameter name=value (repeatable)")
	flags.String("body", "", "Request body")
	flags.String("content-type", content.MediaTypeJSON, "Media type of --body")
	flags.String("doc-id", "", "Document id")
	flags.Bool("security-config", false, "Treat --body and --diff as a security configuration document")
	flags.String("diff", "", "Document diff; an empty value marks a no-op write")
	flags.String("operation", "", "Compliance operation (CREATE, UPDATE, DELETE)")
	flags.Int64("doc-version", 0, "Document version")
	flags.StringSlice("index", []string{}, "Index named by the request (repeatable)")
}

func init() {
	recordCmd.AddCommand(recordBuildCmd)
	addRecordBuildFlags(recordBuildCmd.PersistentFlags())
}
