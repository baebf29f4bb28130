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

// Package audit builds audit event records, redacts sensitive content while
// the record is populated, and renders finished records for audit sinks.
package audit

import (
	"errors"
	"strings"
)

// FormatVersion is the value of the audit_format_version field. Downstream
// consumers branch on it, so it changes whenever the field vocabulary does.
const FormatVersion = 4

// Field is a key in the closed audit field vocabulary.
type Field string

// The audit field vocabulary. These strings are a wire contract.
const (
	FieldFormatVersion         Field = "audit_format_version"
	FieldCategory              Field = "audit_category"
	FieldRequestEffectiveUser  Field = "audit_request_effective_user"
	FieldRequestInitiatingUser Field = "audit_request_initiating_user"
	FieldUTCTimestamp          Field = "@timestamp"
	FieldClusterName           Field = "audit_cluster_name"
	FieldNodeID                Field = "audit_node_id"
	FieldNodeHostAddress       Field = "audit_node_host_address"
	FieldNodeHostName          Field = "audit_node_host_name"
	FieldNodeName              Field = "audit_node_name"
	FieldOrigin                Field = "audit_request_origin"
	FieldRemoteAddress         Field = "audit_request_remote_address"
	FieldRestRequestPath       Field = "audit_rest_request_path"
	FieldRestRequestParams     Field = "audit_rest_request_params"
	FieldRestRequestHeaders    Field = "audit_rest_request_headers"
	FieldRestRequestMethod     Field = "audit_rest_request_method"
	FieldTransportRequestType  Field = "audit_transport_request_type"
	FieldTransportAction       Field = "audit_transport_action"
	FieldTransportHeaders      Field = "audit_transport_headers"
	FieldID                    Field = "audit_trace_doc_id"
	FieldIndices               Field = "audit_trace_indices"
	FieldShardID               Field = "audit_trace_shard_id"
	FieldResolvedIndices       Field = "audit_trace_resolved_indices"
	FieldException             Field = "audit_request_exception_stacktrace"
	FieldIsAdminDN             Field = "audit_request_effective_user_is_admin"
	FieldPrivilege             Field = "audit_request_privilege"
	FieldTaskID                Field = "audit_trace_task_id"
	FieldTaskParentID          Field = "audit_trace_task_parent_id"
	FieldRequestBody           Field = "audit_request_body"
	FieldComplianceDiffIsNoop  Field = "audit_compliance_diff_is_noop"
	FieldComplianceDiffContent Field = "audit_compliance_diff_content"
	FieldComplianceFileInfos   Field = "audit_compliance_file_infos"
	FieldRequestLayer          Field = "audit_request_layer"
	FieldComplianceOperation   Field = "audit_compliance_operation"
	FieldComplianceDocVersion  Field = "audit_compliance_doc_version"
)

// fieldOrder is the canonical serialization order.
var fieldOrder = []Field{
	FieldFormatVersion,
	FieldCategory,
	FieldUTCTimestamp,
	FieldClusterName,
	FieldNodeID,
	FieldNodeHostAddress,
	FieldNodeHostName,
	FieldNodeName,
	FieldOrigin,
	FieldRequestLayer,
	FieldRemoteAddress,
	FieldRequestEffectiveUser,
	FieldRequestInitiatingUser,
	FieldIsAdminDN,
	FieldPrivilege,
	FieldRestRequestPath,
	FieldRestRequestParams,
	FieldRestRequestHeaders,
	FieldRestRequestMethod,
	FieldTransportRequestType,
	FieldTransportAction,
	FieldTransportHeaders,
	FieldID,
	FieldIndices,
	FieldResolvedIndices,
	FieldShardID,
	FieldTaskID,
	FieldTaskParentID,
	FieldException,
	FieldRequestBody,
	FieldComplianceOperation,
	FieldComplianceDocVersion,
	FieldComplianceDiffIsNoop,
	FieldComplianceDiffContent,
	FieldComplianceFileInfos,
}

// Fields returns the audit field vocabulary in canonical order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)

	return out
}

// Category classifies an audit event.
type Category string

// Audit categories.
const (
	CategoryBadHeaders                    Category = "BAD_HEADERS"
	CategoryFailedLogin                   Category = "FAILED_LOGIN"
	CategoryMissingPrivileges             Category = "MISSING_PRIVILEGES"
	CategoryGrantedPrivileges             Category = "GRANTED_PRIVILEGES"
	CategorySecurityIndexAttempt          Category = "OPENDISTRO_SECURITY_INDEX_ATTEMPT"
	CategorySSLException                  Category = "SSL_EXCEPTION"
	CategoryAuthenticated                 Category = "AUTHENTICATED"
	CategoryIndexEvent                    Category = "INDEX_EVENT"
	CategoryComplianceDocRead             Category = "COMPLIANCE_DOC_READ"
	CategoryComplianceDocWrite            Category = "COMPLIANCE_DOC_WRITE"
	CategoryComplianceExternalConfig      Category = "COMPLIANCE_EXTERNAL_CONFIG"
	CategoryComplianceInternalConfigRead  Category = "COMPLIANCE_INTERNAL_CONFIG_READ"
	CategoryComplianceInternalConfigWrite Category = "COMPLIANCE_INTERNAL_CONFIG_WRITE"
)

var categories = []Category{
	CategoryBadHeaders,
	CategoryFailedLogin,
	CategoryMissingPrivileges,
	CategoryGrantedPrivileges,
	CategorySecurityIndexAttempt,
	CategorySSLException,
	CategoryAuthenticated,
	CategoryIndexEvent,
	CategoryComplianceDocRead,
	CategoryComplianceDocWrite,
	CategoryComplianceExternalConfig,
	CategoryComplianceInternalConfigRead,
	CategoryComplianceInternalConfigWrite,
}

// Origin is the layer an audited request entered through.
type Origin string

// Request origins.
const (
	OriginREST      Origin = "REST"
	OriginTransport Origin = "TRANSPORT"
	OriginLocal     Origin = "LOCAL"
)

var origins = []Origin{
	OriginREST,
	OriginTransport,
	OriginLocal,
}

// Operation is the kind of document change a compliance event describes.
type Operation string

// Compliance operations.
const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

var operations = []Operation{
	OperationCreate,
	OperationUpdate,
	OperationDelete,
}

// Method is a REST request method.
type Method string

// REST request methods.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodPatch   Method = "PATCH"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

var methods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
	MethodConnect,
}

// ShardID identifies a shard of an index.
type ShardID struct {
	Index string
	ID    int
}

// FileInfo is the fingerprint of one file recorded in a compliance event.
type FileInfo struct {
	Key          string `json:"key"`
	Path         string `json:"path"`
	SHA256       string `json:"sha256"`
	LastModified string `json:"last_modified"`
}

// Identity supplies the node and cluster the audit record originates from.
type Identity interface {
	NodeID() string
	HostAddress() string
	HostName() string
	NodeName() string
	ClusterName() string
}

var (
	// ErrInvalidCategory is returned for a category outside the audit vocabulary.
	ErrInvalidCategory = errors.New("invalid audit category")

	// ErrInvalidOrigin is returned for an origin other than REST, TRANSPORT or LOCAL.
	ErrInvalidOrigin = errors.New("invalid request origin")

	// ErrInvalidOperation is returned for an operation other than CREATE, UPDATE or DELETE.
	ErrInvalidOperation = errors.New("invalid compliance operation")

	// ErrMissingIdentity is returned when a record is created without a node identity.
	ErrMissingIdentity = errors.New("missing node identity")

	// ErrSerialization wraps every failure to render a record as JSON.
	ErrSerialization = errors.New("audit record serialization failed")
)

// ParseCategory returns the Category named by s, ignoring case.
func ParseCategory(
	s string,
) (Category, error) {
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}

	return "", ErrInvalidCategory
}

// ParseOrigin returns the Origin named by s, ignoring case.
func ParseOrigin(
	s string,
) (Origin, error) {
	for _, o := range origins {
		if strings.EqualFold(string(o), s) {
			return o, nil
		}
	}

	return "", ErrInvalidOrigin
}

// ParseOperation returns the Operation named by s, ignoring case.
func ParseOperation(
	s string,
) (Operation, error) {
	for _, op := range operations {
		if strings.EqualFold(string(op), s) {
			return op, nil
		}
	}

	return "", ErrInvalidOperation
}

// ParseMethod returns the Method named by s, ignoring case. The second
// return value is false for methods outside the REST vocabulary.
func ParseMethod(
	s string,
) (Method, bool) {
	for _, m := range methods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}

	return "", false
}
