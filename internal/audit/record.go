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
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strings"
	"time"
)

// TimestampLayout renders UTC timestamps with milliseconds and a numeric
// zone offset, e.g. 2026-02-21T10:30:00.000+00:00.
const TimestampLayout = "2006-01-02T15:04:05.000-07:00"

// nowFn is the clock used for record timestamps. Override in tests.
var nowFn = time.Now

// fieldSet holds populated fields and the read accessors shared by Record
// and Snapshot.
type fieldSet struct {
	values map[Field]Value
}

// Get returns the value stored for f.
func (fs fieldSet) Get(
	f Field,
) (Value, bool) {
	v, ok := fs.values[f]

	return v, ok
}

// Len returns the number of populated fields.
func (fs fieldSet) Len() int {
	return len(fs.values)
}

func (fs fieldSet) str(
	f Field,
) string {
	if v, ok := fs.values[f].(StringValue); ok {
		return string(v)
	}

	return ""
}

// InitiatingUser returns the user that initiated the request.
func (fs fieldSet) InitiatingUser() string { return fs.str(FieldRequestInitiatingUser) }

// EffectiveUser returns the user the request was executed as.
func (fs fieldSet) EffectiveUser() string { return fs.str(FieldRequestEffectiveUser) }

// RequestType returns the transport request type.
func (fs fieldSet) RequestType() string { return fs.str(FieldTransportRequestType) }

// Privilege returns the privilege evaluated for the request.
func (fs fieldSet) Privilege() string { return fs.str(FieldPrivilege) }

// ExceptionStackTrace returns the recorded error chain.
func (fs fieldSet) ExceptionStackTrace() string { return fs.str(FieldException) }

// RequestBody returns the (already redacted) request body.
func (fs fieldSet) RequestBody() string { return fs.str(FieldRequestBody) }

// NodeID returns the id of the node that created the record.
func (fs fieldSet) NodeID() string { return fs.str(FieldNodeID) }

// DocID returns the document id the event refers to.
func (fs fieldSet) DocID() string { return fs.str(FieldID) }

// RequestMethod returns the REST request method.
func (fs fieldSet) RequestMethod() Method {
	m, _ := fs.values[FieldRestRequestMethod].(Method)

	return m
}

// Category returns the record category.
func (fs fieldSet) Category() Category {
	c, _ := fs.values[FieldCategory].(Category)

	return c
}

// Origin returns the request origin.
func (fs fieldSet) Origin() Origin {
	o, _ := fs.values[FieldOrigin].(Origin)

	return o
}

// Record accumulates the fields of one audit event. A Record is owned by the
// flow handling the event and is not safe for concurrent use.
type Record struct {
	fieldSet

	logger *slog.Logger
}

// NewRecord creates a record with the mandatory identity fields populated.
// Origin and layer are optional and left unset when empty.
func NewRecord(
	logger *slog.Logger,
	category Category,
	identity Identity,
	origin Origin,
	layer Origin,
) (*Record, error) {
	if !slices.Contains(categories, category) {
		return nil, ErrInvalidCategory
	}

	for _, o := range []Origin{origin, layer} {
		if o != "" && !slices.Contains(origins, o) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, o)
		}
	}

	if identity == nil {
		return nil, ErrMissingIdentity
	}

	if logger == nil {
		logger = slog.Default()
	}

	r := &Record{
		fieldSet: fieldSet{values: make(map[Field]Value, len(fieldOrder))},
		logger:   logger,
	}

	r.set(FieldFormatVersion, IntValue(FormatVersion))
	r.set(FieldCategory, category)
	r.set(FieldUTCTimestamp, StringValue(formatTime(nowFn())))
	r.set(FieldNodeHostAddress, StringValue(identity.HostAddress()))
	r.set(FieldNodeID, StringValue(identity.NodeID()))
	r.set(FieldNodeHostName, StringValue(identity.HostName()))
	r.set(FieldNodeName, StringValue(identity.NodeName()))
	r.set(FieldClusterName, StringValue(identity.ClusterName()))

	if origin != "" {
		r.set(FieldOrigin, origin)
	}

	if layer != "" {
		r.set(FieldRequestLayer, layer)
	}

	return r, nil
}

// Finalize returns an immutable snapshot of the fields populated so far.
// Writes to the record after Finalize do not affect the snapshot.
func (r *Record) Finalize() *Snapshot {
	values := make(map[Field]Value, len(r.values))
	for f, v := range r.values {
		values[f] = v.clone()
	}

	return &Snapshot{fieldSet: fieldSet{values: values}}
}

func (r *Record) set(
	f Field,
	v Value,
) {
	r.values[f] = v
}

func (r *Record) setString(
	f Field,
	s string,
) {
	if s != "" {
		r.set(f, StringValue(s))
	}
}

// AddRemoteAddress records the client address. A host:port address is
// stored as the host only.
func (r *Record) AddRemoteAddress(
	addr string,
) {
	if addr == "" {
		return
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	r.setString(FieldRemoteAddress, addr)
}

// AddIsAdminDN records whether the effective user is an admin certificate.
func (r *Record) AddIsAdminDN(
	isAdminDN bool,
) {
	r.set(FieldIsAdminDN, BoolValue(isAdminDN))
}

// AddException records the error chain of err, outermost first, one
// message per line.
func (r *Record) AddException(
	err error,
) {
	if err == nil {
		return
	}

	var lines []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		lines = append(lines, fmt.Sprintf("%T: %s", e, e.Error()))
	}

	r.setString(FieldException, strings.Join(lines, "\n"))
}

// AddPrivilege records the evaluated privilege.
func (r *Record) AddPrivilege(
	privilege string,
) {
	r.setString(FieldPrivilege, privilege)
}

// AddInitiatingUser records the user that initiated the request.
func (r *Record) AddInitiatingUser(
	user string,
) {
	r.setString(FieldRequestInitiatingUser, user)
}

// AddEffectiveUser records the user the request executed as.
func (r *Record) AddEffectiveUser(
	user string,
) {
	r.setString(FieldRequestEffectiveUser, user)
}

// AddPath records the REST request path.
func (r *Record) AddPath(
	path string,
) {
	r.setString(FieldRestRequestPath, path)
}

// AddComplianceWriteDiffSource records a document diff. A nil diff is
// ignored, an empty diff marks the write as a no-op.
func (r *Record) AddComplianceWriteDiffSource(
	diff *string,
) {
	if diff == nil {
		return
	}

	if *diff == "" {
		r.set(FieldComplianceDiffIsNoop, BoolValue(true))

		return
	}

	r.set(FieldComplianceDiffContent, StringValue(*diff))
	r.set(FieldComplianceDiffIsNoop, BoolValue(false))
}

// AddSecurityConfigWriteDiffSource records a diff of a security
// configuration document after redacting password hashes.
func (r *Record) AddSecurityConfigWriteDiffSource(
	diff *string,
	docID string,
) {
	if diff == nil {
		r.AddComplianceWriteDiffSource(nil)

		return
	}

	redacted := RedactSecurityConfigContent(*diff, docID)
	r.AddComplianceWriteDiffSource(&redacted)
}

// AddRequestType records the transport request type.
func (r *Record) AddRequestType(
	requestType string,
) {
	r.setString(FieldTransportRequestType, requestType)
}

// AddAction records the transport action name.
func (r *Record) AddAction(
	action string,
) {
	r.setString(FieldTransportAction, action)
}

// AddID records the id of the document the event refers to.
func (r *Record) AddID(
	id string,
) {
	r.setString(FieldID, id)
}

// AddIndices records the indices named by the request.
func (r *Record) AddIndices(
	indices []string,
) {
	if len(indices) == 0 {
		return
	}

	r.set(FieldIndices, ListValue(indices).clone())
}

// AddResolvedIndices records the concrete indices the request resolved to.
func (r *Record) AddResolvedIndices(
	resolved []string,
) {
	if len(resolved) == 0 {
		return
	}

	r.set(FieldResolvedIndices, ListValue(resolved).clone())
}

// AddTaskID records a task id qualified by the node that created it.
func (r *Record) AddTaskID(
	id int64,
) {
	r.set(FieldTaskID, StringValue(fmt.Sprintf("%s:%d", r.NodeID(), id)))
}

// AddShardID records the numeric shard id.
func (r *Record) AddShardID(
	id *ShardID,
) {
	if id == nil {
		return
	}

	r.set(FieldShardID, IntValue(id.ID))
}

// AddTaskParentID records the parent task id.
func (r *Record) AddTaskParentID(
	id string,
) {
	r.setString(FieldTaskParentID, id)
}

// AddComplianceOperation records the document operation. Operations other
// than CREATE, UPDATE and DELETE are ignored.
func (r *Record) AddComplianceOperation(
	op Operation,
) {
	if !slices.Contains(operations, op) {
		return
	}

	r.set(FieldComplianceOperation, op)
}

// AddComplianceDocVersion records the document version.
func (r *Record) AddComplianceDocVersion(
	version int64,
) {
	r.set(FieldComplianceDocVersion, IntValue(version))
}

func formatTime(
	t time.Time,
) string {
	return t.UTC().Format(TimestampLayout)
}
