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

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	Audit     Audit     `mapstructure:"audit"`
	Node      Node      `mapstructure:"node"`
	Server    Server    `mapstructure:"server"    mask:"struct"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// Telemetry configuration settings.
type Telemetry struct {
	Tracing TracingConfig `mapstructure:"tracing,omitempty"`
	Metrics MetricsConfig `mapstructure:"metrics,omitempty"`
}

// MetricsConfig configuration settings for Prometheus metrics.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus scrape endpoint.
	// Defaults to "/metrics" when empty.
	Path string `mapstructure:"path"`
}

// TracingConfig configuration settings for distributed tracing.
type TracingConfig struct {
	// Enabled enables or disables tracing.
	Enabled bool `mapstructure:"enabled"`
	// Exporter selects the trace exporter: "stdout" or "otlp".
	Exporter string `mapstructure:"exporter" validate:"omitempty,oneof=stdout otlp"`
	// OTLPEndpoint is the gRPC endpoint for the OTLP exporter (e.g., "localhost:4317").
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// Node configuration settings. Empty values are discovered at startup.
type Node struct {
	// ID uniquely identifies this node. A random UUID is used when empty.
	ID string `mapstructure:"id"`
	// Name is the logical node name. Defaults to the host name.
	Name string `mapstructure:"name"`
	// HostName overrides the discovered host name.
	HostName string `mapstructure:"host_name"`
	// HostAddress overrides the discovered host address.
	HostAddress string `mapstructure:"host_address" validate:"omitempty,ip"`
	// ClusterName names the cluster the node belongs to.
	ClusterName string `mapstructure:"cluster_name"`
}

// Audit configuration settings.
type Audit struct {
	// Format is the output format: "json", "pretty", "text" or "url".
	Format string `mapstructure:"format" validate:"omitempty,audit_format"`
	// ExcludeSensitiveHeaders drops the Authorization header from records.
	ExcludeSensitiveHeaders bool `mapstructure:"exclude_sensitive_headers"`
	// LogRequestBody captures REST request bodies.
	LogRequestBody bool `mapstructure:"log_request_body"`
	// IgnoreHeaders are wildcard patterns of header names left out of records.
	IgnoreHeaders []string `mapstructure:"ignore_headers" validate:"dive,wildcard"`
	// IgnoreURLParams are wildcard patterns of parameters whose values are redacted.
	IgnoreURLParams []string `mapstructure:"ignore_url_params" validate:"dive,wildcard"`
	// IgnorePaths are wildcard patterns of request paths that are never audited.
	IgnorePaths []string `mapstructure:"ignore_paths" validate:"dive,wildcard"`
	// FileInfos maps a key to a file whose fingerprint is recorded.
	FileInfos map[string]string `mapstructure:"file_infos"`
	// Sink selects where finished records are written.
	Sink Sink `mapstructure:"sink"`
}

// Sink configuration settings.
type Sink struct {
	// Type is the sink kind: "stdout" or "file".
	Type string `mapstructure:"type" validate:"required,oneof=stdout file"`
	// Path is the JSON lines file written by the file sink.
	Path string `mapstructure:"path" validate:"required_if=Type file"`
}

// Server configuration settings.
type Server struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
	// Security contains security-related configuration for the server, such as CORS.
	Security ServerSecurity `mapstructure:"security" mask:"struct"`
}

// ServerSecurity represents security-related settings for the server.
type ServerSecurity struct {
	// CORS Cross-Origin Resource Sharing (CORS) settings for the server.
	CORS CORS `mapstructure:"cors"`
	// ProxySecret, when set, must be presented in the X-Proxy-Secret header
	// for the X-Remote-User header to be trusted.
	ProxySecret string `mapstructure:"proxy_secret" mask:"password"`
	// TrustedProxies lists the CIDR ranges whose X-Forwarded-For header is
	// believed. When empty the client address is the connection peer.
	TrustedProxies []string `mapstructure:"trusted_proxies,omitempty" validate:"omitempty,dive,cidr"`
}

// CORS represents the CORS (Cross-Origin Resource Sharing) settings.
type CORS struct {
	// List of origins allowed to access the server (e.g., "foo").
	AllowOrigins []string `mapstructure:"allow_origins,omitempty"`
}
