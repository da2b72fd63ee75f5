// Package logging wraps zap with context-aware methods. Every entry logged
// with a context carries the OpenTelemetry trace and span ids and the run id
// attached with WithRunID.
package logging
