// Package telemetry provides the OpenTelemetry spans emitted by a Process:
// one flow.execute span per run and one flow.task child span per task.
// Exporter and provider setup belongs to the host application; pass its
// TracerProvider to NewTracer.
package telemetry
