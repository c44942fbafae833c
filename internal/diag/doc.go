// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, the parser, and the build driver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt; orchestration lives in
// the driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form,
//     partitioned by phase: LEX 1000, SYN 2000, SEM 3000, IO 4000, TOOL 5000.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. “value
// declared here”) rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. The
// lexer and the parser call Reporter.Report(...) directly. A producer that
// needs notes can construct a ReportBuilder via NewReportBuilder (or the
// helper functions ReportError/ReportWarning) and chain WithNote before
// calling Emit. diag.BagReporter aggregates diagnostics into
// a Bag, which supports sorting, deduplication, and a hard cap.
//
// Keep the data model deterministic: identical input must produce an
// identical diagnostic stream, so the CLI and tests can rely on stable output.
package diag
