// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the lexer, the parser and the script processor.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt; orchestration lives in internal/driver
// and internal/processor.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier (codes.go) with a stable string form
//     such as LEX1002 or SYN2001.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: the source.Span pointing to the issue.
//   - Notes: optional secondary spans/messages.
//   - Fixes: optional text edits, e.g. inserting a missing `;`.
//
// # Emitting diagnostics
//
// Phases report through a Reporter. ReportError/ReportWarning return a
// ReportBuilder that can add notes and fixes before Emit. BagReporter stores
// diagnostics in a Bag; DedupReporter drops repeats, which happens when a
// template interpolation is lexed a second time by a sub-lexer.
//
// Public error values of the lexer and parser (LexError, SyntaxError) are
// derived from the first error in the Bag.
package diag
