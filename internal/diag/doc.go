// Package diag defines the diagnostic model shared by the lexer, the C#
// front-end and the style analyzers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (LEX1001,
//     SYN2001, STY3004, ...). ParseCode maps the string form back.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional Fix records describing how to address the problem.
//
// # Fix suggestions
//
// A Fix carries a title, a kind, an applicability level (AlwaysSafe,
// SafeWithHeuristics, ManualReview) and concrete TextEdits. Producers that
// would rather not compute edits up front attach a FixThunk; the fix engine and
// the driver call MaterializeFixes to expand them deterministically.
//
// TextEdit spans are in source coordinates of the file the diagnostic was
// produced for. OldText is an optional guard checked before applying.
//
// # Emitting diagnostics
//
// Phases report through a Reporter. BagReporter aggregates into a Bag, which
// supports sorting, deduplication and filtering. Rendering lives in
// internal/diagfmt; applying fixes lives in internal/fix.
package diag
