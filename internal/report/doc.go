// Package report turns scan results into their output forms.
//
// This package contains:
//   - Presenter functions: pure projections of a result (URL cleaning,
//     entitlement endpoint derivation, demo-entry filtering)
//   - ResultLog: the append-only two-file sink results are persisted to
//   - SummaryWriter: an optional Markdown summary of a whole session
//
// Design decision: Formatting is separated from the data structures in
// the model package so new output forms can be added without touching
// the scan engine. The presenter functions are pure and shared by every
// writer, which keeps the demo-entry and credential rules in one place.
package report
