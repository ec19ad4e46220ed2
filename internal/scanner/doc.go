// Package scanner orchestrates mass activation scans.
//
// The engine dispatches one task per hardware address into a bounded
// worker pool (errgroup with a concurrency limit), applies the fixed
// retry-with-rotating-proxy policy to each task, and feeds every hit to
// the durable result log and the live progress sink. Tasks are fully
// independent: no ordering between completions, no cross-task
// cancellation, and a failure in one task never stops its siblings.
package scanner
