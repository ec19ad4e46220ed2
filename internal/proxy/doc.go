// Package proxy maintains the pool of egress paths available to the
// scanner.
//
// A pool is loaded once from a line-oriented source and then shared by
// every concurrent scan task. Selection is uniformly random and
// non-exclusive: many tasks may route through the same path at the same
// time, and a path that fails is never marked or removed. Health tracking
// was deliberately left out; the retry loop in the scanner already
// re-selects a fresh path on every attempt, which in practice routes
// around dead proxies without any bookkeeping here.
package proxy
