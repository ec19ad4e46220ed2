// Package model defines the core data structures shared across the scanner.
//
// This package contains:
//   - MACAddress: validated, immutable hardware address value object
//   - ScanResult: the entitlement data returned for an activated address
//   - StreamEntry: a single playlist/credential record within a result
//
// Design decision: Data structures live in their own package so that the
// activation client, the scan engine, and the report writers can all share
// them without import cycles. The model package imports nothing from the
// rest of the application.
package model
