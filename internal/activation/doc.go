// Package activation implements the client side of the portal's
// activation protocol.
//
// The protocol is a fixed external contract, not something this tool
// designs: one JSON POST per attempt, carrying a base64-encoded inner
// request that names the hardware address, answered by a JSON body whose
// responseData field is a base64-encoded entitlement payload. Any
// deviation from that shape (bad status, missing field, undecodable
// base64 or JSON) is a single attempt failure; retry policy lives in the
// scanner package, not here.
package activation
