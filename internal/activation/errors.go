package activation

import "errors"

// Activation protocol errors.
//
// Design decision: We define sentinel errors for the distinct failure
// shapes rather than returning wrapped ad-hoc errors everywhere. The
// scanner treats them all the same (one failed attempt), but tests and
// logs can tell a transport problem from a malformed payload.
var (
	// ErrBadStatus is returned when the endpoint answers with a
	// non-success HTTP status code.
	ErrBadStatus = errors.New("activation endpoint returned non-success status")

	// ErrMalformedResponse is returned when the response body is not the
	// expected JSON/base64 shape, or responseData is missing.
	ErrMalformedResponse = errors.New("malformed activation response")

	// ErrInvalidEgressPath is returned when an egress path address cannot
	// be parsed into a usable proxy URL.
	ErrInvalidEgressPath = errors.New("invalid egress path")
)
