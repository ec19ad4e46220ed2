// Package log provides a credential-masking slog handler.
//
// Activation payloads carry playlist usernames and passwords, and egress
// paths may embed proxy credentials. The hits file is where those belong;
// the process log is not. The masking handler wraps any slog.Handler and
// redacts credential-bearing attributes before they reach it, so debug
// logging can stay on without leaking secrets into terminals or log
// aggregation.
package log
