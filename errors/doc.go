// Package errors provides the structured fault type carried through
// pipelines and surfaced to subscribers' error callbacks.
//
// Every fault has a machine-readable ErrorCode, a human message, optional
// details, and an optional cause reachable through errors.Unwrap.
package errors
