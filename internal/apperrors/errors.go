/**
 * @description
 * Package apperrors defines the error taxonomy surfaced at the HTTP front
 * door: every error a session produces carries a Kind that maps to a
 * single HTTP status, so the transport layer never has to inspect error
 * strings to decide how to respond.
 *
 * @notes
 * - A third Policy case (signer/encoder incompatibility) is rejected at
 *   startup, before any session exists, so it never flows through
 *   HTTPStatus.
 */
package apperrors

import (
	"fmt"
	"net/http"
)

// Kind classifies why a session failed.
type Kind int

const (
	// KindProtocol covers malformed prover requests: bad framing, an
	// unrecognized message type, a payload that does not parse.
	KindProtocol Kind = iota
	// KindPolicy covers requests the server understands but refuses, such
	// as a SignFiltered payload that is not a subset of the authenticated
	// context.
	KindPolicy
	// KindCrypto covers signer/encoder failures: key derivation failure,
	// encoding failure, signing failure.
	KindCrypto
	// KindTransport covers connection failure and notarization failure
	// against the duplex stream.
	KindTransport
)

// ServerError is a Kind-tagged error. Wrap a cause with Wrap to preserve it
// via errors.Unwrap while fixing the HTTP status it maps to.
type ServerError struct {
	Kind Kind
	Msg  string
	Err  error
}

/**
 * @description
 * New constructs a causeless ServerError of the given Kind.
 *
 * @param kind The taxonomy bucket this error belongs to.
 * @param msg Human-readable description of the failure.
 * @returns A *ServerError with no wrapped cause.
 */
func New(kind Kind, msg string) *ServerError {
	return &ServerError{Kind: kind, Msg: msg}
}

// Wrap constructs a ServerError that preserves err via errors.Unwrap.
func Wrap(kind Kind, msg string, err error) *ServerError {
	return &ServerError{Kind: kind, Msg: msg, Err: err}
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error's Kind to the status code the front door
// responds with: Protocol/Policy → 400, Crypto/Transport → 500. The
// third Policy case in the taxonomy — signer/encoder incompatibility —
// never reaches here; it is rejected at startup before a session exists.
func (e *ServerError) HTTPStatus() int {
	switch e.Kind {
	case KindProtocol, KindPolicy:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
