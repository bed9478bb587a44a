package session

import (
	"context"
	"fmt"
	"io"

	"github.com/TheFrozenFire/simple-notary/internal/protocol"
	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// Verifier is the MPC-TLS verifier boundary: it drives the notarization
// subprotocol against the duplex stream and, once the protocol completes,
// hands ownership of the (now notarization-free) stream back to the
// caller along with the authenticated transcript it produced. Treated as
// an external collaborator — the real verifier state machine lives
// outside this module's scope.
type Verifier interface {
	Verify(ctx context.Context, stream io.ReadWriter) (*transcript.PartialTranscript, io.ReadWriter, error)
}

// stubPreface is the one framed message StubVerifier expects before the
// signing-exchange protocol begins: the raw transcript bytes it will treat
// as fully authenticated. A real Verifier implementation replaces this
// entirely with the MPC-TLS commit/accept/run/verify/accept/close dance.
type stubPreface struct {
	Sent     []byte `json:"sent"`
	Received []byte `json:"received"`
}

// StubVerifier treats every byte of the transcript it is handed as
// authenticated, letting the rest of the pipeline — framing, the exchange
// driver, signing, encoding — be exercised end-to-end without a real
// MPC-TLS engine. Wiring a genuine verifier later means implementing
// Verifier against it; nothing downstream of Verify needs to change.
type StubVerifier struct{}

func NewStubVerifier() *StubVerifier {
	return &StubVerifier{}
}

/**
 * @description
 * Verify reads the one framed stubPreface message and treats its entire
 * contents as authenticated, standing in for a real MPC-TLS run.
 *
 * @returns A fully-authenticated PartialTranscript and the same stream,
 * unchanged.
 */
func (v *StubVerifier) Verify(_ context.Context, stream io.ReadWriter) (*transcript.PartialTranscript, io.ReadWriter, error) {
	var preface stubPreface
	if err := protocol.ReadMessage(stream, &preface); err != nil {
		return nil, nil, fmt.Errorf("session: reading stub verifier preface: %w", err)
	}

	sentAuthed := transcript.NewRangeSet(transcript.Range{Start: 0, End: len(preface.Sent)})
	receivedAuthed := transcript.NewRangeSet(transcript.Range{Start: 0, End: len(preface.Received)})
	pt := transcript.NewPartialTranscript(preface.Sent, preface.Received, sentAuthed, receivedAuthed)

	return pt, stream, nil
}
