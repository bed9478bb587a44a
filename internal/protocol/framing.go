/**
 * @description
 * Package protocol implements the length-prefixed framing codec and the
 * tagged-variant message schema used between notary and prover over the
 * already-established duplex stream.
 *
 * @notes
 * - Legacy (unsigned) sessions bypass this codec entirely and write raw
 *   JSON with no frame; see internal/session's runLegacy.
 */
package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxPayloadSize is the largest payload a single frame may carry. Larger
// declared lengths fail the session.
const MaxPayloadSize = 10 * 1024 * 1024 // 10 MiB

/**
 * @description
 * WriteMessage serializes msg to JSON and writes it as a single
 * length-prefixed frame: a big-endian uint32 byte length followed by that
 * many bytes of payload. The writer is flushed (via an explicit Flush, if
 * w implements one) after the frame is written.
 *
 * @param w The destination stream.
 * @param msg The value to marshal and frame.
 * @returns An error if marshaling, the size bound, or either write fails.
 */
func WriteMessage(w io.Writer, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("protocol: marshaling message: %w", err)
	}
	if len(payload) > MaxPayloadSize {
		return fmt.Errorf("protocol: payload of %d bytes exceeds max %d", len(payload), MaxPayloadSize)
	}

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("protocol: writing length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("protocol: writing payload: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("protocol: flushing writer: %w", err)
		}
	}
	return nil
}

type flusher interface {
	Flush() error
}

/**
 * @description
 * ReadMessage reads one length-prefixed frame and unmarshals its JSON
 * payload into out. A declared length above MaxPayloadSize terminates the
 * session with an error before any payload bytes are read.
 *
 * @param r The source stream.
 * @param out Destination for json.Unmarshal; typically a pointer.
 * @returns An error if the length prefix, payload read, or unmarshal fails.
 */
func ReadMessage(r io.Reader, out any) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return fmt.Errorf("protocol: reading length prefix: %w", err)
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length > MaxPayloadSize {
		return fmt.Errorf("protocol: declared length %d exceeds max %d", length, MaxPayloadSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("protocol: reading payload: %w", err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("protocol: unmarshaling payload: %w", err)
	}
	return nil
}
