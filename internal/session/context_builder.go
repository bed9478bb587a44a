/**
 * @description
 * This file implements the context builder: splitting a transcript's raw
 * sent/received byte streams back into structured HTTP requests and
 * responses, preserving which ones the verifier actually authenticated.
 */
package session

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// ContextBuilder derives the structured HttpContext a session signs over
// from a PartialTranscript. Treated as an external collaborator — the
// real HTTP-transcript parser lives outside this module's scope.
type ContextBuilder interface {
	Build(pt *transcript.PartialTranscript) (*transcript.HttpContext, error)
}

// NaiveContextBuilder does a best-effort HTTP/1.1 split of a transcript's
// sent/received byte sequences into requests and responses, nulling any
// message whose full byte range the verifier did not authenticate. It
// uses net/http's wire parser directly — no third-party HTTP-message
// parser appears anywhere in this codebase's dependency surface, so the
// standard library is the idiomatic choice here.
type NaiveContextBuilder struct{}

func NewNaiveContextBuilder() *NaiveContextBuilder {
	return &NaiveContextBuilder{}
}

/**
 * @description
 * Build re-derives the HttpContext from pt by re-parsing its sent bytes as
 * HTTP requests and its received bytes as HTTP responses.
 *
 * @param pt The authenticated transcript to split.
 * @returns The reconstructed HttpContext, or an error if either byte
 * stream doesn't parse as HTTP/1.1 messages.
 */
func (b *NaiveContextBuilder) Build(pt *transcript.PartialTranscript) (*transcript.HttpContext, error) {
	requests, err := parseRequests(pt)
	if err != nil {
		return nil, fmt.Errorf("session: parsing sent transcript as http requests: %w", err)
	}
	responses, err := parseResponses(pt)
	if err != nil {
		return nil, fmt.Errorf("session: parsing received transcript as http responses: %w", err)
	}
	return &transcript.HttpContext{Requests: requests, Responses: responses}, nil
}

// messageReader tracks the logical byte offset a bufio.Reader has
// delivered to its caller so far, computed as the physical bytes the
// underlying bytes.Reader has handed out minus whatever bufio is still
// holding unconsumed in its internal buffer.
type messageReader struct {
	src *bytes.Reader
	buf *bufio.Reader
}

func newMessageReader(data []byte) *messageReader {
	src := bytes.NewReader(data)
	return &messageReader{src: src, buf: bufio.NewReader(src)}
}

func (m *messageReader) offset() int {
	return int(m.src.Size()) - m.src.Len() - m.buf.Buffered()
}

func parseRequests(pt *transcript.PartialTranscript) ([]*transcript.Request, error) {
	mr := newMessageReader(pt.Sent)
	var out []*transcript.Request
	for {
		start := mr.offset()
		req, err := http.ReadRequest(mr.buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		end := mr.offset()

		if !pt.SentAuthenticated(start, end) {
			out = append(out, nil)
			continue
		}
		out = append(out, &transcript.Request{
			Method:  req.Method,
			Target:  req.URL.RequestURI(),
			Headers: headersFrom(req.Header),
			Body:    bodyFrom(body),
		})
	}
	return out, nil
}

func parseResponses(pt *transcript.PartialTranscript) ([]*transcript.Response, error) {
	mr := newMessageReader(pt.Received)
	var out []*transcript.Response
	for {
		// http.ReadResponse reports a clean end of input as
		// io.ErrUnexpectedEOF, so detect it before parsing.
		if _, err := mr.buf.Peek(1); err == io.EOF {
			break
		}
		start := mr.offset()
		resp, err := http.ReadResponse(mr.buf, &http.Request{Method: http.MethodGet})
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		resp.Body.Close()
		end := mr.offset()

		if !pt.ReceivedAuthenticated(start, end) {
			out = append(out, nil)
			continue
		}
		out = append(out, &transcript.Response{
			Status:  uint16(resp.StatusCode),
			Headers: headersFrom(resp.Header),
			Body:    bodyFrom(body),
		})
	}
	return out, nil
}

// headersFrom flattens h into name/value pairs, ordered by canonical
// header name so the same transcript always yields the same headers.
func headersFrom(h http.Header) []*transcript.Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []*transcript.Header
	for _, name := range names {
		for _, v := range h[name] {
			out = append(out, &transcript.Header{Name: name, Value: v})
		}
	}
	return out
}

func bodyFrom(body []byte) *transcript.Body {
	if len(body) == 0 {
		return nil
	}
	return transcript.NewUnknownBody(body)
}
