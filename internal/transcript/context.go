/**
 * @description
 * This file defines the structured HttpContext and its component types
 * (Request, Response, Header, Body) — the JSON view a session builds
 * from an authenticated transcript and ultimately signs over. Custom
 * marshaling on Body and Header pins the exact wire shape prover and
 * notary both agree on.
 */
package transcript

import "encoding/json"

// Body is the tagged union for a request/response body: absent (nil),
// explicitly redacted (neither variant set, marshaled as JSON null), a
// parsed JSON value (Json), or an
// unparsed byte sequence (Unknown). Exactly one of Json/Unknown is set,
// or neither for an absent/redacted body.
type Body struct {
	Json    any
	Unknown []byte

	// hasJSON/hasUnknown distinguish "Json: nil" (a JSON null body) from
	// "no Json variant at all".
	hasJSON    bool
	hasUnknown bool
}

// NewJSONBody wraps a parsed JSON value as a Body.Json variant.
func NewJSONBody(v any) *Body {
	return &Body{Json: v, hasJSON: true}
}

// NewUnknownBody wraps raw bytes as a Body.Unknown variant.
func NewUnknownBody(b []byte) *Body {
	return &Body{Unknown: append([]byte(nil), b...), hasUnknown: true}
}

// IsJSON reports whether this Body carries the Json variant.
func (b *Body) IsJSON() bool { return b != nil && b.hasJSON }

// IsUnknown reports whether this Body carries the Unknown variant.
func (b *Body) IsUnknown() bool { return b != nil && b.hasUnknown }

/**
 * @description
 * MarshalJSON renders the body as `{"Json": ...}`, `{"Unknown": [...]}`,
 * or JSON null, depending on which variant is set.
 *
 * @returns The wire bytes for this Body.
 */
func (b *Body) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}
	if b.hasJSON {
		return json.Marshal(struct {
			Json any `json:"Json"`
		}{b.Json})
	}
	if b.hasUnknown {
		bytesAsInts := make([]int, len(b.Unknown))
		for i, v := range b.Unknown {
			bytesAsInts[i] = int(v)
		}
		return json.Marshal(struct {
			Unknown []int `json:"Unknown"`
		}{bytesAsInts})
	}
	return []byte("null"), nil
}

/**
 * @description
 * UnmarshalJSON parses the three body shapes back into a Body value.
 *
 * @param data The wire bytes, one of null, {"Json":...}, or {"Unknown":[...]}.
 * @returns An error only if data is malformed JSON; an unrecognized shape
 * silently parses to the zero Body.
 */
func (b *Body) UnmarshalJSON(data []byte) error {
	*b = Body{}
	if string(data) == "null" {
		return nil
	}
	var probe struct {
		Json    *json.RawMessage `json:"Json"`
		Unknown *[]int           `json:"Unknown"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		if json.Valid(data) {
			return nil
		}
		return err
	}
	if probe.Json != nil {
		var v any
		if err := json.Unmarshal(*probe.Json, &v); err != nil {
			return err
		}
		b.Json = v
		b.hasJSON = true
		return nil
	}
	if probe.Unknown != nil {
		out := make([]byte, len(*probe.Unknown))
		for i, n := range *probe.Unknown {
			out[i] = byte(n)
		}
		b.Unknown = out
		b.hasUnknown = true
		return nil
	}
	return nil
}

// Header is a wire-level [name, value] pair, marshaled as a two-element
// JSON array.
type Header struct {
	Name  string
	Value string
}

func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{h.Name, h.Value})
}

func (h *Header) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	h.Name, h.Value = pair[0], pair[1]
	return nil
}

// Request is one authenticated (or partially-redacted) HTTP request in an
// HttpContext.
type Request struct {
	Method  string    `json:"method"`
	Target  string    `json:"target"`
	Headers []*Header `json:"headers"`
	Body    *Body     `json:"body,omitempty"`
}

// Response is one authenticated (or partially-redacted) HTTP response in
// an HttpContext.
type Response struct {
	Status  uint16    `json:"status"`
	Headers []*Header `json:"headers"`
	Body    *Body     `json:"body,omitempty"`
}

// HttpContext is the structured JSON view derived deterministically from a
// PartialTranscript: two ordered arrays whose positions correspond to
// on-wire message order. Unauthenticated bytes have already been replaced
// with null by the time a HttpContext exists.
type HttpContext struct {
	Requests  []*Request  `json:"requests"`
	Responses []*Response `json:"responses"`
}
