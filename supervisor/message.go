package supervisor

import "encoding/json"

// frame is the wire shape of one CDP message. It is either a reply (id set,
// with result or error) or an event (method set, with params). Any other
// shape is malformed and is dropped by the dispatch loop with a warning.
//
// Mirrors chromedp's cdproto.Message and daabr-chrome-vision's devtools.Message:
// one flat struct, every field optional, classified after the fact.
type frame struct {
	ID        uint64          `json:"id,omitempty"`
	Method    string          `json:"method,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *wireError      `json:"error,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
}

type wireError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// frameKind classifies a parsed frame per §4.1 rule 1-4.
type frameKind int

const (
	frameMalformed frameKind = iota
	frameReplySuccess
	frameReplyError
	frameEvent
)

// kind classifies a parsed frame. A reply's id may legitimately be 0 (the
// first request ever sent carries id 0), so presence of method — not of id
// — is what disambiguates a reply from an event; id/method are otherwise
// mutually exclusive by construction on the wire.
func (f *frame) kind() frameKind {
	switch {
	case f.Method == "" && f.Error == nil && f.Result != nil:
		return frameReplySuccess
	case f.Method == "" && f.Error != nil:
		return frameReplyError
	case f.Method != "":
		return frameEvent
	default:
		return frameMalformed
	}
}

// outgoingRequest is the envelope written for call/send: §6.
type outgoingRequest struct {
	ID        uint64          `json:"id"`
	Method    string          `json:"method"`
	Params    json.RawMessage `json:"params,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
}

func (r *outgoingRequest) encode() ([]byte, error) {
	return json.Marshal(r)
}
