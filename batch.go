package jrpc2codec

import (
	"bytes"
	"encoding/json"
)

// MaybeBatched represents either one, or multiple JSON-RPC requests.
//
// The variant is picked purely by the top-level shape of the document: a
// JSON array decodes element-wise as a batch, a JSON object as a single
// request. It is mostly useful for decoding, typically with Params left
// opaque so a router can inspect each method first.
type MaybeBatched struct {
	// Batched reports whether the document was a JSON array.
	Batched bool
	// Requests holds the decoded requests. A single request document
	// yields exactly one element.
	Requests []Request
}

// Single wraps one request in the single variant.
func Single(req Request) *MaybeBatched {
	return &MaybeBatched{Requests: []Request{req}}
}

// Batch wraps a sequence of requests in the batch variant.
func Batch(reqs ...Request) *MaybeBatched {
	return &MaybeBatched{Batched: true, Requests: reqs}
}

// MarshalJSON mirrors whichever variant is held: a batch serializes as a
// bare array of requests, a single request as the bare request object.
func (m MaybeBatched) MarshalJSON() ([]byte, error) {
	if m.Batched {
		if m.Requests == nil {
			return emptyArray, nil
		}
		return json.Marshal(m.Requests)
	}
	if len(m.Requests) != 1 {
		return nil, &ShapeError{Field: "request", Want: "exactly one request when not batched"}
	}
	return json.Marshal(m.Requests[0])
}

// UnmarshalJSON inspects the root JSON token before committing to a decode
// path. Anything other than an array or an object is rejected.
func (m *MaybeBatched) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return &ShapeError{Field: "request", Want: "a JSON object or array"}
	}
	switch trimmed[0] {
	case '[':
		m.Batched = true
		m.Requests = nil
		return json.Unmarshal(data, &m.Requests)
	case '{':
		m.Batched = false
		m.Requests = make([]Request, 1)
		return json.Unmarshal(data, &m.Requests[0])
	default:
		return &ShapeError{Field: "request", Want: "a JSON object or array"}
	}
}
