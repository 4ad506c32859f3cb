package jrpc2codec

import (
	"encoding/json"

	"github.com/pquerna/ffjson/ffjson"
)

// Params holds the raw, still unparsed params member of a request.
//
// Servers can use it to accept arbitrary parameters from clients, check the
// method name, and only then call Parse to decode the payload into the type
// the method expects, without reading the request a second time. The zero
// value stands for an absent params member and parses as an empty array.
type Params struct {
	raw json.RawMessage
}

// NewParams encodes v into a Params value.
func NewParams(v interface{}) (Params, error) {
	raw, err := ffjson.Marshal(v)
	if err != nil {
		return Params{}, err
	}
	return Params{raw: raw}, nil
}

// RawParams wraps already encoded JSON as a Params value. The bytes are not
// validated and are retained by the returned value.
func RawParams(raw json.RawMessage) Params {
	return Params{raw: raw}
}

// Parse decodes the raw params into v. Structural and type mismatches show
// up here, at the call site, never during envelope decoding.
func (p Params) Parse(v interface{}) error {
	raw := p.raw
	if raw == nil {
		raw = emptyArray
	}
	return ffjson.Unmarshal(raw, v)
}

// RawMessage returns the underlying bytes, nil when params were absent.
func (p Params) RawMessage() json.RawMessage { return p.raw }

// IsZero reports whether params were absent.
func (p Params) IsZero() bool { return p.raw == nil }

// Owned returns params that no longer alias the buffer they were parsed
// from.
func (p Params) Owned() Params {
	if p.raw == nil {
		return p
	}
	return Params{raw: append(json.RawMessage(nil), p.raw...)}
}

// MarshalJSON writes the raw bytes through, with the empty array standing
// in for the zero value.
func (p Params) MarshalJSON() ([]byte, error) {
	if p.raw == nil {
		return emptyArray, nil
	}
	return p.raw, nil
}

// UnmarshalJSON keeps a copy of the raw bytes for later parsing.
func (p *Params) UnmarshalJSON(data []byte) error {
	p.raw = append(p.raw[:0], data...)
	return nil
}
