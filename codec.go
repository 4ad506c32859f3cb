// Package jrpc2codec implements the wire-level data model of the JSON-RPC
// 2.0 specification: requests, responses, errors, identifiers and batches.
//
// The package is a pure codec. Transports (HTTP handlers, socket readers)
// and method routing sit above it: they hand raw bytes in and get typed
// values back, or the other way around. Two decode paths are provided: the
// Decode functions copy everything out of the input buffer, while the Parse
// functions in this package borrow from it and are for values that do not
// outlive the buffer.
package jrpc2codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pquerna/ffjson/ffjson"
)

var (
	null       = json.RawMessage([]byte("null"))
	emptyArray = json.RawMessage([]byte("[]"))
)

// Version is the JSON RPC version that is allowed to use
const Version = "2.0"

// VersionError is returned when the jsonrpc member of a request or
// response is not exactly "2.0".
type VersionError struct {
	// Version is the offending value found on the wire.
	Version string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("jsonrpc must be %q, got %q", Version, e.Version)
}

// MissingFieldError is returned when a required member is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ShapeError is returned when a member holds the wrong kind of JSON value.
type ShapeError struct {
	Field string
	Want  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("field %q must be %s", e.Field, e.Want)
}

var (
	// ErrBothResultAndError reports a response carrying both outcomes.
	ErrBothResultAndError = errors.New("response cannot contain both `result` and `error` fields")
	// ErrMissingResultAndError reports a response carrying neither outcome.
	ErrMissingResultAndError = errors.New("response must contain either `result` or `error` field")
)

// EncodeRequest writes a request with the given method, params and ID to a
// byte buffer. A nil id makes the request a notification. params may be a
// Params value, raw JSON, or any value that can be marshaled.
func EncodeRequest(method string, params interface{}, id *ID) ([]byte, error) {
	var p Params
	switch v := params.(type) {
	case nil:
	case Params:
		p = v
	case json.RawMessage:
		p = RawParams(v)
	default:
		var err error
		if p, err = NewParams(v); err != nil {
			return nil, err
		}
	}
	return ffjson.Marshal(&Request{Method: method, Params: p, ID: id})
}

// EncodeResponse writes a response to a byte buffer.
func EncodeResponse(resp *Response) ([]byte, error) {
	return ffjson.Marshal(resp)
}

// EncodeResult writes a successful response with the given result and ID
// to a byte buffer.
func EncodeResult(result interface{}, id ID) ([]byte, error) {
	raw, err := ffjson.Marshal(result)
	if err != nil {
		return nil, err
	}
	return ffjson.Marshal(&Response{Result: raw, ID: id})
}

// EncodeError writes a failed response with the given error code, message
// and ID to a byte buffer. data may be nil, in which case the data member
// is omitted.
func EncodeError(code ErrorCode, message string, id ID, data interface{}) ([]byte, error) {
	e := &Error{Code: code, Message: message}
	if data != nil {
		raw, err := ffjson.Marshal(data)
		if err != nil {
			return nil, err
		}
		e.Data = raw
	}
	return ffjson.Marshal(&Response{Err: e, ID: id})
}

// DecodeRequest reads a request from a slice of bytes. The result owns all
// of its memory.
func DecodeRequest(data []byte) (*Request, error) {
	req := new(Request)
	if err := ffjson.Unmarshal(data, req); err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeRequests reads either a single request or a batch of requests from
// a slice of bytes, depending on the top-level JSON shape.
func DecodeRequests(data []byte) (*MaybeBatched, error) {
	reqs := new(MaybeBatched)
	if err := ffjson.Unmarshal(data, reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// DecodeResponse reads a response from a slice of bytes. The result owns
// all of its memory.
func DecodeResponse(data []byte) (*Response, error) {
	resp := new(Response)
	if err := ffjson.Unmarshal(data, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DecodeResponseIgnoreData reads a response from a slice of bytes and drops
// any error data payload, so callers that never look at it cannot hit a
// deferred parse failure later.
func DecodeResponseIgnoreData(data []byte) (*Response, error) {
	resp, err := DecodeResponse(data)
	if err != nil {
		return nil, err
	}
	if resp.Err != nil {
		resp.Err.Data = nil
	}
	return resp, nil
}
