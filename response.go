package jrpc2codec

import (
	"encoding/json"

	"github.com/pquerna/ffjson/ffjson"
)

// Response is a JSON-RPC 2.0 response.
//
// Exactly one of Result and Err is set. Unlike on requests the ID is
// mandatory, even when its value is null.
type Response struct {
	// Result holds the raw result member on success, nil on failure. A
	// successful response whose result is the null literal holds the raw
	// bytes "null" here, which keeps it apart from a failure.
	Result json.RawMessage
	// Err holds the error member on failure, nil on success.
	Err *Error
	// ID is the identifier of the request this response replies to.
	ID ID
}

// IsError reports whether the response carries a failure outcome.
func (r *Response) IsError() bool { return r.Err != nil }

// UnmarshalResult decodes the raw result member into v.
func (r *Response) UnmarshalResult(v interface{}) error {
	raw := r.Result
	if raw == nil {
		raw = null
	}
	return ffjson.Unmarshal(raw, v)
}

// Owned returns a deep copy of the response that no longer aliases the
// buffer it was parsed from.
func (r *Response) Owned() *Response {
	out := &Response{
		Err: r.Err.Owned(),
		ID:  r.ID.Owned(),
	}
	if r.Result != nil {
		out.Result = append(json.RawMessage(nil), r.Result...)
	}
	return out
}

// outgoingResponse is the wire shape of an encoded response. Exactly one
// of Result and Error survives the omitempty pair.
type outgoingResponse struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      ID              `json:"id"`
}

// incomingResponse is the wire shape of a decoded response. The rawField
// and idField wrappers record key presence, which omitempty style structs
// cannot: "result":null must count as a present result.
type incomingResponse struct {
	Version *string  `json:"jsonrpc"`
	Result  rawField `json:"result"`
	Error   rawField `json:"error"`
	ID      idField  `json:"id"`
}

// rawField is a json.RawMessage that knows whether its key was present.
type rawField struct {
	raw json.RawMessage
	set bool
}

func (f *rawField) UnmarshalJSON(data []byte) error {
	f.set = true
	f.raw = append(f.raw[:0], data...)
	return nil
}

// MarshalJSON encodes the response envelope, refusing to produce a wire
// document that violates the result/error exclusivity rule.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Result != nil && r.Err != nil {
		return nil, ErrBothResultAndError
	}
	if r.Result == nil && r.Err == nil {
		return nil, ErrMissingResultAndError
	}
	return json.Marshal(&outgoingResponse{
		Version: Version,
		Result:  r.Result,
		Error:   r.Err,
		ID:      r.ID,
	})
}

// UnmarshalJSON decodes the response envelope, checking the protocol
// version, the mandatory id and the result/error exclusivity rule.
func (r *Response) UnmarshalJSON(data []byte) error {
	var in incomingResponse
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Version == nil {
		return &MissingFieldError{Field: "jsonrpc"}
	}
	if *in.Version != Version {
		return &VersionError{Version: *in.Version}
	}
	if !in.ID.set {
		return &MissingFieldError{Field: "id"}
	}
	switch {
	case in.Result.set && in.Error.set:
		return ErrBothResultAndError
	case !in.Result.set && !in.Error.set:
		return ErrMissingResultAndError
	case in.Result.set:
		r.Result = in.Result.raw
		r.Err = nil
	default:
		e := new(Error)
		if err := e.UnmarshalJSON(in.Error.raw); err != nil {
			return err
		}
		r.Result = nil
		r.Err = e
	}
	r.ID = in.ID.id
	return nil
}
