// Copyright 2009 The Go Authors. All rights reserved.
// Copyright 2012 The Gorilla Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jrpc2codec

import (
	"encoding/json"

	"github.com/pquerna/ffjson/ffjson"
)

// ErrorCode type for error codes
type ErrorCode int64

const (
	// JErrorParse Parse error - Invalid JSON was received by the server.
	// An error occurred on the server while parsing the JSON text.
	JErrorParse ErrorCode = -32700
	// JErrorInvalidReq Invalid Request - The JSON sent is not a valid Request object.
	JErrorInvalidReq ErrorCode = -32600
	// JErrorNoMethod Method not found - The method does not exist / is not available.
	JErrorNoMethod ErrorCode = -32601
	// JErrorInvalidParams Invalid params - Invalid method parameter(s).
	JErrorInvalidParams ErrorCode = -32602
	// JErrorInternal Internal error - Internal JSON-RPC error.
	JErrorInternal ErrorCode = -32603
	// JErrorServer Server error - Reserved for implementation-defined server-errors.
	JErrorServer ErrorCode = -32000
)

// Error basic error struct for API answer
type Error struct {
	// A Number that indicates the error type that occurred.
	Code ErrorCode `json:"code"` /* required */

	// A String providing a short description of the error.
	// The message SHOULD be limited to a concise single sentence.
	Message string `json:"message"` /* required */

	// A Primitive or Structured value that contains additional information
	// about the error. Kept raw so callers decide if and how to decode it.
	Data json.RawMessage `json:"data,omitempty"` /* optional */
}

// NewError returns an Error with the given code and message and no data.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error returns error message in string format
func (e *Error) Error() string {
	return e.Message
}

// ParseData decodes the raw data payload into v. Missing data decodes as
// JSON null, so pointer and interface targets are left nil.
func (e *Error) ParseData(v interface{}) error {
	raw := e.Data
	if raw == nil {
		raw = null
	}
	return ffjson.Unmarshal(raw, v)
}

// Owned returns a copy of the error whose message and data no longer alias
// the buffer it was parsed from.
func (e *Error) Owned() *Error {
	if e == nil {
		return nil
	}
	out := &Error{
		Code:    e.Code,
		Message: cloneString(e.Message),
	}
	if e.Data != nil {
		out.Data = append(json.RawMessage(nil), e.Data...)
	}
	return out
}

// incomingError mirrors Error with pointer fields so that the required
// members can be told apart from absent ones.
type incomingError struct {
	Code    *int64          `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes an error object, requiring code and message.
func (e *Error) UnmarshalJSON(data []byte) error {
	var in incomingError
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Code == nil {
		return &MissingFieldError{Field: "error.code"}
	}
	if in.Message == nil {
		return &MissingFieldError{Field: "error.message"}
	}
	e.Code = ErrorCode(*in.Code)
	e.Message = *in.Message
	e.Data = in.Data
	return nil
}
