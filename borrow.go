package jrpc2codec

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// The Parse functions below are the borrowing counterparts of the Decode
// functions: decoded strings and raw payloads alias the input buffer
// whenever the source needs no escape processing, so nothing is copied on
// the hot path. The returned values must not outlive the buffer; call
// Owned on them when they have to.

// ParseRequest reads a request from a slice of bytes without copying.
func ParseRequest(data []byte) (*Request, error) {
	res, data, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if !res.IsObject() {
		return nil, &ShapeError{Field: "request", Want: "a JSON object"}
	}
	return requestFromResult(data, res)
}

// ParseRequests reads either a single request or a batch of requests from
// a slice of bytes without copying, depending on the top-level JSON shape.
func ParseRequests(data []byte) (*MaybeBatched, error) {
	res, data, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	switch {
	case res.IsArray():
		elems := res.Array()
		out := &MaybeBatched{Batched: true, Requests: make([]Request, 0, len(elems))}
		for _, elem := range elems {
			if !elem.IsObject() {
				return nil, &ShapeError{Field: "request", Want: "a JSON object"}
			}
			req, err := requestFromResult(data, elem)
			if err != nil {
				return nil, err
			}
			out.Requests = append(out.Requests, *req)
		}
		return out, nil
	case res.IsObject():
		req, err := requestFromResult(data, res)
		if err != nil {
			return nil, err
		}
		return &MaybeBatched{Requests: []Request{*req}}, nil
	default:
		return nil, &ShapeError{Field: "request", Want: "a JSON object or array"}
	}
}

// ParseResponse reads a response from a slice of bytes without copying.
func ParseResponse(data []byte) (*Response, error) {
	res, data, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if !res.IsObject() {
		return nil, &ShapeError{Field: "response", Want: "a JSON object"}
	}
	if err := checkVersion(res); err != nil {
		return nil, err
	}
	idres := res.Get("id")
	if !idres.Exists() {
		return nil, &MissingFieldError{Field: "id"}
	}
	id, err := idFromResult(idres)
	if err != nil {
		return nil, err
	}
	result := res.Get("result")
	errres := res.Get("error")
	switch {
	case result.Exists() && errres.Exists():
		return nil, ErrBothResultAndError
	case !result.Exists() && !errres.Exists():
		return nil, ErrMissingResultAndError
	case result.Exists():
		return &Response{Result: rawSlice(data, result), ID: id}, nil
	default:
		e, err := errorFromResult(data, errres)
		if err != nil {
			return nil, err
		}
		return &Response{Err: e, ID: id}, nil
	}
}

// parseDocument validates the buffer and hands it to gjson. The explicit
// validation matters: gjson itself is lenient about malformed documents.
// Leading whitespace is trimmed so that gjson value indexes line up with
// the returned buffer.
func parseDocument(data []byte) (gjson.Result, []byte, error) {
	data = bytes.TrimLeft(data, " \t\r\n")
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, nil, &ShapeError{Field: "document", Want: "valid JSON"}
	}
	return gjson.ParseBytes(data), data, nil
}

func checkVersion(res gjson.Result) error {
	v := res.Get("jsonrpc")
	if !v.Exists() {
		return &MissingFieldError{Field: "jsonrpc"}
	}
	if v.Type != gjson.String || v.Str != Version {
		return &VersionError{Version: v.String()}
	}
	return nil
}

// requestFromResult decodes one request object. data must be the full
// document buffer res was parsed from: gjson reports value indexes
// relative to the document, even for values nested inside batch elements,
// so raw payloads are always sliced out of the document itself.
func requestFromResult(data []byte, res gjson.Result) (*Request, error) {
	if err := checkVersion(res); err != nil {
		return nil, err
	}
	method := res.Get("method")
	if !method.Exists() {
		return nil, &MissingFieldError{Field: "method"}
	}
	if method.Type != gjson.String {
		return nil, &ShapeError{Field: "method", Want: "a string"}
	}
	req := &Request{Method: method.Str}
	if params := res.Get("params"); params.Exists() {
		req.Params = Params{raw: rawSlice(data, params)}
	}
	if idres := res.Get("id"); idres.Exists() {
		id, err := idFromResult(idres)
		if err != nil {
			return nil, err
		}
		req.ID = &id
	}
	return req, nil
}

// idFromResult maps a gjson value onto an ID, keeping the literal's
// natural numeric classification.
func idFromResult(res gjson.Result) (ID, error) {
	switch res.Type {
	case gjson.Null:
		return NullID(), nil
	case gjson.String:
		return StringID(res.Str), nil
	case gjson.Number:
		return numberID(res.Raw)
	default:
		return ID{}, &ShapeError{Field: "id", Want: "null, string or number"}
	}
}

// errorFromResult decodes an error object. data must be the full document
// buffer res was parsed from, matching requestFromResult.
func errorFromResult(data []byte, res gjson.Result) (*Error, error) {
	if !res.IsObject() {
		return nil, &ShapeError{Field: "error", Want: "a JSON object"}
	}
	code := res.Get("code")
	if !code.Exists() {
		return nil, &MissingFieldError{Field: "error.code"}
	}
	c, err := strconv.ParseInt(code.Raw, 10, 64)
	if err != nil {
		return nil, &ShapeError{Field: "error.code", Want: "an integer"}
	}
	message := res.Get("message")
	if !message.Exists() {
		return nil, &MissingFieldError{Field: "error.message"}
	}
	if message.Type != gjson.String {
		return nil, &ShapeError{Field: "error.message", Want: "a string"}
	}
	e := &Error{Code: ErrorCode(c), Message: message.Str}
	if d := res.Get("data"); d.Exists() {
		e.Data = rawSlice(data, d)
	}
	return e, nil
}

// rawSlice carves the raw bytes of res out of its backing buffer, falling
// back to a copy when gjson could not report an index.
func rawSlice(data []byte, res gjson.Result) json.RawMessage {
	if res.Index > 0 && res.Index+len(res.Raw) <= len(data) {
		return json.RawMessage(data[res.Index : res.Index+len(res.Raw)])
	}
	return json.RawMessage(res.Raw)
}

func cloneString(s string) string { return strings.Clone(s) }
