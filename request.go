package jrpc2codec

import (
	"encoding/json"
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	// Method is the name of the method to be invoked.
	Method string
	// Params holds the parameters to be passed to the method.
	Params Params
	// ID is the identifier associated with the request. A nil ID marks a
	// notification: the id key is left off the wire entirely. That is not
	// the same thing as an explicit "id":null, which decodes to a non-nil
	// null ID, so the two stay distinguishable after a round trip.
	ID *ID
}

// IsNotification reports whether the request carries no identifier and so
// must not be replied to.
func (r *Request) IsNotification() bool { return r.ID == nil }

// Owned returns a deep copy of the request that no longer aliases the
// buffer it was parsed from.
func (r *Request) Owned() *Request {
	out := &Request{
		Method: cloneString(r.Method),
		Params: r.Params.Owned(),
	}
	if r.ID != nil {
		id := r.ID.Owned()
		out.ID = &id
	}
	return out
}

// outgoingRequest is the wire shape of an encoded request.
type outgoingRequest struct {
	Version string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  Params `json:"params"`
	ID      *ID    `json:"id,omitempty"`
}

// incomingRequest is the wire shape of a decoded request. Pointer members
// and the idField wrapper keep absent keys apart from null values.
type incomingRequest struct {
	Version *string `json:"jsonrpc"`
	Method  *string `json:"method"`
	Params  Params  `json:"params"`
	ID      idField `json:"id"`
}

// idField records whether the id key was present at all. encoding/json
// only calls UnmarshalJSON for keys that exist, so the zero value means
// the key was absent and the request is a notification.
type idField struct {
	id  ID
	set bool
}

func (f *idField) UnmarshalJSON(data []byte) error {
	f.set = true
	return f.id.UnmarshalJSON(data)
}

// MarshalJSON encodes the request envelope, tagging it with the protocol
// version and omitting the id key for notifications.
func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(&outgoingRequest{
		Version: Version,
		Method:  r.Method,
		Params:  r.Params,
		ID:      r.ID,
	})
}

// UnmarshalJSON decodes the request envelope, checking the protocol
// version and the required members.
func (r *Request) UnmarshalJSON(data []byte) error {
	var in incomingRequest
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Version == nil {
		return &MissingFieldError{Field: "jsonrpc"}
	}
	if *in.Version != Version {
		return &VersionError{Version: *in.Version}
	}
	if in.Method == nil {
		return &MissingFieldError{Field: "method"}
	}
	r.Method = *in.Method
	r.Params = in.Params
	if in.ID.set {
		id := in.ID.id
		r.ID = &id
	} else {
		r.ID = nil
	}
	return nil
}
