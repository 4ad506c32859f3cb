package jrpc2codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDKind discriminates the variants an ID can hold.
type IDKind int

const (
	// IDNull ID was the `null` literal.
	IDNull IDKind = iota
	// IDString ID was a string.
	IDString
	// IDInt ID was a signed integer.
	IDInt
	// IDUint ID was an unsigned integer.
	IDUint
	// IDFloat ID was a floating point number. The JSON-RPC 2.0 specification
	// says clients SHOULD NOT use fractional IDs, but they are legal, so
	// they have to be accounted for.
	IDFloat
)

// ID is a request identifier.
//
// Clients use it to match responses sent back by a complying server with
// the request they sent. The zero value is the null ID. ID is comparable:
// == is value based and variant sensitive, so IntID(1), UintID(1),
// FloatID(1) and StringID("1") are four distinct values.
type ID struct {
	kind IDKind
	str  string
	i    int64
	u    uint64
	f    float64
}

// NullID returns the null identifier.
func NullID() ID { return ID{} }

// StringID returns a string identifier.
func StringID(s string) ID { return ID{kind: IDString, str: s} }

// IntID returns a signed integer identifier.
func IntID(i int64) ID { return ID{kind: IDInt, i: i} }

// UintID returns an unsigned integer identifier.
func UintID(u uint64) ID { return ID{kind: IDUint, u: u} }

// FloatID returns a floating point identifier.
func FloatID(f float64) ID { return ID{kind: IDFloat, f: f} }

// RandomID returns a fresh string identifier for client requests.
func RandomID() ID { return StringID(uuid.NewString()) }

// Kind returns the variant held by the ID.
func (id ID) Kind() IDKind { return id.kind }

// IsNull reports whether the ID is the null identifier.
func (id ID) IsNull() bool { return id.kind == IDNull }

// String formats the ID the way it would appear on the wire, for logs and
// error messages.
func (id ID) String() string {
	switch id.kind {
	case IDString:
		return strconv.Quote(id.str)
	case IDInt:
		return strconv.FormatInt(id.i, 10)
	case IDUint:
		return strconv.FormatUint(id.u, 10)
	case IDFloat:
		return formatFloatID(id.f)
	default:
		return "null"
	}
}

// Owned returns an ID whose string storage no longer aliases the buffer it
// was parsed from. Plain assignment is enough when sharing the storage is
// acceptable.
func (id ID) Owned() ID {
	if id.kind == IDString {
		id.str = cloneString(id.str)
	}
	return id
}

// MarshalJSON encodes the ID as null, a string or a number, preserving the
// variant. Float IDs always keep a fractional or exponent part so they
// cannot be mistaken for integers on the way back in.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case IDString:
		return json.Marshal(id.str)
	case IDInt:
		return strconv.AppendInt(nil, id.i, 10), nil
	case IDUint:
		return strconv.AppendUint(nil, id.u, 10), nil
	case IDFloat:
		if math.IsNaN(id.f) || math.IsInf(id.f, 0) {
			return nil, fmt.Errorf("cannot encode non-finite float %v as request id", id.f)
		}
		return []byte(formatFloatID(id.f)), nil
	default:
		return null, nil
	}
}

// UnmarshalJSON decodes null, string and number literals. Any other JSON
// shape is rejected. Number literals keep their natural classification:
// a fraction or exponent makes a Float, a leading minus an Int and anything
// else a Uint.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &ShapeError{Field: "id", Want: "null, string or number"}
	}
	switch data[0] {
	case 'n':
		if !bytes.Equal(data, null) {
			return &ShapeError{Field: "id", Want: "null, string or number"}
		}
		*id = ID{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	case '{', '[', 't', 'f':
		return &ShapeError{Field: "id", Want: "null, string or number"}
	default:
		parsed, err := numberID(string(data))
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
}

// numberID classifies a JSON number literal into the Int, Uint or Float
// variant. Integer literals that overflow 64 bits degrade to Float, which
// is also what encoding/json does for out of range integers.
func numberID(lit string) (ID, error) {
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return ID{}, &ShapeError{Field: "id", Want: "null, string or number"}
		}
		return FloatID(f), nil
	}
	if strings.HasPrefix(lit, "-") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err == nil {
			return IntID(i), nil
		}
	} else {
		u, err := strconv.ParseUint(lit, 10, 64)
		if err == nil {
			return UintID(u), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return ID{}, &ShapeError{Field: "id", Want: "null, string or number"}
	}
	return FloatID(f), nil
}

// formatFloatID renders f in the shortest form that still reads back as a
// float. FormatFloat prints 1.0 as "1", which would round trip as a Uint.
func formatFloatID(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
