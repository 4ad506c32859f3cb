package jrpc2codec_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftbit/jrpc2codec"
)

func TestIDRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   jrpc2codec.ID
		wire string
	}{
		{"null", jrpc2codec.NullID(), `null`},
		{"string", jrpc2codec.StringID("abc"), `"abc"`},
		{"string numeric", jrpc2codec.StringID("1"), `"1"`},
		{"string escaped", jrpc2codec.StringID("a\"b"), `"a\"b"`},
		{"int", jrpc2codec.IntID(-1), `-1`},
		{"uint", jrpc2codec.UintID(1), `1`},
		{"uint max", jrpc2codec.UintID(math.MaxUint64), `18446744073709551615`},
		{"float", jrpc2codec.FloatID(1.0), `1.0`},
		{"float frac", jrpc2codec.FloatID(1.5), `1.5`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wire, string(wire))

			var back jrpc2codec.ID
			require.NoError(t, json.Unmarshal(wire, &back))
			assert.Equal(t, tt.id, back)
			assert.Equal(t, tt.id.Kind(), back.Kind())
		})
	}
}

func TestIDNumericClassification(t *testing.T) {
	tests := []struct {
		wire string
		kind jrpc2codec.IDKind
	}{
		{`1`, jrpc2codec.IDUint},
		{`0`, jrpc2codec.IDUint},
		{`-1`, jrpc2codec.IDInt},
		{`1.5`, jrpc2codec.IDFloat},
		{`1.0`, jrpc2codec.IDFloat},
		{`1e3`, jrpc2codec.IDFloat},
		{`-2.5`, jrpc2codec.IDFloat},
		// Does not fit in 64 bits, degrades to a float.
		{`18446744073709551616`, jrpc2codec.IDFloat},
		{`-9223372036854775809`, jrpc2codec.IDFloat},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			var id jrpc2codec.ID
			require.NoError(t, json.Unmarshal([]byte(tt.wire), &id))
			assert.Equal(t, tt.kind, id.Kind())
		})
	}
}

func TestIDVariantsAreDistinct(t *testing.T) {
	ids := []jrpc2codec.ID{
		jrpc2codec.IntID(1),
		jrpc2codec.UintID(1),
		jrpc2codec.FloatID(1.0),
		jrpc2codec.StringID("1"),
		jrpc2codec.NullID(),
	}
	for i, a := range ids {
		for j, b := range ids {
			if i == j {
				assert.True(t, a == b)
			} else {
				assert.False(t, a == b, "%s must not equal %s", a, b)
			}
		}
	}
}

func TestIDRejectsWrongShapes(t *testing.T) {
	for _, wire := range []string{`true`, `false`, `[1]`, `{"a":1}`} {
		t.Run(wire, func(t *testing.T) {
			var id jrpc2codec.ID
			err := json.Unmarshal([]byte(wire), &id)
			var shapeErr *jrpc2codec.ShapeError
			require.ErrorAs(t, err, &shapeErr)
			assert.Equal(t, "id", shapeErr.Field)
		})
	}
}

func TestIDNonFiniteFloat(t *testing.T) {
	_, err := json.Marshal(jrpc2codec.FloatID(math.NaN()))
	assert.Error(t, err)
	_, err = json.Marshal(jrpc2codec.FloatID(math.Inf(1)))
	assert.Error(t, err)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "null", jrpc2codec.NullID().String())
	assert.Equal(t, `"x"`, jrpc2codec.StringID("x").String())
	assert.Equal(t, "-7", jrpc2codec.IntID(-7).String())
	assert.Equal(t, "7", jrpc2codec.UintID(7).String())
	assert.Equal(t, "7.0", jrpc2codec.FloatID(7).String())
}

func TestRandomID(t *testing.T) {
	a := jrpc2codec.RandomID()
	b := jrpc2codec.RandomID()
	assert.Equal(t, jrpc2codec.IDString, a.Kind())
	assert.NotEqual(t, a, b)
}

func TestIDOwned(t *testing.T) {
	id := jrpc2codec.StringID("hello")
	assert.Equal(t, id, id.Owned())
	assert.Equal(t, jrpc2codec.UintID(3), jrpc2codec.UintID(3).Owned())
}
