package model

import (
	"errors"
	"testing"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyAllFlagStates(t *testing.T) {
	s := EmptyAllFlagStates[bool]("rate limited")
	assert.False(t, s.Success())
	assert.Equal(t, "rate limited", s.Message())
	assert.Nil(t, s.Data())

	out, err := codec.Serialize(s)
	require.NoError(t, err)
	assert.Equal(t, `{"success":false,"message":"rate limited","data":null}`, out)
}

func TestNewAllFlagStates_MessageIsOKOnSuccess(t *testing.T) {
	s := NewAllFlagStates(true, "whatever", []EvalDetail[string]{NewEvalDetail("a", 0, "r")})
	assert.Equal(t, "OK", s.Message())

	f := NewAllFlagStates[string](false, "backend down", nil)
	assert.Equal(t, "backend down", f.Message())
}

func TestAllFlagStates_DataIsCopied(t *testing.T) {
	data := []EvalDetail[string]{NewEvalDetail("a", 0, "r")}
	s := NewAllFlagStates(true, "", data)
	data[0] = NewEvalDetail("changed", 1, "r")

	got := s.Data()
	assert.Equal(t, "a", got[0].Value())
	got[0] = NewEvalDetail("changed", 1, "r")
	assert.Equal(t, "a", s.Data()[0].Value())
}

func TestDecodeAllFlagStates_MixedValues(t *testing.T) {
	text := `{"success":true,"message":"anything","data":[
		{"value":true,"index":0,"reason":"r","keyName":"a"},
		{"value":"blue","index":1,"reason":"r","keyName":"b"},
		{"value":3,"index":-1,"reason":"fallback","keyName":"c"}
	]}`

	s, err := DecodeAllFlagStates[Value](text)
	require.NoError(t, err)

	assert.True(t, s.Success())
	assert.Equal(t, "OK", s.Message(), "restored by the post-decode hook")
	require.Equal(t, 3, s.Len())

	a, ok := s.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, KindBool, a.Value().Kind())

	c, ok := s.Lookup("c")
	require.True(t, ok)
	assert.False(t, c.IsSuccess())
	n, _ := c.Value().AsNumber()
	assert.Equal(t, 3.0, n)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestDecodeAllFlagStates_Failure(t *testing.T) {
	s, err := DecodeAllFlagStates[bool](`{"success":false,"message":"rate limited","data":null}`)
	require.NoError(t, err)
	assert.True(t, s.Equal(EmptyAllFlagStates[bool]("rate limited")))
}

func TestDecodeAllFlagStates_Malformed(t *testing.T) {
	for _, text := range []string{
		`{"success":true,"data":[{"value":true`,
		`{"success":"yes"}`,
		`{"success":true,"data":[{"value":"str","index":0,"reason":"r"}]}`,
	} {
		_, err := DecodeAllFlagStates[bool](text)
		var perr *codec.ParseError
		assert.True(t, errors.As(err, &perr), text)
	}
}

func TestAllFlagStates_RoundTrip(t *testing.T) {
	want := NewAllFlagStates(true, "", []EvalDetail[float64]{
		NewNamedEvalDetail(1.0, 0, "r", "a", "A"),
		NewNamedEvalDetail(2.5, 1, "r", "b", ""),
	})
	text, err := codec.Serialize(want)
	require.NoError(t, err)

	got, err := DecodeAllFlagStates[float64](text)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestAllFlagStates_PointerShapeRestoresOK(t *testing.T) {
	got, err := codec.Deserialize[*AllFlagStates[bool]](`{"success":true,"message":"stale","data":[]}`)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Success())
	assert.Equal(t, "OK", got.Message())

	var into *FlagState[string]
	require.NoError(t, codec.DeserializeInto(`{"success":true,"message":"stale","data":{"value":"on","index":0,"reason":"r"}}`, &into))
	assert.Equal(t, "OK", into.Message())
}
