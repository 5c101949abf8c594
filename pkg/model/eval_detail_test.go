package model

import (
	"errors"
	"testing"

	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalDetail_IsSuccess(t *testing.T) {
	assert.False(t, NewEvalDetail(true, -1, "fallback").IsSuccess())
	assert.False(t, NewEvalDetail("x", -7, "fallback").IsSuccess())
	assert.True(t, NewEvalDetail(true, 0, "match").IsSuccess())
	assert.True(t, NewEvalDetail(1.5, 3, "match").IsSuccess())
}

func TestFallbackEvalDetail(t *testing.T) {
	d := FallbackEvalDetail("default", "flag not found", "new-ui")
	assert.Equal(t, NoVariation, d.Index())
	assert.False(t, d.IsSuccess())
	assert.Equal(t, "default", d.Value())
	assert.Equal(t, "new-ui", d.KeyName())
}

func TestEvalDetail_Encode(t *testing.T) {
	out, err := NewEvalDetail("blue", 1, "target <match>").Jsonfy()
	require.NoError(t, err)
	assert.Equal(t, `{"value":"blue","index":1,"reason":"target <match>"}`, out)

	out, err = NewNamedEvalDetail(false, 0, "default", "dark-mode", "Dark mode").Jsonfy()
	require.NoError(t, err)
	assert.Equal(t, `{"value":false,"index":0,"reason":"default","keyName":"dark-mode","name":"Dark mode"}`, out)

	out, err = NewEvalDetail(2.5, 2, "r").Jsonfy()
	require.NoError(t, err)
	assert.Equal(t, `{"value":2.5,"index":2,"reason":"r"}`, out)
}

func TestDecodeEvalDetail(t *testing.T) {
	b, err := DecodeEvalDetail[bool](`{"value":true,"index":0,"reason":"match","keyName":"k"}`)
	require.NoError(t, err)
	assert.Equal(t, NewNamedEvalDetail(true, 0, "match", "k", ""), b)

	n, err := DecodeEvalDetail[float64](`{"value":42,"index":1,"reason":"r"}`)
	require.NoError(t, err)
	assert.Equal(t, 42.0, n.Value())

	v, err := DecodeEvalDetail[Value](`{"value":"green","index":2,"reason":"r"}`)
	require.NoError(t, err)
	s, ok := v.Value().AsString()
	assert.True(t, ok)
	assert.Equal(t, "green", s)
}

func TestDecodeEvalDetail_ShapeMismatch(t *testing.T) {
	_, err := DecodeEvalDetail[bool](`{"value":"yes","index":0,"reason":"r"}`)
	var perr *codec.ParseError
	assert.True(t, errors.As(err, &perr))

	_, err = DecodeEvalDetail[string](`{"value":"x","index":`)
	assert.True(t, errors.As(err, &perr))
}

func TestEvalDetail_ToFlagState(t *testing.T) {
	ok := NewEvalDetail("on", 0, "match").ToFlagState()
	assert.True(t, ok.Success())
	assert.Equal(t, "OK", ok.Message())
	assert.Equal(t, "on", ok.Data().Value())

	failed := FallbackEvalDetail("off", "flag not found", "f").ToFlagState()
	assert.False(t, failed.Success())
	assert.Equal(t, "flag not found", failed.Message())
}

func TestFlagState_Codec(t *testing.T) {
	s := NewEvalDetail(true, 1, "match").ToFlagState()
	out, err := codec.Serialize(s)
	require.NoError(t, err)
	assert.Equal(t, `{"success":true,"message":"OK","data":{"value":true,"index":1,"reason":"match"}}`, out)

	got, err := DecodeFlagState[bool](`{"success":true,"message":"ignored","data":{"value":true,"index":1,"reason":"match"}}`)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
