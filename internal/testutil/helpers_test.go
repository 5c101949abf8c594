package testutil

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/TimurManjosov/ffc-commons-go/internal/config"
	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestFakeBackend_RecordsDecodedRequests(t *testing.T) {
	b := NewFakeBackend(t)
	b.SetFlag("f", `{"success":true,"message":"OK","data":{"value":true,"index":0,"reason":"r"}}`)

	resp := post(t, b.URL()+config.DefaultVariationPath, `{"userKeyId":"k","featureFlagKeyName":"f"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	reqs := b.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, config.DefaultVariationPath, reqs[0].Path)
	assert.Equal(t, "k", reqs[0].Params.User().Key())
}

func TestFakeBackend_UnknownFlag(t *testing.T) {
	b := NewFakeBackend(t)
	resp := post(t, b.URL()+config.DefaultVariationPath, `{"userKeyId":"k","featureFlagKeyName":"nope"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb bytes.Buffer
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)

	state, err := model.DecodeFlagState[model.Value](sb.String())
	require.NoError(t, err)
	assert.False(t, state.Success())
	assert.Equal(t, "flag not found", state.Message())
}

func TestFakeBackend_RejectsInvalidRequests(t *testing.T) {
	b := NewFakeBackend(t)
	resp := post(t, b.URL()+config.DefaultAllFlagsPath, `{"userName":"no key"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, b.Requests(), 1)
}

func TestFakeBackend_FailNext(t *testing.T) {
	b := NewFakeBackend(t)
	b.FailNext(1, http.StatusServiceUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, post(t, b.URL()+config.DefaultAllFlagsPath, `{"userKeyId":"k"}`).StatusCode)
	assert.Equal(t, http.StatusOK, post(t, b.URL()+config.DefaultAllFlagsPath, `{"userKeyId":"k"}`).StatusCode)
}
