package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/TimurManjosov/ffc-commons-go/internal/config"
	"github.com/TimurManjosov/ffc-commons-go/pkg/codec"
	"github.com/TimurManjosov/ffc-commons-go/pkg/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RecordedRequest is one request received by a FakeBackend.
type RecordedRequest struct {
	Path          string
	Authorization string
	RequestID     string
	Body          string
	Params        model.VariationParams
}

// FakeBackend is an in-process evaluation backend serving canned responses
// on the default SDK paths. It does not evaluate anything.
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	flags      map[string]string
	allFlags   string
	failStatus int
	failRemain int
	requests   []RecordedRequest
}

// NewFakeBackend starts a backend that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		flags:    make(map[string]string),
		allFlags: `{"success":true,"message":"OK","data":[]}`,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post(config.DefaultVariationPath, b.handleVariation)
	r.Post(config.DefaultAllFlagsPath, b.handleAllFlags)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the backend base URL.
func (b *FakeBackend) URL() string { return b.Server.URL }

// SetFlag sets the raw FlagState response for flagKey.
func (b *FakeBackend) SetFlag(flagKey, response string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flags[flagKey] = response
}

// SetAllFlags sets the raw AllFlagStates response.
func (b *FakeBackend) SetAllFlags(response string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allFlags = response
}

// FailNext makes the next n requests answer with status.
func (b *FakeBackend) FailNext(n, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failRemain = n
	b.failStatus = status
}

// Requests returns the requests received so far, including failed ones.
func (b *FakeBackend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// record stores the request and reports whether a forced failure was written.
func (b *FakeBackend) record(w http.ResponseWriter, r *http.Request) (model.VariationParams, bool) {
	body, _ := io.ReadAll(r.Body)
	params, err := model.DecodeVariationParams(string(body))

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-FFC-Request-ID"),
		Body:          string(body),
		Params:        params,
	})
	fail := b.failRemain > 0
	status := b.failStatus
	if fail {
		b.failRemain--
	}
	b.mu.Unlock()

	if fail {
		http.Error(w, http.StatusText(status), status)
		return params, true
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return params, true
	}
	return params, false
}

func (b *FakeBackend) handleVariation(w http.ResponseWriter, r *http.Request) {
	params, done := b.record(w, r)
	if done {
		return
	}

	b.mu.Lock()
	resp, ok := b.flags[params.FeatureFlagKeyName()]
	b.mu.Unlock()

	if !ok {
		state := model.FallbackEvalDetail(model.Value{}, "flag not found", params.FeatureFlagKeyName()).ToFlagState()
		var err error
		if resp, err = codec.Serialize(state); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, resp)
}

func (b *FakeBackend) handleAllFlags(w http.ResponseWriter, r *http.Request) {
	if _, done := b.record(w, r); done {
		return
	}
	b.mu.Lock()
	resp := b.allFlags
	b.mu.Unlock()
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
