package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	name string
	meta interface{}
	err  error
}

func (p stubPinger) Ping(_ context.Context) (interface{}, error) { return p.meta, p.err }
func (p stubPinger) Name() string                                { return p.name }

func TestHandler(t *testing.T) {
	h := Handler(time.Second, stubPinger{name: "chain", meta: map[string]string{"chain": "abc"}})

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Version string                 `json:"version"`
		Meta    map[string]interface{} `json:"meta"`
		Errors  map[string]string      `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Contains(t, resp.Meta, "chain")
	assert.Empty(t, resp.Errors)
}

func TestHandler_Failure(t *testing.T) {
	h := Handler(time.Second,
		stubPinger{name: "chain", err: errors.New("node down")},
		stubPinger{name: "ok"},
	)

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "node down", resp.Errors["chain"])
	assert.NotContains(t, resp.Errors, "ok")
}
