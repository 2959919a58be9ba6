package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanbase-labs/pythia/internal/middleware/memory"
)

func TestCached(t *testing.T) {
	calls := 0
	h := Cached(memory.NewStorage(), time.Minute, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("payload"))
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/v1/test", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "payload", w.Body.String())
	}

	assert.Equal(t, 1, calls)
}

func TestCached_SkipsFailures(t *testing.T) {
	calls := 0
	h := Cached(memory.NewStorage(), time.Minute, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/v1/test", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}

	assert.Equal(t, 2, calls)
}

func TestCached_KeyedByURI(t *testing.T) {
	h := Cached(memory.NewStorage(), time.Minute, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.RequestURI))
	})

	a, b := httptest.NewRecorder(), httptest.NewRecorder()
	h(a, httptest.NewRequest(http.MethodGet, "/v1/a", nil))
	h(b, httptest.NewRequest(http.MethodGet, "/v1/b", nil))

	assert.Equal(t, "/v1/a", a.Body.String())
	assert.Equal(t, "/v1/b", b.Body.String())
}
