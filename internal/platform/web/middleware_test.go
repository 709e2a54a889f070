package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/productmanager/internal/platform/contextkeys"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDInjector(t *testing.T) {
	testCases := []struct {
		name     string
		handler  http.Handler
		expectID func(t *testing.T, id string)
	}{
		{
			name:    "generates an id",
			handler: RequestIDInjector(http.HandlerFunc(echoRequestID)),
			expectID: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
		{
			name:    "keeps the chi request id",
			handler: middleware.RequestID(RequestIDInjector(http.HandlerFunc(echoRequestID))),
			expectID: func(t *testing.T, id string) {
				assert.Equal(t, "from-client", id)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "from-client")
			rr := httptest.NewRecorder()
			// when
			tc.handler.ServeHTTP(rr, req)
			// then
			tc.expectID(t, rr.Body.String())
			assert.Equal(t, rr.Body.String(), rr.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func echoRequestID(w http.ResponseWriter, r *http.Request) {
	id, _ := contextkeys.GetRequestID(r.Context())
	_, _ = w.Write([]byte(id))
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Contains(t, buf.String(), "Request completed")
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/api/v1/products")
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	h := Recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), "Panic recovered")
}
