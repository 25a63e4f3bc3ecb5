package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---- Registered routes ----

func TestInit_RegisteredRoutes(t *testing.T) {
	h := newTestHandler(t)
	router := h.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/tasks"},
		{http.MethodGet, "/api/version"},
		{http.MethodDelete, "/api/tasks/some-id"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"registered route must never answer 405")
		})
	}
}

// ---- Unknown paths and methods ----

func TestInit_UnknownPathReturns404(t *testing.T) {
	h := newTestHandler(t)
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Unsupported methods on existing routes answer 404 instead of chi's default
// 405, hiding the route from callers that probe with the wrong verb.
func TestInit_WrongMethodReturns404(t *testing.T) {
	h := newTestHandler(t)
	router := h.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/tasks"},
		{http.MethodDelete, "/api/tasks"},
		{http.MethodPost, "/api/version"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
