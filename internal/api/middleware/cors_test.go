package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/api/middleware"
	"github.com/stretchr/testify/assert"
)

func corsHandler(allowedOrigin string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.CORS(allowedOrigin)(next)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := corsHandler("http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/postures", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

// Credentials are allowed, so an unknown origin must get no CORS headers at
// all rather than having its own origin reflected back.
func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	handler := corsHandler("http://localhost:3000")

	req := httptest.NewRequest(http.MethodGet, "/api/postures", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	handler := corsHandler("http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/api/series", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}
