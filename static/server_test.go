package static

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerServesIndex(t *testing.T) {
	for _, path := range []string{"/", "/index.html"} {
		w := httptest.NewRecorder()
		Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Fatalf("%s: unexpected content type %q", path, ct)
		}
		if !strings.Contains(w.Body.String(), "AI Text Editor") {
			t.Fatalf("%s: unexpected body", path)
		}
	}
}

func TestHandlerRejects(t *testing.T) {
	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/assets/app.js"},
		{http.MethodPost, "/"},
		{http.MethodDelete, "/index.html"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		Handler().ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, w.Code)
		}
	}
}
