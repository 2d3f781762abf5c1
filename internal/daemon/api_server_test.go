package daemon

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelf/internal/services"
)

func TestStatusForError(t *testing.T) {
	cases := map[error]int{
		services.Wrap(services.ErrNotFound, "c", "op", "", nil):          http.StatusNotFound,
		services.Wrap(services.ErrValidation, "c", "op", "", nil):        http.StatusBadRequest,
		services.Wrap(services.ErrUnsupportedSource, "c", "op", "", nil): http.StatusUnprocessableEntity,
		services.Wrap(services.ErrTransport, "c", "op", "", nil):         http.StatusBadGateway,
		services.Wrap(services.ErrParse, "c", "op", "", nil):             http.StatusBadGateway,
		services.Wrap(services.ErrConcurrency, "c", "op", "", nil):       http.StatusServiceUnavailable,
		services.Wrap(services.ErrPersistence, "c", "op", "", nil):       http.StatusInternalServerError,
		errors.New("plain"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		if got := statusForError(err); got != want {
			t.Fatalf("statusForError(%v) = %d, want %d", err, got, want)
		}
	}
}

func TestAPIServerRejectsNonGet(t *testing.T) {
	srv := &apiServer{}
	for _, path := range []string{"/api/status", "/api/entries", "/api/entries/x", "/api/images"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		srv.routes().ServeHTTP(w, req)
		if w.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected 405, got %d", path, w.Code)
		}
	}
}
