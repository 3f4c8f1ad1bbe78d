package httputil

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidClaim, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeClaimNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeRunNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeCandidatesExhausted, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New(errors.ErrCodeClaimNotFound, "unknown claim %q", "zz"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != errors.ErrCodeClaimNotFound || body.Error.Message != `unknown claim "zz"` {
		t.Errorf("body = %+v", body)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	method, route string
	status        int
}

func (h *recordingHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.method, h.route, h.status = method, route, status
}

func TestObserveReportsRoutePattern(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	r := chi.NewRouter()
	r.Use(Observe)
	r.Get("/claims/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/claims/h1", nil))

	if hooks.method != http.MethodGet || hooks.route != "/claims/{name}" || hooks.status != http.StatusTeapot {
		t.Errorf("got %s %s %d", hooks.method, hooks.route, hooks.status)
	}
}
