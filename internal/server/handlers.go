package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/buildinfo"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/claims"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/httputil"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/render"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/state"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/store"
)

type ctxKey struct{}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
		"claims": s.catalog.Len(),
	})
}

func (s *Server) listClaims(w http.ResponseWriter, r *http.Request) {
	out := make([]claims.Info, 0, s.catalog.Len())
	for _, cl := range s.catalog.Ordered() {
		out = append(out, claims.Describe(cl))
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// claimCtx resolves {name} and stores the claim in the request context.
func (s *Server) claimCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if err := errors.ValidateClaimName(name); err != nil {
			httputil.WriteError(w, err)
			return
		}
		cl, err := s.catalog.Get(name)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, cl)))
	})
}

func claimFrom(r *http.Request) *prover.Claim {
	return r.Context().Value(ctxKey{}).(*prover.Claim)
}

func (s *Server) getClaim(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, claims.Describe(claimFrom(r)))
}

func (s *Server) seedSVG(w http.ResponseWriter, r *http.Request) {
	cl := claimFrom(r)
	var marks []lattice.Point
	if t := cl.Target; t != nil {
		marks = []lattice.Point{t.U, t.V}
	}
	svg, err := render.RenderSVG(r.Context(), render.ToDOT(state.Snapshot{}, render.SeedOptions(cl.Name, cl.Seed, marks...)))
	if err != nil {
		httputil.WriteError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", cl.Name))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) prove(w http.ResponseWriter, r *http.Request) {
	cl := claimFrom(r)

	s.proving.Lock()
	defer s.proving.Unlock()

	ctx := r.Context()
	if s.proveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.proveTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := prover.Prove(ctx, cl, nil, prover.WithLogger(s.logger))
	rep := store.NewReport(cl, res, err, start)
	if saveErr := s.runs.Save(context.WithoutCancel(ctx), rep); saveErr != nil {
		s.logger.Warn("Saving run failed", "claim", cl.Name, "err", saveErr)
	}
	s.logger.Info("Run", "id", rep.ID, "claim", cl.Name, "status", rep.Status, "branches", rep.Branches)

	status := http.StatusOK
	switch rep.Status {
	case store.StatusFailed:
		status = httputil.StatusFor(err)
	case store.StatusCancelled:
		status = http.StatusGatewayTimeout
	}
	httputil.WriteJSON(w, status, rep)
}

func (s *Server) claimRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httputil.WriteError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	reports, err := s.runs.ListByClaim(r.Context(), claimFrom(r).Name, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if reports == nil {
		reports = []*store.Report{}
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	rep, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rep)
}
