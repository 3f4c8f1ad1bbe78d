package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/lattice"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
)

func testClaim() *prover.Claim {
	return &prover.Claim{
		Name:           "demo",
		Seed:           []lattice.Point{{0, 0}, {1, 0}},
		ExpectedLeaves: 3,
	}
}

func TestNewReport(t *testing.T) {
	c := testClaim()
	start := time.Now().Add(-time.Second)

	tests := []struct {
		name   string
		res    *prover.Result
		err    error
		status Status
		errSet bool
	}{
		{"proved", &prover.Result{Claim: c, Branches: 3}, nil, StatusProved, false},
		{"incomplete", &prover.Result{Claim: c, Branches: 2}, nil, StatusIncomplete, true},
		{"failed", nil, errors.New(errors.ErrCodeCandidatesExhausted, "x"), StatusFailed, true},
		{"cancelled", nil, fmt.Errorf("expand: %w", context.Canceled), StatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport(c, tt.res, tt.err, start)
			if r.Status != tt.status {
				t.Errorf("Status = %s, want %s", r.Status, tt.status)
			}
			if (r.Error != "") != tt.errSet {
				t.Errorf("Error = %q", r.Error)
			}
			if r.ID == "" || r.Claim != "demo" || r.ExpectedLeaves != 3 {
				t.Errorf("unexpected report %+v", r)
			}
			if r.OK() != (tt.status == StatusProved) {
				t.Errorf("OK() = %v", r.OK())
			}
		})
	}
}

func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	reports := []*Report{
		{ID: NewID(), Claim: "h1", Status: StatusProved, Branches: 1467, StartedAt: base},
		{ID: NewID(), Claim: "h1", Status: StatusFailed, Error: "boom", StartedAt: base.Add(time.Minute)},
		{ID: NewID(), Claim: "p4", Status: StatusProved, Branches: 6155, StartedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range reports {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.Get(ctx, reports[0].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(reports[0], got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, errors.ErrCodeRunNotFound) {
		t.Errorf("Get(nope) error = %v, want RUN_NOT_FOUND", err)
	}

	h1, err := s.ListByClaim(ctx, "h1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(h1) != 2 || h1[0].ID != reports[1].ID {
		t.Errorf("ListByClaim(h1) not newest first: %+v", h1)
	}

	all, _ := s.ListByClaim(ctx, "", 2)
	if len(all) != 2 || all[0].Claim != "p4" {
		t.Errorf("ListByClaim(\"\", 2) = %+v", all)
	}

	reports[0].Status = StatusCancelled
	if err := s.Save(ctx, reports[0]); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, reports[0].ID); got.Status != StatusCancelled {
		t.Errorf("Save did not replace: %s", got.Status)
	}
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, s)

	if err := s.Save(context.Background(), &Report{ID: "../escape"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save with path id: %v", err)
	}
}

func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("SPANNERS_MONGO_URI")
	if uri == "" {
		t.Skip("SPANNERS_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoStore(ctx, uri, "spanners_test", "runs_"+NewID()[:8])
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		s.Close()
	}()
	exercise(t, s)
}
