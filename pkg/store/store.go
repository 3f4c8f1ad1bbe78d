// Package store records the outcome of every proof run.
//
// A [Report] is written once a run finishes, whether it proved its claim,
// failed or was cancelled. Backends:
//   - [MemoryStore]: in-process, used by tests and by the server when no
//     database is configured
//   - [FileStore]: one JSON file per run under the user data directory,
//     used by the CLI
//   - [MongoStore]: a MongoDB collection shared by several instances
package store

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/prover"
)

// Status is the outcome of a run.
type Status string

const (
	StatusProved     Status = "proved"
	StatusIncomplete Status = "incomplete" // proved, but the branch count differs from the expectation
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusCached     Status = "cached"
)

// Report is the stored record of one run.
type Report struct {
	ID             string        `json:"id" bson:"_id"`
	Claim          string        `json:"claim" bson:"claim"`
	Status         Status        `json:"status" bson:"status"`
	Branches       int           `json:"branches" bson:"branches"`
	ExpectedLeaves int           `json:"expected_leaves,omitempty" bson:"expected_leaves,omitempty"`
	Shortcuts      int           `json:"shortcuts" bson:"shortcuts"`
	Patterns       int           `json:"patterns" bson:"patterns"`
	Deductions     int           `json:"deductions" bson:"deductions"`
	Contradictions int           `json:"contradictions" bson:"contradictions"`
	Error          string        `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt      time.Time     `json:"started_at" bson:"started_at"`
	Duration       time.Duration `json:"duration" bson:"duration"`
}

// NewID returns a fresh run identifier.
func NewID() string { return uuid.NewString() }

// NewReport builds the report of a run of c that started at startedAt and
// ended with res and err. res may be nil when err is not.
func NewReport(c *prover.Claim, res *prover.Result, err error, startedAt time.Time) *Report {
	r := &Report{
		ID:             NewID(),
		Claim:          c.Name,
		ExpectedLeaves: c.ExpectedLeaves,
		StartedAt:      startedAt.UTC(),
		Duration:       time.Since(startedAt),
	}
	if res != nil {
		r.Branches = res.Branches
		r.Shortcuts = res.Shortcuts
		r.Patterns = res.Patterns
		r.Deductions = res.Deductions
		r.Contradictions = res.Contradictions
		r.Duration = res.Duration
	}

	switch {
	case err == nil && res != nil && !res.Complete():
		r.Status = StatusIncomplete
		r.Error = res.CheckLeaves().Error()
	case err == nil:
		r.Status = StatusProved
	case errors.Is(err, errors.ErrCodeTimeout), isCancelled(err):
		r.Status = StatusCancelled
		r.Error = err.Error()
	default:
		r.Status = StatusFailed
		r.Error = err.Error()
	}
	return r
}

// OK reports whether the run established its claim.
func (r *Report) OK() bool {
	return r.Status == StatusProved || r.Status == StatusCached
}

func isCancelled(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}

// Store persists run reports.
type Store interface {
	// Save inserts or replaces r.
	Save(ctx context.Context, r *Report) error

	// Get returns the report with the given ID, or a RUN_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Report, error)

	// ListByClaim returns the reports of a claim, newest first. An empty
	// claim lists every report. limit ≤ 0 means no limit.
	ListByClaim(ctx context.Context, claim string, limit int) ([]*Report, error)

	Close() error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeRunNotFound, "no run with id %q", id)
}
