package sweep

import (
	"fmt"
	"time"
)

// Report summarises a completed sweep.
type Report struct {
	Name     string        `json:"name"`
	Cases    int           `json:"cases"`
	Sources  int           `json:"sources"`
	Pairs    int           `json:"pairs"`
	Duration time.Duration `json:"duration"`
}

func (r *Report) String() string {
	return fmt.Sprintf("%s: %d cases, %d sources, %d pairs verified in %s",
		r.Name, r.Cases, r.Sources, r.Pairs, r.Duration.Round(time.Millisecond))
}
