package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-01"

	tmpl := Template()
	for _, want := range []string{"{{.Name}} v1.2.3", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
	if got := Get(); got.Version != "v1.2.3" || got.Commit != "abc123" {
		t.Errorf("Get() = %+v", got)
	}
}
