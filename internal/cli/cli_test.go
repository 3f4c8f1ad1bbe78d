package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/observability"
)

// testCatalog holds claims that prove instantly: diag closes its single
// branch with patterns, diag-miscount expects one branch too many and
// stuck runs out of candidates.
const testCatalog = `
[[claim]]
name = "axis"
title = "Axis edges"
seed = "(0,0) (1,0)"

[[claim]]
name = "diag"
title = "Diagonal"
seed = "(0,0) (1,1)"
candidates = "(0,0)-(1,0)"
expected_leaves = 1
lemmas = ["axis"]

[[claim]]
name = "diag-miscount"
seed = "(0,0) (1,1)"
candidates = "(0,0)-(1,0)"
expected_leaves = 2
lemmas = ["axis"]

[[claim]]
name = "stuck"
seed = "(0,0) (1,0)"
candidates = "(0,0)-(1,0)"
`

// testEnv points the XDG directories at a temporary tree and writes the
// test catalog. It returns the catalog path.
func testEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Cleanup(observability.Reset)

	path := filepath.Join(root, "claims.toml")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the command line args against a fresh CLI and returns
// what it printed and logged.
func execute(t *testing.T, args ...string) (out, logs string, err error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(&stdout, &stderr, log.DebugLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err = root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
