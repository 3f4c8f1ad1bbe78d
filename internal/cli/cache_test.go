package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCachePath(t *testing.T) {
	testEnv(t)

	out, _, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "spanners")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCachePathFromConfig(t *testing.T) {
	testEnv(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	doc := "[cache]\nbackend = \"redis\"\nredis_addr = \"cache.internal:6379\"\nredis_db = 2\n"
	if err := os.WriteFile(cfg, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "redis://cache.internal:6379/2" {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheClear(t *testing.T) {
	catalog := testEnv(t)

	out, _, err := execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}

	if _, _, err := execute(t, "--claims", catalog, "prove", "diag"); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("output = %q", out)
	}

	out, _, err = execute(t, "--claims", catalog, "prove", "diag")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Proving diag") {
		t.Error("cleared entry should not be served")
	}
}

func TestCacheDisabledByConfig(t *testing.T) {
	catalog := testEnv(t)
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for range 2 {
		out, _, err := execute(t, "--config", cfg, "--claims", catalog, "prove", "diag")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "Proving diag") {
			t.Errorf("with the cache disabled every run searches:\n%s", out)
		}
	}
}
