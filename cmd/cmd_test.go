package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/allot/internal/allocation"
	"github.com/theirongolddev/allot/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ALLOT_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	return execute(args...)
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSummaryAppliesEdits(t *testing.T) {
	out, err := run(t, "summary", "--budget", "6000", "--edit", "pct:food=20", "--log-level", "warn")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	for _, want := range []string{
		"$6,000 / month",
		"Food",
		"$1,200.00",
		"$14,400.00",
		"Balanced",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowsPath(t *testing.T) {
	out, err := run(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "config.toml") || !strings.Contains(out, "using defaults") {
		t.Errorf("unexpected config output:\n%s", out)
	}
	if !strings.Contains(out, "Housing") {
		t.Errorf("categories missing from config output:\n%s", out)
	}
}

func TestRenormalizeFlagOverridesConfigBothWays(t *testing.T) {
	t.Setenv("ALLOT_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Cleanup(func() { rootCmd.PersistentFlags().Lookup("renormalize").Changed = false })

	cfg := config.DefaultConfig()
	cfg.Allocation.Strictness = allocation.Renormalize.String()
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := execute("config", "--renormalize=false")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "Redistribution: lenient") {
		t.Errorf("--renormalize=false did not switch to lenient:\n%s", out)
	}

	out, err = execute("config", "--renormalize")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "Redistribution: renormalize") {
		t.Errorf("--renormalize did not select renormalize:\n%s", out)
	}
}
