package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/bikeshare/internal/config"
	"github.com/verte-zerg/bikeshare/internal/dataset"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if cfg.Explore.DataDir != nil || cfg.Explore.Pager != nil {
		t.Fatalf("expected all template values commented out: %+v", cfg)
	}
}

func TestEnsureConfigFileKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bikeshare", "config.toml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("create config: %v", err)
	}
	if err := os.WriteFile(path, []byte("[explore]\npager = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != "[explore]\npager = true\n" {
		t.Fatalf("existing config overwritten: %q", data)
	}
}

func TestListCities(t *testing.T) {
	var buf bytes.Buffer
	if err := listCities(&buf, dataset.Loader{Dir: "../../internal/dataset/testdata"}); err != nil {
		t.Fatalf("list cities: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"chicago", "new york city", "washington"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "missing") {
		t.Fatalf("expected every fixture present:\n%s", out)
	}
}

func TestListCitiesAllMissing(t *testing.T) {
	var buf bytes.Buffer
	if err := listCities(&buf, dataset.Loader{Dir: t.TempDir()}); err == nil {
		t.Fatalf("expected error when no data files exist")
	}
	if got := strings.Count(buf.String(), "missing"); got != 3 {
		t.Fatalf("expected 3 missing cities, got %d", got)
	}
}

func TestRootCommandRunsSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader("washington\nall\nall\nnon\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--data-dir", "../../internal/dataset/testdata"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v\n%s", err, errOut.String())
	}
	if !strings.Contains(out.String(), "5 trips selected (washington, month: all, day: all).") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
