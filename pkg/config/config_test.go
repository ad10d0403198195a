package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/chaosmeter/pkg/analysis"
	"github.com/matzehuels/chaosmeter/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if *cfg.DegreeThreshold != 3 || *cfg.CentralityThreshold != 5 {
		t.Errorf("thresholds = %d, %d, want 3, 5", *cfg.DegreeThreshold, *cfg.CentralityThreshold)
	}
	if cfg.Top != 5 || cfg.PageRankTop != 30 {
		t.Errorf("top = %d, pagerank_top = %d, want 5, 30", cfg.Top, cfg.PageRankTop)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.MaxBodyBytes != 10<<20 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if !reflect.DeepEqual(cfg.Options(), analysis.DefaultOptions()) {
		t.Errorf("Options() = %+v, want %+v", cfg.Options(), analysis.DefaultOptions())
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
exclude = "test\\."
degree_threshold = 4
top = 10

[server]
addr = ":9090"
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Exclude != `test\.` {
		t.Errorf("Exclude = %q, want %q", cfg.Exclude, `test\.`)
	}
	if *cfg.DegreeThreshold != 4 || cfg.Top != 10 {
		t.Errorf("DegreeThreshold, Top = %d, %d, want 4, 10", *cfg.DegreeThreshold, cfg.Top)
	}
	if *cfg.CentralityThreshold != 5 {
		t.Errorf("CentralityThreshold = %d, want default 5", *cfg.CentralityThreshold)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestParse_Thresholds(t *testing.T) {
	tests := []struct {
		name           string
		data           string
		wantDegree     int
		wantCentrality int
	}{
		{"omitted", ``, 3, 5},
		{"explicit zero", "degree_threshold = 0\ncentrality_threshold = 0\n", 0, 0},
		{"set", "degree_threshold = 1\n", 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := *cfg.DegreeThreshold; got != tt.wantDegree {
				t.Errorf("DegreeThreshold = %d, want %d", got, tt.wantDegree)
			}
			if got := *cfg.CentralityThreshold; got != tt.wantCentrality {
				t.Errorf("CentralityThreshold = %d, want %d", got, tt.wantCentrality)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `top = `},
		{"unknown key", `tpo = 3`},
		{"negative threshold", `degree_threshold = -1`},
		{"damping out of range", `pagerank_damping = 1.5`},
		{"negative tolerance", `pagerank_tolerance = -0.1`},
		{"wrong type", `top = "five"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoad_Explicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chaos.toml")
	if err := os.WriteFile(path, []byte("top = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Top != 7 {
		t.Errorf("Top = %d, want 7", cfg.Top)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoad_Implicit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() without file error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}

	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appName, fileName), []byte("pagerank_top = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PageRankTop != 12 {
		t.Errorf("PageRankTop = %d, want 12", cfg.PageRankTop)
	}
}

func TestDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}
