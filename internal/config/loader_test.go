package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadFileApply tests loading a YAML file and overlaying it on defaults.
func TestLoadFileApply(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	content := `max_depth: 3
timeout_seconds: 20
delay_seconds: 0.5
retries: 5
batch_size: 2
output_dir: out
allowed_domains:
  - example.com
blocked_domains:
  - ads.example.com
exclude_patterns:
  - '\.pdf$'
seeds:
  - https://example.com/
save_to_db: true
db_dir: /tmp/history
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	c := NewConfig()
	f.Apply(c)

	if c.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", c.MaxDepth)
	}
	if c.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", c.Timeout)
	}
	if c.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms", c.Delay)
	}
	if c.Retries != 5 {
		t.Errorf("Retries = %d, want 5", c.Retries)
	}
	if c.BatchSize != 2 {
		t.Errorf("BatchSize = %d, want 2", c.BatchSize)
	}
	if c.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", c.OutputDir, "out")
	}
	if len(c.AllowedDomains) != 1 || c.AllowedDomains[0] != "example.com" {
		t.Errorf("AllowedDomains = %v", c.AllowedDomains)
	}
	if len(c.BlockedDomains) != 1 || c.BlockedDomains[0] != "ads.example.com" {
		t.Errorf("BlockedDomains = %v", c.BlockedDomains)
	}
	if len(c.ExcludePatterns) != 1 {
		t.Errorf("ExcludePatterns = %v", c.ExcludePatterns)
	}
	if len(c.Seeds) != 1 || c.Seeds[0] != "https://example.com/" {
		t.Errorf("Seeds = %v", c.Seeds)
	}
	if !c.SaveToDB {
		t.Error("SaveToDB = false, want true")
	}
	if c.DBDir != "/tmp/history" {
		t.Errorf("DBDir = %q", c.DBDir)
	}
}

// TestApplyPartialFile tests that absent fields keep the defaults.
func TestApplyPartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte("max_depth: 2\n"), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	c := NewConfig()
	f.Apply(c)

	if c.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", c.MaxDepth)
	}
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", c.Timeout, DefaultTimeout)
	}
	if c.Delay != DefaultDelay {
		t.Errorf("Delay = %v, want default %v", c.Delay, DefaultDelay)
	}
}

// TestApplyZeroOverrides tests that explicit zero values in the file win
// over non-zero defaults.
func TestApplyZeroOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte("max_depth: 0\ndelay_seconds: 0\n"), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	c := NewConfig()
	f.Apply(c)

	if c.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", c.MaxDepth)
	}
	if c.Delay != 0 {
		t.Errorf("Delay = %v, want 0", c.Delay)
	}
}

// TestLoadFileInvalidYAML tests the parse error path.
func TestLoadFileInvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte("max_depth: [unclosed\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want parse error")
	}
}

// TestFindConfigFile tests explicit path handling and the not-found sentinel.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("max_depth: 1\n"), 0600); err != nil {
			t.Fatal(err)
		}

		got, err := FindConfigFile(path)
		if err != nil {
			t.Fatalf("FindConfigFile() error = %v", err)
		}
		if got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		t.Parallel()
		if _, err := FindConfigFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
			t.Error("FindConfigFile() error = nil, want error for missing explicit path")
		}
	})
}

// TestFindConfigFileCurrentDir tests lookup of the default name in the
// working directory. Not parallel: it changes the process directory.
func TestFindConfigFileCurrentDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("max_depth: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	got, err := FindConfigFile("")
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}
	if got != DefaultConfigFile {
		t.Errorf("FindConfigFile() = %q, want %q", got, DefaultConfigFile)
	}
}

// TestFindConfigFileNotFound tests the ErrConfigNotFound sentinel.
// Not parallel: it changes the process directory.
func TestFindConfigFileNotFound(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	if _, err := FindConfigFile(""); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("FindConfigFile() error = %v, want ErrConfigNotFound", err)
	}
}
