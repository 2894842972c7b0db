package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the current
// directory and the home directory when no explicit path is given.
const DefaultConfigFile = ".mdcrawl"

// ErrConfigNotFound is returned by FindConfigFile when no config file
// exists at any of the candidate locations. Callers treat this as
// "run with defaults", not as a failure.
var ErrConfigNotFound = errors.New("config file not found")

// File is the YAML representation of a configuration file. All fields are
// optional; zero values mean "keep the current setting". Durations are
// expressed in seconds so that sub-second values like 0.5 stay readable.
type File struct {
	MaxDepth        *int     `yaml:"max_depth"`
	TimeoutSeconds  *float64 `yaml:"timeout_seconds"`
	Retries         *int     `yaml:"retries"`
	DelaySeconds    *float64 `yaml:"delay_seconds"`
	BatchSize       *int     `yaml:"batch_size"`
	UserAgent       string   `yaml:"user_agent"`
	MaxBodySize     *int64   `yaml:"max_body_size"`
	OutputDir       string   `yaml:"output_dir"`
	AllowedDomains  []string `yaml:"allowed_domains"`
	BlockedDomains  []string `yaml:"blocked_domains"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	SeedFile        string   `yaml:"seed_file"`
	Seeds           []string `yaml:"seeds"`
	DBDir           string   `yaml:"db_dir"`
	SaveToDB        *bool    `yaml:"save_to_db"`
}

// LoadFile reads and parses the YAML config file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the file's settings onto c. Only fields present in the
// file are applied; CLI flags are applied after this and win.
func (f *File) Apply(c *Config) {
	if f.MaxDepth != nil {
		c.MaxDepth = *f.MaxDepth
	}
	if f.TimeoutSeconds != nil {
		c.Timeout = time.Duration(*f.TimeoutSeconds * float64(time.Second))
	}
	if f.Retries != nil {
		c.Retries = *f.Retries
	}
	if f.DelaySeconds != nil {
		c.Delay = time.Duration(*f.DelaySeconds * float64(time.Second))
	}
	if f.BatchSize != nil {
		c.BatchSize = *f.BatchSize
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != nil {
		c.MaxBodySize = *f.MaxBodySize
	}
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if len(f.AllowedDomains) > 0 {
		c.AllowedDomains = f.AllowedDomains
	}
	if len(f.BlockedDomains) > 0 {
		c.BlockedDomains = f.BlockedDomains
	}
	if len(f.ExcludePatterns) > 0 {
		c.ExcludePatterns = f.ExcludePatterns
	}
	if f.SeedFile != "" {
		c.SeedFile = f.SeedFile
	}
	if len(f.Seeds) > 0 {
		c.Seeds = f.Seeds
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	if f.SaveToDB != nil {
		c.SaveToDB = *f.SaveToDB
	}
}

// FindConfigFile locates the config file. An explicit path is used as-is
// and must exist. Otherwise the default name is tried in the current
// directory, then in the home directory. ErrConfigNotFound means no file
// was found anywhere, which is not an error for callers that can run on
// defaults.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{DefaultConfigFile}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}
