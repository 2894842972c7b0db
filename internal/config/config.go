package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. They mirror the conservative behavior of a
// polite single-connection crawler: shallow depth, short timeout, a fixed
// pause between requests.
const (
	// DefaultMaxDepth crawls the seed page plus one level of links.
	DefaultMaxDepth = 1

	// DefaultTimeout bounds each fetch attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultRetries is the total number of attempts per URL.
	DefaultRetries = 3

	// DefaultDelay is the polite pause between processed pages.
	DefaultDelay = 500 * time.Millisecond

	// DefaultBatchSize of 1 crawls seeds strictly sequentially. Larger
	// values crawl that many seeds concurrently; per-seed state stays
	// isolated either way.
	DefaultBatchSize = 1

	// DefaultMaxBodySize caps response bodies at 5MB, plenty for HTML
	// pages while bounding memory on unexpected payloads.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultOutputDir is where artifacts, logs, and the index land.
	DefaultOutputDir = "output"

	// DefaultUserAgent identifies the crawler in target server logs.
	DefaultUserAgent = "mdcrawl/1.0 (+https://github.com/mdcrawl/mdcrawl)"

	// AppName is used for XDG directory paths.
	AppName = "mdcrawl"
)

// Config holds all options for one crawl run.
//
// Design decision: one flat struct populated before the run starts and
// passed by dependency injection. The option count is small enough that
// nested sub-structs would only add indirection.
type Config struct {
	// MaxDepth is the maximum number of link hops from a seed.
	// 0 crawls only the seed pages.
	MaxDepth int

	// Timeout bounds each individual fetch attempt.
	Timeout time.Duration

	// Retries is the total number of attempts per URL.
	Retries int

	// Delay is the fixed polite pause between processed pages,
	// uniform across target hosts.
	Delay time.Duration

	// BatchSize is the number of seeds crawled concurrently.
	// 1 (the default) preserves strictly sequential crawling.
	BatchSize int

	// UserAgent is sent with every request.
	UserAgent string

	// MaxBodySize caps how many response body bytes are read.
	MaxBodySize int64

	// OutputDir is the directory for artifacts, logs, and the index.
	OutputDir string

	// AllowedDomains admits URLs whose hostname equals or is a subdomain
	// of an entry. An empty list admits nothing.
	AllowedDomains []string

	// BlockedDomains rejects matching hostnames, taking precedence over
	// AllowedDomains.
	BlockedDomains []string

	// ExcludePatterns are regular expressions that silently drop
	// discovered links (media files, tracker parameters, non-navigable
	// schemes).
	ExcludePatterns []string

	// Seeds is the resolved seed list for this run.
	Seeds []string

	// SeedFile is the path of the seed list file, if one was given.
	SeedFile string

	// ConfigFilePath is the explicit config file path, if one was given.
	ConfigFilePath string

	// DBDir is the directory of the optional history database.
	// Empty disables persistence.
	DBDir string

	// SaveToDB records page metadata into the history database.
	SaveToDB bool

	// Verbose lowers the log level to Debug.
	Verbose bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxDepth:    DefaultMaxDepth,
		Timeout:     DefaultTimeout,
		Retries:     DefaultRetries,
		Delay:       DefaultDelay,
		BatchSize:   DefaultBatchSize,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		OutputDir:   DefaultOutputDir,
	}
}

// XDGDataDir returns the XDG data directory for the history database.
// On Linux: ~/.local/share/mdcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration, returning the first problem found.
// It is called once after flag and file parsing, before any crawling.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Retries <= 0 {
		return ErrInvalidRetries
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
