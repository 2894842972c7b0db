package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
)

const (
	// ArtifactDir is the subdirectory holding per-page text renderings.
	ArtifactDir = "MDs"

	// FailureLogName is the append-only log of exhausted fetches.
	FailureLogName = "failed_urls.txt"

	// SuccessLogName is the append-only log of saved HTTP-200 pages.
	SuccessLogName = "success_urls.txt"

	// maxFilenameLen caps the artifact name length before the extension.
	maxFilenameLen = 150
)

// Store writes crawl outputs under a root directory.
// It is safe for concurrent use by several seed crawls.
type Store struct {
	root string

	// mu serializes appends so concurrent seed crawls cannot interleave
	// partial lines in the shared logs.
	mu sync.Mutex
}

// New creates the output directory layout and truncates the success and
// failure logs, mirroring a fresh run. It fails only when the directory
// tree cannot be created or written.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, ArtifactDir), 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	s := &Store{root: root}

	// Fresh logs per run; the index and artifacts are overwritten anyway.
	for _, name := range []string{FailureLogName, SuccessLogName} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0640); err != nil {
			return nil, fmt.Errorf("reset %s: %w", name, err)
		}
	}

	return s, nil
}

// Root returns the output directory path.
func (s *Store) Root() string {
	return s.root
}

// SaveArtifact writes a page's text rendering and returns the artifact path
// relative to the output directory.
func (s *Store) SaveArtifact(rawURL, text string) (string, error) {
	name := Filename(rawURL)
	rel := filepath.Join(ArtifactDir, name)

	if err := os.WriteFile(filepath.Join(s.root, rel), []byte(text), 0640); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}

	return rel, nil
}

// AppendFailure appends one `<url>|error:unreachable|<timestamp>` line to
// the failure log.
func (s *Store) AppendFailure(rawURL string, ts time.Time) error {
	line := fmt.Sprintf("%s|error:unreachable|%s\n", rawURL, ts.Format(time.RFC3339))
	return s.appendLine(FailureLogName, line)
}

// AppendSuccess appends one URL to the success log.
func (s *Store) AppendSuccess(rawURL string) error {
	return s.appendLine(SuccessLogName, rawURL+"\n")
}

// appendLine appends a single line to a log file, opening and closing the
// file per write so partial runs leave complete, inspectable logs.
func (s *Store) appendLine(name, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(filepath.Join(s.root, name), os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}

	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to %s: %w", name, err)
	}

	return f.Close()
}

// Filename derives a deterministic artifact name from a URL: the hostname
// (without "www.") and path joined by "_", NFKD-normalized, every character
// outside [A-Za-z0-9_-] collapsed to "_", capped at 150 characters, with a
// ".md" extension.
func Filename(rawURL string) string {
	var domain, path string

	if u, err := url.Parse(rawURL); err == nil {
		domain = strings.TrimPrefix(u.Hostname(), "www.")
		path = strings.Trim(u.Path, "/")
	} else {
		domain = rawURL
	}

	if path == "" {
		path = "index"
	}

	name := sanitize(domain + "_" + path)
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}

	return name + ".md"
}

// sanitize maps a string onto the [A-Za-z0-9_-] alphabet. Unicode input is
// NFKD-decomposed first so accented letters keep their base character
// instead of vanishing into a single underscore.
func sanitize(s string) string {
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}
