package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadSeeds reads seed URLs from a line-oriented file. Blank lines and
// lines starting with "#" are skipped. Bare hostnames are coerced to
// https:// URLs so seed files can list domains directly.
func LoadSeeds(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	var seeds []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seeds = append(seeds, CoerceSeed(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}
	return seeds, nil
}

// CoerceSeed normalizes a raw seed entry. Entries without a scheme are
// assumed to be hostnames and get https:// prepended.
func CoerceSeed(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}
