package policy

import "testing"

// TestIsInScope tests domain admission decisions.
func TestIsInScope(t *testing.T) {
	t.Parallel()

	scope := New(
		[]string{"example.com", "docs.example.org"},
		[]string{"tracker.example.com", "facebook.com"},
	)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"allowed domain", "https://example.com/page", true},
		{"allowed subdomain", "https://shop.example.com/items", true},
		{"www prefix stripped", "https://www.example.com/", true},
		{"uppercase host", "https://EXAMPLE.COM/page", true},
		{"allowed nested entry", "https://docs.example.org/guide", true},
		{"unlisted domain", "https://other.com/", false},
		{"blocked subdomain of allowed", "https://tracker.example.com/pixel", false},
		{"subdomain of blocked entry", "https://cdn.tracker.example.com/x", false},
		{"blocked social domain", "https://facebook.com/profile", false},
		{"suffix but not subdomain", "https://notexample.com/", false},
		{"ftp scheme", "ftp://example.com/file", false},
		{"mailto scheme", "mailto:user@example.com", false},
		{"unparseable", "http://exa mple.com/%zz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := scope.IsInScope(tt.url); got != tt.want {
				t.Errorf("IsInScope(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

// TestBlocklistPrecedence tests that a blocklist match wins even when the
// hostname is also covered by the allowlist.
func TestBlocklistPrecedence(t *testing.T) {
	t.Parallel()

	// example.com is simultaneously allowed and blocked.
	scope := New([]string{"example.com"}, []string{"example.com"})

	if scope.IsInScope("https://example.com/") {
		t.Error("expected blocklist to take precedence over allowlist")
	}
	if scope.IsInScope("https://sub.example.com/") {
		t.Error("expected blocklist to cover subdomains of a blocked entry")
	}
}

// TestIsExcluded tests exclusion pattern matching on discovered links.
func TestIsExcluded(t *testing.T) {
	t.Parallel()

	scope := New(
		[]string{"example.com"},
		nil,
		WithExcludePatterns([]string{
			`\.(jpg|jpeg|png|gif|pdf|zip|mp4)$`,
			`\?utm_`,
			`^tel:`,
			`^mailto:`,
		}),
	)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"plain page", "https://example.com/about", false},
		{"image link", "https://example.com/logo.png", true},
		{"pdf link", "https://example.com/report.pdf", true},
		{"tracker params", "https://example.com/page?utm_source=mail", true},
		{"tel link", "tel:+1555123456", true},
		{"mailto link", "mailto:hi@example.com", true},
		{"query without tracker", "https://example.com/search?q=go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := scope.IsExcluded(tt.url); got != tt.want {
				t.Errorf("IsExcluded(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

// TestIsExcludedNoPatterns tests that an empty pattern list disables the check.
func TestIsExcludedNoPatterns(t *testing.T) {
	t.Parallel()

	scope := New([]string{"example.com"}, nil)
	if scope.IsExcluded("https://example.com/photo.jpg") {
		t.Error("expected no exclusions when no patterns are configured")
	}
}

// TestInvalidExcludePattern tests that a bad regex is skipped, not fatal.
func TestInvalidExcludePattern(t *testing.T) {
	t.Parallel()

	scope := New([]string{"example.com"}, nil,
		WithExcludePatterns([]string{`([`, `\.pdf$`}))

	if !scope.IsExcluded("https://example.com/file.pdf") {
		t.Error("expected valid pattern to survive an invalid sibling")
	}
}

// TestNormalizeHostname tests hostname normalization.
func TestNormalizeHostname(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Example.COM", "example.com"},
		{"www.example.com", "example.com"},
		{"  www.Example.com  ", "example.com"},
		{"wwwexample.com", "wwwexample.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHostname(tt.in); got != tt.want {
			t.Errorf("NormalizeHostname(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
