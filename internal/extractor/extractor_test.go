package extractor

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, html string) *Document {
	t.Helper()
	doc, err := Parse([]byte(html))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return doc
}

// TestTitle tests the title fallback chain.
func TestTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"title element preferred",
			`<html><head><title>Store Front</title></head><body><h1>Welcome</h1></body></html>`,
			"Store Front",
		},
		{
			"falls back to h1",
			`<html><body><h1>Welcome</h1><h2>Deals</h2></body></html>`,
			"Welcome",
		},
		{
			"falls back to h2",
			`<html><body><h2>Deals</h2></body></html>`,
			"Deals",
		},
		{
			"placeholder when nothing usable",
			`<html><body><p>text only</p></body></html>`,
			UntitledPage,
		},
		{
			"empty title element skipped",
			`<html><head><title>  </title></head><body><h1>Real</h1></body></html>`,
			"Real",
		},
		{
			"whitespace collapsed",
			"<html><head><title>Two\n   Lines</title></head></html>",
			"Two Lines",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := mustParse(t, tt.html)
			if got := doc.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestText tests the block-level rendering.
func TestText(t *testing.T) {
	t.Parallel()

	t.Run("heading then paragraph, script discarded", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<h1>Title</h1><p>Body</p><script>ignored()</script>`)
		got := doc.Text()
		want := "# Title\n\nBody"
		if got != want {
			t.Errorf("Text() = %q, want %q", got, want)
		}
		if strings.Contains(got, "ignored") {
			t.Error("script contents leaked into rendering")
		}
	})

	t.Run("all block kinds", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<html><body>
			<h2>Section</h2>
			<p>First paragraph.</p>
			<ul><li>one</li><li>two</li></ul>
			<blockquote>quoted</blockquote>
			<h6>Fine print</h6>
		</body></html>`)

		want := strings.Join([]string{
			"## Section",
			"First paragraph.",
			"- one",
			"- two",
			"> quoted",
			"###### Fine print",
		}, "\n\n")

		if got := doc.Text(); got != want {
			t.Errorf("Text() = %q, want %q", got, want)
		}
	})

	t.Run("noise elements removed", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<html><body>
			<nav><li>Home</li><li>About</li></nav>
			<header><h1>Site Banner</h1></header>
			<p>Content.</p>
			<aside><p>Sidebar.</p></aside>
			<footer><p>Copyright.</p></footer>
			<noscript><p>Enable JS.</p></noscript>
			<style>p { color: red }</style>
		</body></html>`)

		if got := doc.Text(); got != "Content." {
			t.Errorf("Text() = %q, want %q", got, "Content.")
		}
	})

	t.Run("empty blocks skipped", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<p>  </p><p>kept</p><li></li>`)
		if got := doc.Text(); got != "kept" {
			t.Errorf("Text() = %q, want %q", got, "kept")
		}
	})

	t.Run("malformed fragment degrades gracefully", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<h1>Open heading<p>Unclosed <b>paragraph`)
		got := doc.Text()
		if !strings.Contains(got, "# Open heading") {
			t.Errorf("expected heading in rendering, got %q", got)
		}
		if !strings.Contains(got, "Unclosed paragraph") {
			t.Errorf("expected repaired paragraph in rendering, got %q", got)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, ``)
		if got := doc.Text(); got != "" {
			t.Errorf("Text() = %q, want empty", got)
		}
	})
}

// TestLinks tests raw anchor harvesting.
func TestLinks(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><body>
		<a href="/relative">one</a>
		<a href="https://example.com/abs">two</a>
		<a href="#section">three</a>
		<a href="">empty ignored</a>
		<a>no href ignored</a>
	</body></html>`)

	links := doc.Links()
	want := []string{"/relative", "https://example.com/abs", "#section"}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(links), links)
	}
	for i, w := range want {
		if links[i] != w {
			t.Errorf("links[%d] = %q, want %q", i, links[i], w)
		}
	}
}
