package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelector matches elements whose text must never appear in the
// rendering: code, styling, and page chrome.
const noiseSelector = "script, style, nav, aside, footer, header, iframe, noscript"

// blockSelector matches the block-level elements the rendering linearizes,
// in document order.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote"

// UntitledPage is the title fallback when a document carries no usable
// title element or heading.
const UntitledPage = "Untitled Page"

// Document is a parsed HTML page. A single parse serves title extraction,
// text rendering, and link harvesting.
type Document struct {
	doc *goquery.Document
}

// Parse parses HTML bytes into a Document. Malformed markup does not fail:
// the underlying parser repairs what it can, and extraction degrades to
// fewer blocks rather than an error.
func Parse(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// Title returns the page title: the <title> element when present, otherwise
// the first <h1>, then the first <h2>, then the "Untitled Page" placeholder.
func (d *Document) Title() string {
	if title := collapseSpace(d.doc.Find("title").First().Text()); title != "" {
		return title
	}
	for _, tag := range []string{"h1", "h2"} {
		if heading := collapseSpace(d.doc.Find(tag).First().Text()); heading != "" {
			return heading
		}
	}
	return UntitledPage
}

// Text renders the document as markdown-flavored text blocks joined by one
// blank line: headings as #-repeated-by-level plus text, list items as "- ",
// blockquotes as "> ", paragraphs bare. Empty blocks are skipped.
//
// Noise elements are removed from the document first, so calling Text before
// Links keeps navigation links out of the rendering but not out of the link
// harvest; callers that need both should call Links first.
func (d *Document) Text() string {
	d.doc.Find(noiseSelector).Remove()

	var blocks []string
	d.doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		text := collapseSpace(s.Text())
		if text == "" {
			return
		}

		tag := goquery.NodeName(s)
		switch {
		case len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6':
			level := int(tag[1] - '0')
			blocks = append(blocks, strings.Repeat("#", level)+" "+text)
		case tag == "li":
			blocks = append(blocks, "- "+text)
		case tag == "blockquote":
			blocks = append(blocks, "> "+text)
		default:
			blocks = append(blocks, text)
		}
	})

	return strings.Join(blocks, "\n\n")
}

// Links returns the href attribute of every anchor in the document, in
// document order, without resolution or filtering. The crawl engine owns
// normalization and admission.
func (d *Document) Links() []string {
	var hrefs []string
	d.doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && strings.TrimSpace(href) != "" {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// collapseSpace trims a string and collapses internal whitespace runs to a
// single space, mirroring how browsers render element text.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
