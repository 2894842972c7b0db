package index

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/mdcrawl/mdcrawl/internal/model"
)

// SeedResult pairs a seed URL with the counters its crawl produced.
type SeedResult struct {
	// Seed is the canonical seed URL.
	Seed string

	// Stats holds the seed's crawl counters.
	Stats model.Stats
}

// SummaryWriter renders the end-of-run summary in GitHub-flavored Markdown.
//
// Design decision: We use the nao1215/markdown library rather than string
// concatenation because it keeps table alignment and escaping correct as
// the summary grows.
type SummaryWriter struct {
	output io.Writer
}

// NewSummaryWriter creates a SummaryWriter targeting the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{output: output}
}

// Write renders the run summary: one row per seed plus run totals.
func (w *SummaryWriter) Write(results []SeedResult, finished time.Time) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Summary")
	md.PlainText("")
	md.PlainText("Run finished: " + finished.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	rows := make([][]string, 0, len(results)+1)
	var total model.Stats
	for _, r := range results {
		total.Add(r.Stats)
		rows = append(rows, []string{
			"`" + r.Seed + "`",
			strconv.Itoa(r.Stats.Processed),
			strconv.Itoa(r.Stats.Failed),
			strconv.Itoa(r.Stats.Blocked),
			strconv.Itoa(r.Stats.Saved),
		})
	}
	rows = append(rows, []string{
		"**Total**",
		strconv.Itoa(total.Processed),
		strconv.Itoa(total.Failed),
		strconv.Itoa(total.Blocked),
		strconv.Itoa(total.Saved),
	})

	md.H2("Seeds")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Seed", "Processed", "Failed", "Blocked", "Saved"},
		Rows:   rows,
	})

	return md.Build()
}
