package index

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/mdcrawl/mdcrawl/internal/model"
)

// Index is the ordered collection of page records from all seeds.
// Records are appended in processing order: seed order first, breadth-first
// order within each seed. It is safe for concurrent use so seed crawls may
// run in parallel.
type Index struct {
	mu      sync.Mutex
	records []model.PageRecord
}

// New creates an empty index.
func New() *Index {
	return &Index{records: make([]model.PageRecord, 0)}
}

// Add appends one record. It implements the crawl engine's Recorder.
func (i *Index) Add(record model.PageRecord) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.records = append(i.records, record)
}

// Records returns a copy of the accumulated records.
func (i *Index) Records() []model.PageRecord {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]model.PageRecord, len(i.records))
	copy(out, i.records)
	return out
}

// Len returns the number of accumulated records.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.records)
}

// WriteJSON serializes the full collection as an indented JSON array.
// This is the single end-of-run write; nothing is flushed incrementally,
// so an interrupted run loses the index but keeps artifacts and logs.
func (i *Index) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(i.Records())
}
