// Package extractor turns HTML documents into a title and a block-level
// text rendering.
//
// The rendering is a lossy, order-preserving linearization: headings,
// paragraphs, list items, and blockquotes are emitted in document order with
// markdown-style prefixes, while nested structure and inline formatting are
// discarded. Script, style, and navigation chrome are removed before the
// walk, so their text never leaks into the output.
//
// Design decision: We parse with goquery rather than walking html.Node
// directly because selector-based removal of noise elements and the grouped
// block query are far shorter to express, and goquery returns matches in
// document order, which the rendering depends on.
package extractor
