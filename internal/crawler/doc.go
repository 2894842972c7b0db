// Package crawler implements the per-seed breadth-first crawl engine.
//
// # Architecture
//
// The engine is built around the Session type, which coordinates one crawl
// run. Each seed gets its own frontier (a FIFO queue of url/depth tasks),
// its own visited set, and its own counters; nothing is shared across seeds,
// so the same URL reached from two seeds is fetched twice.
//
// Per dequeued task the engine applies, in order: visited/depth discard,
// domain-policy admission, retry-aware fetch, content extraction, artifact
// persistence, metadata recording, link harvesting, and a fixed polite
// delay. Every failure past the seed source is local to its task: a dead
// page is logged and the queue keeps draining.
//
// # URL normalization
//
// Discovered links are resolved against the page they appeared on, stripped
// of fragments, and canonicalized (lowercase scheme and host, "/" for the
// empty path) before they touch the visited set, so fragment-only variants
// of a resource dedup to a single fetch.
package crawler
