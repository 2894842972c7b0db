// Package main provides the entry point for the mdcrawl CLI.
//
// mdcrawl is a bounded-depth, domain-restricted web crawler. It fetches
// pages breadth-first from one or more seed URLs, converts each HTML page
// into a readable text rendering, and emits a structured metadata index of
// everything it processed.
//
// Usage:
//
//	mdcrawl crawl https://example.com/
//	mdcrawl crawl --seeds seeds.txt --allow example.com
//
// See --help for all available options.
package main

// main is the entry point for mdcrawl.
func main() {
	Execute()
}
