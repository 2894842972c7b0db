// Package model defines the core data structures shared across the crawler.
// It contains the per-page metadata record and the per-seed counters, kept
// free of behavior so that every other package can depend on it without
// import cycles.
package model
