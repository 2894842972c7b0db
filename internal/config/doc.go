// Package config provides configuration for the crawler: crawl behavior
// knobs, the domain allow/block lists, exclusion patterns, output locations,
// and the seed list loader. Values are populated from defaults, then the
// optional YAML configuration file, then CLI flags, and passed through the
// application by value rather than held in global state.
package config
