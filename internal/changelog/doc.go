// Package changelog parses, mutates, and regenerates Keep a Changelog
// formatted markdown (https://keepachangelog.com/en/1.0.0/).
//
// This package implements:
//   - A line-oriented tokenizer and recursive-descent parser producing a
//     validated Changelog model
//   - Release and change-entry mutation (add releases, entries, links)
//   - Byte-stable markdown rendering, including derived compare links
//   - Terminal-styled output for CLI display
//
// Parsing and rendering form a round trip: rendering a parsed document and
// parsing it again yields identical output on every subsequent render.
package changelog
