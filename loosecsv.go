// # LooseCSV: A Streaming Reader and Writer for Real-World CSV
//
// LooseCSV is a Go library for incremental parsing and emission of delimited text as it
// actually occurs in the wild: heterogeneous row widths, optional headers, whitespace
// padding, spreadsheet escape conventions, and mixed line endings. It never requires the
// whole input in memory and reports precise record/field coordinates for malformed data.
//
// # Features
//
// - Streaming reader with configurable separator, whitespace stripping, and an optional header directory mapping column names to positions.
// - Support for the spreadsheet conventions `="..."` (literal-preserving quoting) and `"0` (embedded NUL), plus optional MySQL-style backslash escapes.
// - Buffered writer whose escaping decisions mirror the reader exactly, so write-read round trips are lossless and write-read-write is byte stable.
// - Structured error reporting via `ParseError`, `ErrMalformedQuote`, and `ErrUnterminatedQuote`.
// - Fold/each/collect traversal helpers for both raw rows and header-aware records.
// - Named-stream convenience loading and saving with `-` for stdio and transparent gzip/bzip2/xz/zstd handling.
//
// # Getting Started
//
// The module path is `github.com/vbelous/loosecsv`. See examples/main.go for a runnable
// walkthrough of reading, header access, and writing.
package loosecsv
