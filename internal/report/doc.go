// Package report renders scan summaries in multiple output formats.
//
// The Writer interface abstracts the output format; SimpleWriter produces
// human-readable text grouped by search block, JSONWriter emits the
// machine-readable run export, and MarkdownWriter produces GitHub Flavored
// Markdown suitable for documentation and sharing.
//
// Design decision: Writers receive an assembled Summary value rather than
// the Scanner itself, so formats can be rendered from stored results without
// re-running anything, and tests can build summaries by hand.
package report
