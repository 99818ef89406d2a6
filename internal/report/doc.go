// Package report renders prediction results, profiles and feature vectors.
//
// Three writers implement the Writer interface:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter: JSON for scripts
//   - MarkdownWriter: GitHub-flavored markdown tables
package report
