// Package pipeline implements the HTML stages shared by preview and export:
//   - Markdown to HTML fragment conversion via Goldmark
//   - title and filename derivation from Document Text
//   - standalone document assembly from html/template layouts
//   - CSS and fragment injection into existing documents
//   - resource rewriting (relative paths, cross-origin images)
//
// Printing and PDF generation live in the root mdpdf package, which drives
// headless Chrome through go-rod.
package pipeline
