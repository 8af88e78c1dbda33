package pipeline

import (
	"regexp"
	"strings"
)

// DefaultTitle is used when the document has no top-level heading.
const DefaultTitle = "Document"

// DefaultPDFFilename is used when the document has no top-level heading.
const DefaultPDFFilename = "document.pdf"

// titlePattern matches the first "# heading" line. The match is deliberately
// narrow: only a single hash at the start of a line counts.
var titlePattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// slugPattern matches runs of characters that are not ASCII letters or digits.
var slugPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)

// ExtractHeading returns the trimmed text of the first top-level heading and
// whether one was found.
func ExtractHeading(markdown string) (string, bool) {
	m := titlePattern.FindStringSubmatch(markdown)
	if m == nil {
		return "", false
	}
	heading := strings.TrimSpace(m[1])
	return heading, heading != ""
}

// ExtractTitle returns the first top-level heading, or DefaultTitle.
func ExtractTitle(markdown string) string {
	if heading, ok := ExtractHeading(markdown); ok {
		return heading
	}
	return DefaultTitle
}

// Slugify collapses every run of non-alphanumeric characters to "_" and
// lower-cases the result.
func Slugify(s string) string {
	return strings.ToLower(slugPattern.ReplaceAllString(s, "_"))
}

// PDFFilename derives the download name from the first top-level heading.
func PDFFilename(markdown string) string {
	heading, ok := ExtractHeading(markdown)
	if !ok {
		return DefaultPDFFilename
	}
	return Slugify(heading) + ".pdf"
}
