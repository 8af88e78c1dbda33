package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrRegionNotFound is returned when the target element of an injection
// does not exist in the host document.
var ErrRegionNotFound = errors.New("injection region not found")

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is escaped so it cannot close the style element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if pos := afterOpeningTag(htmlContent, lowerHTML, "<body"); pos != -1 {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes </ so the stylesheet cannot end the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// RegionInjector places a fragment inside an element of a host document.
type RegionInjector interface {
	InjectIntoRegion(ctx context.Context, htmlContent, regionID, fragment string) (string, error)
}

// RegionInjection replaces the content of the element carrying a given id.
type RegionInjection struct{}

// InjectIntoRegion replaces whatever the element with id regionID contains
// with fragment. The region is expected to be an empty placeholder; nested
// markup inside it is not tracked.
func (r *RegionInjection) InjectIntoRegion(ctx context.Context, htmlContent, regionID, fragment string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pattern := regexp.MustCompile(`(?is)<[a-z][a-z0-9]*\b[^>]*\bid="` + regexp.QuoteMeta(regionID) + `"[^>]*>(.*?)</[a-z][a-z0-9]*\s*>`)
	loc := pattern.FindStringSubmatchIndex(htmlContent)
	if loc == nil {
		return "", fmt.Errorf("%w: #%s", ErrRegionNotFound, regionID)
	}

	// loc[2]:loc[3] is the current region content.
	return htmlContent[:loc[2]] + fragment + htmlContent[loc[3]:], nil
}

// afterOpeningTag returns the position just past the ">" of the first tag
// starting with prefix, or -1.
func afterOpeningTag(htmlContent, lowerHTML, prefix string) int {
	idx := strings.Index(lowerHTML, prefix)
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}
