package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CrossOriginAnonymous requests images without credentials so remote
// pictures can be drawn by the PDF renderer.
const CrossOriginAnonymous = "anonymous"

// ResourceOptions controls RewriteResources.
type ResourceOptions struct {
	// SourceDir resolves relative img[src] and a[href] to file:// URLs.
	// Empty leaves relative references alone.
	SourceDir string

	// CrossOrigin, when set, is written as the crossorigin attribute of
	// every remote image that does not already carry one.
	CrossOrigin string
}

func (o ResourceOptions) empty() bool {
	return o.SourceDir == "" && o.CrossOrigin == ""
}

// RewriteResources prepares image and link references for rendering outside
// the editor. Works on full documents and on fragments; fragments are
// rendered back without an <html><body> wrapper.
//
// Media elements, srcset, CSS url() and script[src] are never touched.
func RewriteResources(htmlContent string, opts ResourceOptions) (string, error) {
	if opts.empty() {
		return htmlContent, nil
	}

	if opts.SourceDir != "" {
		abs, err := filepath.Abs(opts.SourceDir)
		if err != nil {
			return "", err
		}
		opts.SourceDir = abs
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walk(doc, func(n *html.Node) {
		switch n.DataAtom {
		case atom.Img:
			if opts.SourceDir != "" {
				rewriteAttr(n, "src", opts.SourceDir)
			}
			if opts.CrossOrigin != "" {
				setCrossOrigin(n, opts.CrossOrigin)
			}
		case atom.A:
			if opts.SourceDir != "" {
				rewriteAttr(n, "href", opts.SourceDir)
			}
		}
	})

	return renderHTML(doc, isFragment)
}

// NormalizeFragment parses htmlContent as body content and renders it back.
// Unclosed elements, comments and raw-text elements such as <textarea> or
// <script> come out closed, so the result cannot swallow markup placed
// after it in a larger page.
func NormalizeFragment(htmlContent string) (string, error) {
	nodes, err := parseBodyFragment(htmlContent)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func parseBodyFragment(content string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(content), body)
}

// parseHTML parses a full document or, for anything not starting with
// <!doctype or <html, a body fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	nodes, err := parseBodyFragment(content)
	if err != nil {
		return nil, true, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walk visits element nodes depth first.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func rewriteAttr(n *html.Node, key, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		absPath := filepath.Join(sourceDir, attr.Val)
		// Traversal outside sourceDir keeps the original value.
		if !isPathUnderDir(absPath, sourceDir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(absPath)
	}
}

func setCrossOrigin(n *html.Node, mode string) {
	remote := false
	for _, attr := range n.Attr {
		switch attr.Key {
		case "crossorigin":
			return
		case "src":
			remote = isRemoteURL(attr.Val)
		}
	}
	if remote {
		n.Attr = append(n.Attr, html.Attribute{Key: "crossorigin", Val: mode})
	}
}

func isRemoteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}

// isRelativePath reports whether ref is a local relative path.
func isRelativePath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || isRemoteURL(ref) {
		return false
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "file://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "mailto:") {
		return false
	}
	return !filepath.IsAbs(ref)
}

func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL, Windows paths included.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
