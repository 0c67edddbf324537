package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveRelativeLinks rewrites relative a[href] and img[src] values in an
// HTML fragment against baseURL, so links written in a commit message
// (e.g. "docs/setup.md") point at the repository instead of nowhere.
// If baseURL is empty or not absolute, returns the fragment unchanged.
//
// Not rewritten: anchors, absolute URLs, mailto: and other schemes.
func ResolveRelativeLinks(fragment, baseURL string) (string, error) {
	if baseURL == "" || fragment == "" {
		return fragment, nil
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return fragment, nil
	}
	// Treat the base as a directory so "a.md" resolves under it.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		rewriteNode(n, base)
	}

	return renderFragment(nodes)
}

// parseFragment parses HTML with a <body> context to avoid wrapper elements.
func parseFragment(content string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(content), context)
}

// renderFragment renders parsed nodes back to a string.
func renderFragment(nodes []*html.Node) (string, error) {
	var buf strings.Builder
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode traverses the tree and resolves relative references.
func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", base)
		case atom.A:
			rewriteAttr(n, "href", base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

// rewriteAttr resolves a single attribute if it holds a relative reference.
func rewriteAttr(n *html.Node, attrName string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativeRef(attr.Val) {
			continue
		}
		ref, err := url.Parse(attr.Val)
		if err != nil {
			continue
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeRef reports whether ref is a relative path reference.
func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
