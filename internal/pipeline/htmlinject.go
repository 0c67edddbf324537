package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrStyleInjection indicates the document could not be parsed or rendered.
var ErrStyleInjection = errors.New("CSS injection failed")

// CSSInjector defines the contract for CSS injection into an HTML document.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) (string, error)
}

// HeadStyleInjection injects CSS as the last <style> element of <head>.
// The parser creates <head> when the document lacks one.
type HeadStyleInjection struct{}

// InjectCSS parses htmlContent, appends a <style> block to <head> and renders
// the document back. Empty CSS returns the content unchanged.
func (s *HeadStyleInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) (string, error) {
	if strings.TrimSpace(cssContent) == "" {
		return htmlContent, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInjection, err)
	}

	head := findElement(doc, atom.Head)
	if head == nil {
		return "", fmt.Errorf("%w: no <head> element", ErrStyleInjection)
	}

	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
	}
	// Raw text child: the renderer writes <style> content unescaped.
	style.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: sanitizeCSS(cssContent),
	})
	head.AppendChild(style)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleInjection, err)
	}
	return buf.String(), nil
}

// findElement returns the first element with the given atom, depth first.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
