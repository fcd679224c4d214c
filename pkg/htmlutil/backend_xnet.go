//go:build !nohtml

package htmlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"snapcheck/internal/feature"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func init() {
	impl = xnetBackend{}
	feature.Provide(FeatureHTML)
}

type xnetBackend struct{}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

type openTag struct {
	name   string
	offset int
}

func (xnetBackend) validate(data string) error {
	z := html.NewTokenizer(strings.NewReader(data))

	var stack []openTag
	offset := 0
	for {
		tt := z.Next()
		pos := offset
		offset += len(z.Raw())

		switch tt {
		case html.ErrorToken:
			if !errors.Is(z.Err(), io.EOF) {
				return newInvalidHTMLError(data, z.Err().Error(), pos)
			}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				return newInvalidHTMLError(data, "Unclosed tag "+top.name, top.offset)
			}
			return nil

		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); !voidElements[tag] {
				stack = append(stack, openTag{name: tag, offset: pos})
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			if len(stack) == 0 {
				return newInvalidHTMLError(data, "Unexpected end tag: "+tag, pos)
			}
			top := stack[len(stack)-1]
			if top.name != tag {
				return newInvalidHTMLError(data, fmt.Sprintf("Opening and ending tag mismatch: %s and %s", top.name, tag), pos)
			}
			stack = stack[:len(stack)-1]
		}
	}
}

// parse reads complete documents as such and everything else as a body
// fragment, so Pretty does not wrap snippets in <html><head><body>.
func parse(data string) (*html.Node, error) {
	lower := strings.ToLower(strings.TrimSpace(data))
	if strings.HasPrefix(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return html.Parse(strings.NewReader(data))
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(data), context)
	if err != nil {
		return nil, err
	}
	doc := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		doc.AppendChild(n)
	}
	return doc, nil
}

func (xnetBackend) selectElements(data, selector string) (string, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return "", fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	doc, err := parse(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	matches := sel.MatchAll(doc)
	if len(matches) == 0 {
		return "", &ElementsNotFoundError{Selector: selector}
	}

	var buf bytes.Buffer
	for _, n := range matches {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render %q match: %w", selector, err)
		}
	}
	return buf.String(), nil
}

func (xnetBackend) pretty(data string) (string, error) {
	doc, err := parse(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var sb strings.Builder
	writePretty(&sb, doc, 0)
	return strings.TrimRight(sb.String(), " \t\r\n"), nil
}

func writePretty(sb *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)

	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(sb, c, depth)
		}

	case html.DoctypeNode:
		sb.WriteString(indent + "<!DOCTYPE " + n.Data + ">\n")

	case html.CommentNode:
		sb.WriteString(indent + "<!--" + n.Data + "-->\n")

	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		if n.Parent == nil || n.Parent.Type != html.ElementNode || !rawTextElements[n.Parent.Data] {
			text = html.EscapeString(text)
		}
		sb.WriteString(indent + text + "\n")

	case html.ElementNode:
		if voidElements[n.Data] {
			sb.WriteString(indent + startTag(n, "/>") + "\n")
			return
		}
		sb.WriteString(indent + startTag(n, ">") + "\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(sb, c, depth+1)
		}
		sb.WriteString(indent + "</" + n.Data + ">\n")
	}
}

func startTag(n *html.Node, end string) string {
	var sb strings.Builder
	sb.WriteString("<" + n.Data)
	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + key
		}
		fmt.Fprintf(&sb, " %s=\"%s\"", key, html.EscapeString(attr.Val))
	}
	sb.WriteString(end)
	return sb.String()
}
