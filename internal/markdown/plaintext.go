package markdown

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// stripMarkup extracts the text content of rendered HTML, normalizing all
// whitespace runs to single spaces so the result truncates cleanly.
func stripMarkup(rendered []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		return "", err
	}
	var text strings.Builder
	collectText(doc, &text)
	return strings.Join(strings.Fields(text.String()), " "), nil
}

func collectText(n *html.Node, text *strings.Builder) {
	if n.Type == html.TextNode {
		text.WriteString(n.Data)
		text.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, text)
	}
}
