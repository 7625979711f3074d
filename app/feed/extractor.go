package feed

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Extractor pulls best-effort plain text out of an HTML page. Scripts,
// styles and noscript blocks are dropped, then the first of article, main,
// body is used as the content region.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Run returns the extracted text, or an empty string when the document has
// no usable content region. Malformed markup is parsed best-effort and never
// produces an error.
func (e *Extractor) Run(htmlText string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	var candidate *goquery.Selection
	for _, selector := range []string{"article", "main", "body"} {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			candidate = sel
			break
		}
	}
	if candidate == nil {
		return ""
	}

	text := joinTextNodes(candidate, "\n")
	return excessNewlines.ReplaceAllString(text, "\n\n")
}

// StripTags reduces an HTML fragment (typically an entry summary) to its
// visible text, space-joined.
func StripTags(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	doc.Find("script, style, noscript").Remove()
	return joinTextNodes(doc.Selection, " ")
}

// joinTextNodes concatenates the trimmed text nodes under sel with sep,
// skipping whitespace-only nodes.
func joinTextNodes(sel *goquery.Selection, sep string) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return strings.Join(parts, sep)
}
