package feed

import (
	"bytes"
	"encoding/xml"
	"time"
)

// Generator assembles the translated RSS 2.0 document for one source feed.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run builds the output document. Items appear in input order; an empty item
// slice still yields a well-formed document.
func (g *Generator) Run(feedTitle, targetLang string, items []OutputItem) string {
	var buf bytes.Buffer

	channelTitle := feedTitle + " (Translated → " + targetLang + ")"

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channelTitle, 4)
	buf.WriteString("    <link></link>\n")
	g.writeElement(&buf, "description", channelTitle, 4)
	g.writeElement(&buf, "lastBuildDate", FormatPubDate(time.Now()), 4)

	for _, item := range items {
		g.writeItem(&buf, item)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *Generator) writeItem(buf *bytes.Buffer, item OutputItem) {
	buf.WriteString("    <item>\n")

	g.writeElement(buf, "title", item.Title, 6)

	// The link element is always present, even for entries without one.
	buf.WriteString("      <link>")
	xml.EscapeText(buf, []byte(item.Link))
	buf.WriteString("</link>\n")

	buf.WriteString(`      <guid isPermaLink="false">`)
	xml.EscapeText(buf, []byte(item.GUID))
	buf.WriteString("</guid>\n")

	if item.PubDate != "" {
		g.writeElement(buf, "pubDate", item.PubDate, 6)
	}

	// The description carries generated markup, so it goes out raw inside
	// CDATA rather than entity-escaped.
	buf.WriteString("      <description><![CDATA[")
	buf.WriteString(item.Description)
	buf.WriteString("]]></description>\n")

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
