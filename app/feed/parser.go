package feed

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

const rfc822UTC = "Mon, 02 Jan 2006 15:04:05 +0000"

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses raw feed bytes and returns the feed title plus normalized
// entries in document order.
func (p *Parser) Run(data []byte) (string, []Entry, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		entries = append(entries, p.normalizeItem(item))
	}

	return parsed.Title, entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	return Entry{
		Identity: Identity(item.GUID, item.Link, item.Title),
		Title:    item.Title,
		Link:     item.Link,
		Summary:  item.Description,
		PubDate:  p.resolvePubDate(item),
	}
}

// Identity computes the deduplication key for an entry. The upstream id may
// be empty, in which case link + title alone identify the item; two items
// sharing both are treated as the same item even across feeds.
func Identity(upstreamID, link, title string) string {
	hash := sha256.Sum256([]byte(upstreamID + link + title))
	return hex.EncodeToString(hash[:])
}

// resolvePubDate prefers the published date over updated, taking gofeed's
// parsed value when present and falling back to a lenient parse of the raw
// string. An unparseable date yields an empty PubDate, never an error.
func (p *Parser) resolvePubDate(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(rfc822UTC)
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format(rfc822UTC)
	}

	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			return t.UTC().Format(rfc822UTC)
		}
	}

	return ""
}

// FormatPubDate renders t in the output feed's RFC 822 style.
func FormatPubDate(t time.Time) string {
	return t.UTC().Format(rfc822UTC)
}
