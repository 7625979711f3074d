package feedlist

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Feed is one source feed from the input list.
type Feed struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

// Load reads a feed list from an OPML or YAML file, deduplicated by URL
// with the first title winning. Order follows the input document.
func Load(path string) ([]Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed list: %w", err)
	}

	var feeds []Feed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		feeds, err = parseYAML(data)
	default:
		feeds, err = parseOPML(data)
	}
	if err != nil {
		return nil, err
	}

	return dedupeByURL(feeds), nil
}

// Filter keeps feeds whose URL contains substr. An empty substr keeps all.
func Filter(feeds []Feed, substr string) []Feed {
	if substr == "" {
		return feeds
	}

	filtered := make([]Feed, 0, len(feeds))
	for _, f := range feeds {
		if strings.Contains(f.URL, substr) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func parseOPML(data []byte) ([]Feed, error) {
	var doc opmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse OPML: %w", err)
	}

	var feeds []Feed
	var walk func(outlines []opmlOutline)
	walk = func(outlines []opmlOutline) {
		for _, o := range outlines {
			if o.XMLURL != "" {
				title := o.Text
				if title == "" {
					title = o.Title
				}
				if title == "" {
					title = "Feed"
				}
				feeds = append(feeds, Feed{Title: title, URL: o.XMLURL})
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Body.Outlines)

	return feeds, nil
}

func parseYAML(data []byte) ([]Feed, error) {
	var feeds []Feed
	if err := yaml.Unmarshal(data, &feeds); err != nil {
		return nil, fmt.Errorf("failed to parse YAML feed list: %w", err)
	}

	valid := make([]Feed, 0, len(feeds))
	for _, f := range feeds {
		if f.URL == "" {
			continue
		}
		if f.Title == "" {
			f.Title = "Feed"
		}
		valid = append(valid, f)
	}
	return valid, nil
}

func dedupeByURL(feeds []Feed) []Feed {
	seen := make(map[string]bool, len(feeds))
	out := make([]Feed, 0, len(feeds))
	for _, f := range feeds {
		if seen[f.URL] {
			continue
		}
		seen[f.URL] = true
		out = append(out, f)
	}
	return out
}
