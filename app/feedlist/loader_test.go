package feedlist

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Subscriptions</title></head>
  <body>
    <outline text="Caribbean">
      <outline text="Granma" type="rss" xmlUrl="https://granma.cu/feed"/>
      <outline title="Diario Libre" type="rss" xmlUrl="https://diariolibre.com/rss"/>
    </outline>
    <outline text="Granma duplicate" type="rss" xmlUrl="https://granma.cu/feed"/>
    <outline type="rss" xmlUrl="https://untitled.example/feed"/>
  </body>
</opml>`

const sampleYAML = `- title: Granma
  url: https://granma.cu/feed
- title: Diario Libre
  url: https://diariolibre.com/rss
- title: Granma again
  url: https://granma.cu/feed
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoadOPML(t *testing.T) {
	path := writeTemp(t, "feeds.opml", sampleOPML)

	feeds, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(feeds) != 3 {
		t.Fatalf("Expected 3 deduplicated feeds, got %d: %+v", len(feeds), feeds)
	}

	if feeds[0].Title != "Granma" || feeds[0].URL != "https://granma.cu/feed" {
		t.Errorf("First title wins on duplicate URLs, got: %+v", feeds[0])
	}

	if feeds[1].Title != "Diario Libre" {
		t.Errorf("Expected title attribute fallback, got: %+v", feeds[1])
	}

	if feeds[2].Title != "Feed" {
		t.Errorf("Untitled outlines default to 'Feed', got: %+v", feeds[2])
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "feeds.yaml", sampleYAML)

	feeds, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(feeds) != 2 {
		t.Fatalf("Expected 2 deduplicated feeds, got %d", len(feeds))
	}

	if feeds[0].Title != "Granma" {
		t.Errorf("Order should follow the document, got: %+v", feeds[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.opml")); err == nil {
		t.Error("Expected error for missing feed list")
	}
}

func TestLoadMalformedOPML(t *testing.T) {
	path := writeTemp(t, "broken.opml", "<opml><body><outline")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed OPML")
	}
}

func TestFilter(t *testing.T) {
	feeds := []Feed{
		{Title: "A", URL: "https://news.google.com/rss?ceid=CU:es"},
		{Title: "B", URL: "https://news.google.com/rss?ceid=US:en"},
		{Title: "C", URL: "https://granma.cu/feed"},
	}

	filtered := Filter(feeds, ":es")
	if len(filtered) != 1 || filtered[0].Title != "A" {
		t.Errorf("Expected only the :es feed, got: %+v", filtered)
	}

	if got := Filter(feeds, ""); len(got) != 3 {
		t.Error("Empty filter should keep all feeds")
	}
}
