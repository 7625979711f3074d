package feed

import (
	"strings"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Storm Tracker</title>
<item>
  <title>Storm warning</title>
  <link>https://x/y</link>
  <guid isPermaLink="false">42</guid>
  <description>A storm is coming</description>
  <pubDate>Mon, 03 Jul 2023 10:00:00 +0200</pubDate>
</item>
<item>
  <title>No date item</title>
  <link>https://x/z</link>
  <description>Still valid</description>
  <pubDate>not a real date</pubDate>
</item>
</channel>
</rss>`

func TestParseFeed(t *testing.T) {
	parser := NewParser()

	title, entries, err := parser.Run([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if title != "Storm Tracker" {
		t.Errorf("Expected feed title 'Storm Tracker', got: %q", title)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got: %d", len(entries))
	}

	first := entries[0]
	if first.Title != "Storm warning" || first.Link != "https://x/y" {
		t.Errorf("Unexpected first entry: %+v", first)
	}

	if first.Summary != "A storm is coming" {
		t.Errorf("Expected summary from description, got: %q", first.Summary)
	}

	// +0200 source time normalized to UTC
	if first.PubDate != "Mon, 03 Jul 2023 08:00:00 +0000" {
		t.Errorf("Unexpected pubDate: %q", first.PubDate)
	}
}

func TestParseUnusableDateOmitted(t *testing.T) {
	parser := NewParser()

	_, entries, err := parser.Run([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if entries[1].PubDate != "" {
		t.Errorf("Unparseable date should yield empty PubDate, got: %q", entries[1].PubDate)
	}
}

func TestParseInvalidFeed(t *testing.T) {
	parser := NewParser()

	if _, _, err := parser.Run([]byte("this is not a feed")); err == nil {
		t.Error("Expected error for unparseable feed data")
	}
}

func TestIdentityStable(t *testing.T) {
	a := Identity("42", "https://x/y", "Storm warning")
	b := Identity("42", "https://x/y", "Storm warning")

	if a != b {
		t.Error("Identity must be a pure function of its inputs")
	}

	if len(a) != 64 {
		t.Errorf("Expected sha256 hex identity, got length %d", len(a))
	}
}

func TestIdentityDegradesWithoutUpstreamID(t *testing.T) {
	withID := Identity("42", "https://x/y", "Storm warning")
	withoutID := Identity("", "https://x/y", "Storm warning")

	if withID == withoutID {
		t.Error("Presence of the upstream id must change the identity")
	}

	// Degraded path is still stable across recomputation
	if withoutID != Identity("", "https://x/y", "Storm warning") {
		t.Error("Degraded identity must be stable")
	}
}

func TestIdentityDistinguishesItems(t *testing.T) {
	a := Identity("", "https://x/a", "Same title")
	b := Identity("", "https://x/b", "Same title")

	if a == b {
		t.Error("Items with different links must have different identities even when titles collide")
	}
}

func TestParseEntryIdentityUsesGUID(t *testing.T) {
	parser := NewParser()

	_, entries, err := parser.Run([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := Identity("42", "https://x/y", "Storm warning")
	if entries[0].Identity != expected {
		t.Error("Entry identity should combine guid, link and title")
	}

	if strings.Contains(entries[0].Identity, " ") {
		t.Error("Identity should be a bare hex digest")
	}
}
