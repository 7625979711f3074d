package feed

import (
	"strings"
	"testing"
)

func TestExtractPrefersArticleRegion(t *testing.T) {
	extractor := NewExtractor()

	html := `<html><body>
		<nav>site navigation</nav>
		<main>main region text</main>
		<article><p>first paragraph</p><p>second paragraph</p></article>
	</body></html>`

	text := extractor.Run(html)

	if !strings.Contains(text, "first paragraph") || !strings.Contains(text, "second paragraph") {
		t.Errorf("Expected article text, got: %q", text)
	}

	if strings.Contains(text, "site navigation") || strings.Contains(text, "main region") {
		t.Errorf("Text outside the article region should be excluded, got: %q", text)
	}
}

func TestExtractFallsBackToMainThenBody(t *testing.T) {
	extractor := NewExtractor()

	withMain := `<html><body><div>chrome</div><main>the main content</main></body></html>`
	if text := extractor.Run(withMain); !strings.Contains(text, "the main content") {
		t.Errorf("Expected main region text, got: %q", text)
	}

	bodyOnly := `<html><body><p>plain body content</p></body></html>`
	if text := extractor.Run(bodyOnly); !strings.Contains(text, "plain body content") {
		t.Errorf("Expected body text, got: %q", text)
	}
}

func TestExtractRemovesScriptsAndStyles(t *testing.T) {
	extractor := NewExtractor()

	html := `<html><body><article>
		<script>var tracking = true;</script>
		<style>.ad { display: none }</style>
		<noscript>enable javascript</noscript>
		<p>visible text</p>
	</article></body></html>`

	text := extractor.Run(html)

	if !strings.Contains(text, "visible text") {
		t.Errorf("Expected visible text, got: %q", text)
	}

	for _, junk := range []string{"tracking", "display: none", "enable javascript"} {
		if strings.Contains(text, junk) {
			t.Errorf("Non-content markup %q should be removed", junk)
		}
	}
}

func TestExtractCollapsesNewlineRuns(t *testing.T) {
	extractor := NewExtractor()

	html := "<html><body><article><pre>top\n\n\n\n\nbottom</pre></article></body></html>"

	text := extractor.Run(html)

	if strings.Contains(text, "\n\n\n") {
		t.Errorf("Runs of 3+ newlines should collapse to 2, got: %q", text)
	}

	if !strings.Contains(text, "top") || !strings.Contains(text, "bottom") {
		t.Errorf("Content around collapsed newlines should survive, got: %q", text)
	}
}

func TestExtractMalformedMarkup(t *testing.T) {
	extractor := NewExtractor()

	// Unclosed tags parse best-effort, never panic or error
	text := extractor.Run(`<html><body><article><p>broken <b>markup`)

	if !strings.Contains(text, "broken") || !strings.Contains(text, "markup") {
		t.Errorf("Malformed markup should degrade to best-effort text, got: %q", text)
	}
}

func TestStripTags(t *testing.T) {
	result := StripTags(`<p>Hello <b>world</b></p><script>alert(1)</script>`)

	if !strings.Contains(result, "Hello") || !strings.Contains(result, "world") {
		t.Errorf("Expected visible text, got: %q", result)
	}

	if strings.Contains(result, "alert") {
		t.Errorf("Script content should be stripped, got: %q", result)
	}
}

func TestStripTagsPlainText(t *testing.T) {
	if result := StripTags("no markup at all"); result != "no markup at all" {
		t.Errorf("Plain text should pass through, got: %q", result)
	}
}
