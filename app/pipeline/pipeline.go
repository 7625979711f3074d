package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/rss-babel/app/cfg"
	"github.com/lysyi3m/rss-babel/app/database"
	"github.com/lysyi3m/rss-babel/app/feed"
	"github.com/lysyi3m/rss-babel/app/feedlist"
	"github.com/lysyi3m/rss-babel/app/translate"
)

const (
	// minArticleChars is the extraction threshold below which the entry's
	// own summary is used instead of the fetched article text.
	minArticleChars = 400

	// snippetChars bounds the original-language excerpt kept for audit.
	snippetChars = 600

	// translateTimeout caps a single backend call so a stuck call degrades
	// to source-text substitution instead of blocking the run.
	translateTimeout = 90 * time.Second
)

// Pipeline drives fetch, extract, translate, cache and assembly for every
// source feed. It is the sole writer to the cache and seen-item stores.
type Pipeline struct {
	fetcher    *feed.Fetcher
	parser     *feed.Parser
	extractor  *feed.Extractor
	generator  *feed.Generator
	translator translate.Translator
	cacheRepo  database.CacheRepository
	seenRepo   database.SeenRepository

	outDir       string
	targetLang   string
	maxItems     int
	maxChars     int
	fetchWorkers int
}

func New(c *cfg.Cfg, translator translate.Translator,
	cacheRepo database.CacheRepository, seenRepo database.SeenRepository) *Pipeline {
	workers := c.FetchWorkers
	if workers < 1 {
		// SetLimit(0) would block every submitted task
		workers = 1
	}

	return &Pipeline{
		fetcher:      feed.NewFetcher(time.Duration(c.HTTPTimeout)*time.Second, c.UserAgent),
		parser:       feed.NewParser(),
		extractor:    feed.NewExtractor(),
		generator:    feed.NewGenerator(),
		translator:   translator,
		cacheRepo:    cacheRepo,
		seenRepo:     seenRepo,
		outDir:       c.OutDir,
		targetLang:   c.TargetLang,
		maxItems:     c.MaxItems,
		maxChars:     c.MaxChars,
		fetchWorkers: workers,
	}
}

// Run processes feeds in list order. Per-entry failures (fetch, extract,
// translate, date parse) degrade locally; store and output-write failures
// abort the run because dedup and billing correctness depend on them.
func (p *Pipeline) Run(ctx context.Context, feeds []feedlist.Feed) error {
	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, src := range feeds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processFeed(ctx, src); err != nil {
			return fmt.Errorf("feed %q: %w", src.Title, err)
		}
	}

	return nil
}

func (p *Pipeline) processFeed(ctx context.Context, src feedlist.Feed) error {
	slog.Info("Processing feed", "title", src.Title, "url", src.URL)

	entries := p.loadEntries(ctx, src)
	if len(entries) > p.maxItems {
		entries = entries[:p.maxItems]
	}

	pending, skipped, err := p.filterSeen(entries)
	if err != nil {
		return err
	}

	sources := p.collectSourceTexts(ctx, pending)

	items := make([]feed.OutputItem, 0, len(pending))
	for i, entry := range pending {
		translated, err := p.translateCached(ctx, sources[i])
		if err != nil {
			return err
		}

		items = append(items, p.buildItem(entry, sources[i], translated))

		// Marking happens only after the item is built, so a crash
		// mid-entry leaves it eligible for the next run.
		if err := p.seenRepo.MarkSeen(entry.Identity); err != nil {
			return err
		}
	}

	path := filepath.Join(p.outDir, feed.OutputFilename(src.Title, p.targetLang))
	doc := p.generator.Run(src.Title, p.targetLang, items)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write output document: %w", err)
	}

	slog.Info("Feed written", "path", path, "items", len(items), "skipped_seen", skipped)
	return nil
}

// loadEntries fetches and parses the source feed. Either step failing yields
// an empty entry set; the feed still produces an (empty) output document.
func (p *Pipeline) loadEntries(ctx context.Context, src feedlist.Feed) []feed.Entry {
	raw, err := p.fetcher.Run(ctx, src.URL)
	if err != nil {
		slog.Warn("Failed to fetch feed", "url", src.URL, "error", err)
		return nil
	}

	feedTitle, entries, err := p.parser.Run([]byte(raw))
	if err != nil {
		slog.Warn("Failed to parse feed", "url", src.URL, "error", err)
		return nil
	}

	slog.Debug("Feed parsed", "title", feedTitle, "entries", len(entries))
	return entries
}

func (p *Pipeline) filterSeen(entries []feed.Entry) ([]feed.Entry, int, error) {
	var pending []feed.Entry
	skipped := 0
	for _, entry := range entries {
		seen, err := p.seenRepo.IsSeen(entry.Identity)
		if err != nil {
			return nil, 0, err
		}
		if seen {
			skipped++
			continue
		}
		pending = append(pending, entry)
	}
	return pending, skipped, nil
}

// collectSourceTexts runs the fetch+extract stage with a bounded worker
// pool. Results land in an indexed slice so feed order is preserved no
// matter which worker finishes first.
func (p *Pipeline) collectSourceTexts(ctx context.Context, pending []feed.Entry) []string {
	sources := make([]string, len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fetchWorkers)
	for i, entry := range pending {
		g.Go(func() error {
			sources[i] = p.sourceText(gctx, entry)
			return nil
		})
	}
	g.Wait()

	return sources
}

// sourceText resolves the text to translate for one entry: extracted article
// text when the fetch succeeds and yields enough content, else the entry's
// own summary stripped of markup. The result is truncated to the configured
// character budget.
func (p *Pipeline) sourceText(ctx context.Context, entry feed.Entry) string {
	var article string
	if entry.Link != "" {
		html, err := p.fetcher.Run(ctx, entry.Link)
		if err != nil {
			slog.Warn("Article fetch failed, using summary", "url", entry.Link, "error", err)
		} else {
			article = p.extractor.Run(html)
		}
	}

	text := strings.TrimSpace(article)
	if utf8.RuneCountInString(text) < minArticleChars {
		text = feed.StripTags(entry.Summary)
	}

	return feed.Truncate(text, p.maxChars)
}

// translateCached serves the translation from the cache when possible and
// calls the backend exactly once per unique (backend, language, text)
// otherwise. A failed or empty backend call substitutes the source text, and
// the substitution is cached under the same key. A transient outage therefore
// pins untranslated text to that key until the cache row is cleared externally.
func (p *Pipeline) translateCached(ctx context.Context, source string) (string, error) {
	key := database.CacheKey(p.translator.Name(), p.targetLang, source)

	cached, ok, err := p.cacheRepo.Get(key)
	if err != nil {
		return "", err
	}
	if ok && cached != "" {
		slog.Debug("Translation cache hit", "key", key)
		return cached, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, translateTimeout)
	translated, terr := p.translator.Translate(callCtx, source, p.targetLang)
	cancel()
	if terr != nil || translated == "" {
		slog.Warn("Translation failed, substituting source text",
			"translator", p.translator.Name(), "error", terr)
		translated = source
	}

	if err := p.cacheRepo.Put(key, p.translator.Name(), p.targetLang, source, translated); err != nil {
		return "", err
	}

	return translated, nil
}

func (p *Pipeline) buildItem(entry feed.Entry, source, translated string) feed.OutputItem {
	snippet := source
	if runes := []rune(snippet); len(runes) > snippetChars {
		snippet = string(runes[:snippetChars]) + "..."
	}

	var desc strings.Builder
	desc.WriteString("<p><b>Translated:</b></p><p>")
	desc.WriteString(strings.ReplaceAll(translated, "\n", "<br/>"))
	desc.WriteString("</p><hr/><p><b>Original snippet:</b></p><p>")
	desc.WriteString(strings.ReplaceAll(snippet, "\n", "<br/>"))
	desc.WriteString("</p>")

	return feed.OutputItem{
		Title:       "[" + strings.ToUpper(p.targetLang) + "] " + entry.Title,
		Link:        entry.Link,
		GUID:        entry.Identity,
		PubDate:     entry.PubDate,
		Description: desc.String(),
	}
}
