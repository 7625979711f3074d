package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Input/output paths
	FeedsPath string `long:"feeds" env:"FEEDS_PATH" description:"Input feed list (OPML or YAML)" required:"true"`
	OutDir    string `long:"out-dir" env:"OUT_DIR" default:"output/feeds" description:"Output directory for translated RSS files"`
	DBPath    string `long:"db" env:"DB_PATH" default:"output/cache.sqlite" description:"SQLite cache database path"`
	URLFilter string `long:"filter" env:"FEED_URL_FILTER" description:"Only process feeds whose URL contains this substring"`

	// Translation configuration
	TargetLang   string `long:"target-lang" env:"TRANSLATE_TARGET_LANG" default:"en" description:"Target language code"`
	Translator   string `long:"translator" env:"TRANSLATOR" default:"openai" description:"Translation backend (openai, gemini)"`
	OpenAIModel  string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4.1-mini" description:"OpenAI model identifier"`
	OpenAIAPIKey string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key"`
	GeminiModel  string `long:"gemini-model" env:"GEMINI_MODEL" default:"gemini-1.5-flash" description:"Gemini model identifier"`
	GeminiAPIKey string `long:"gemini-api-key" env:"GEMINI_API_KEY" description:"Gemini API key"`

	// Pipeline tuning
	HTTPTimeout  int `long:"timeout" env:"HTTP_TIMEOUT" default:"20" description:"HTTP fetch timeout in seconds"`
	MaxItems     int `long:"max-items" env:"MAX_ITEMS_PER_FEED" default:"30" description:"Maximum items processed per feed"`
	MaxChars     int `long:"max-chars" env:"MAX_TRANSLATE_CHARS" default:"12000" description:"Character budget for text sent to translation"`
	FetchWorkers int `long:"fetch-workers" env:"FETCH_WORKERS" default:"4" description:"Concurrent article fetch workers"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"rss-babel/1.0 (+feed translation pipeline)" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	targetLang := strings.ToLower(strings.TrimSpace(raw.TargetLang))
	tag, err := language.Parse(targetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", raw.TargetLang, err)
	}
	// Parse is lenient with well-formed junk, so require a recognized base
	// language subtag on top of it.
	if _, conf := tag.Base(); conf < language.High {
		return nil, fmt.Errorf("invalid target language %q: unknown base language", raw.TargetLang)
	}

	cfg := &Cfg{
		FeedsPath:    raw.FeedsPath,
		OutDir:       raw.OutDir,
		DBPath:       raw.DBPath,
		URLFilter:    raw.URLFilter,
		TargetLang:   targetLang,
		Translator:   strings.ToLower(strings.TrimSpace(raw.Translator)),
		OpenAIModel:  raw.OpenAIModel,
		OpenAIAPIKey: raw.OpenAIAPIKey,
		GeminiModel:  raw.GeminiModel,
		GeminiAPIKey: raw.GeminiAPIKey,
		HTTPTimeout:  raw.HTTPTimeout,
		MaxItems:     raw.MaxItems,
		MaxChars:     raw.MaxChars,
		FetchWorkers: raw.FetchWorkers,
		UserAgent:    raw.UserAgent,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
