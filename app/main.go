package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lysyi3m/rss-babel/app/cfg"
	"github.com/lysyi3m/rss-babel/app/database"
	"github.com/lysyi3m/rss-babel/app/feedlist"
	"github.com/lysyi3m/rss-babel/app/pipeline"
	"github.com/lysyi3m/rss-babel/app/translate"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)
	slog.Info("Starting rss-babel", "version", appCfg.Version, "target_lang", appCfg.TargetLang, "translator", appCfg.Translator)

	feeds, err := feedlist.Load(appCfg.FeedsPath)
	if err != nil {
		slog.Error("Failed to load feed list", "path", appCfg.FeedsPath, "error", err)
		os.Exit(1)
	}
	feeds = feedlist.Filter(feeds, appCfg.URLFilter)
	slog.Info("Feed list loaded", "path", appCfg.FeedsPath, "feeds", len(feeds))

	translator, err := translate.Resolve(appCfg)
	if err != nil {
		slog.Error("Failed to resolve translation backend", "error", err)
		os.Exit(1)
	}
	if closer, ok := translator.(io.Closer); ok {
		defer closer.Close()
	}

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Debug("Database ready", "migration_version", version, "dirty", dirty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(appCfg, translator,
		database.NewCacheRepository(db), database.NewSeenRepository(db))

	if err := p.Run(ctx, feeds); err != nil {
		slog.Error("Pipeline run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Pipeline run complete", "feeds", len(feeds))
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
