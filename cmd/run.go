package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brogergvhs/docscrape/internal/config"
	"github.com/brogergvhs/docscrape/internal/downloader"
	"github.com/brogergvhs/docscrape/internal/fetch"
	"github.com/brogergvhs/docscrape/internal/httpcache"
	"github.com/brogergvhs/docscrape/internal/output"
	"github.com/brogergvhs/docscrape/internal/scraper"
	"github.com/brogergvhs/docscrape/internal/ui"
	"github.com/brogergvhs/docscrape/internal/util"

	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, string, error) {
	return config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		NoProgress:   flagNoProgress,
		Output:       flagOutput,
		BaseDir:      flagBaseDir,
		CachePath:    flagCachePath,
	})
}

func runMode(cmd *cobra.Command, mode string) error {
	cfg, usedPath, err := loadConfig()
	if err != nil {
		return err
	}

	if err := output.Validate(cfg.Output); err != nil {
		return err
	}

	logSvc, err := ui.NewLogger(ui.LogOptions{
		Debug:      cfg.Debug,
		Dir:        cfg.LogsDir(),
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return fmt.Errorf("cannot set up logging: %w", err)
	}
	defer func() {
		_ = logSvc.Close()
	}()

	logSvc.Infof("parser started")
	logSvc.Infof("command line arguments: mode=%s args=[%s]", mode, strings.Join(os.Args[1:], " "))
	logSvc.Debugf("config: %s", usedPath)

	store, err := httpcache.OpenSQLite(cfg.CacheFile())
	if err != nil {
		return fmt.Errorf("cannot open cache %s: %w", cfg.CacheFile(), err)
	}
	defer func() {
		_ = store.Close()
	}()

	if flagClearCache {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("cannot clear cache: %w", err)
		}
		logSvc.Infof("cache cleared: %s", store.Path())
	}

	ctx, stop := util.SetupInterruptHandler(cmd.Context(), cfg.DownloadsDir())
	defer stop()

	session := util.NewSession(util.SessionOptions{
		Timeout:           cfg.Timeout,
		UserAgent:         util.PickUserAgent(cfg.UserAgent),
		Retries:           cfg.Retries,
		RetryWait:         500 * time.Millisecond,
		RequestsPerSecond: cfg.RequestsPerSecond,
		CloudflareBypass:  cfg.CloudflareBypass,
		Cache:             store,
		Logger:            logSvc,
	})

	pm := ui.NewProgressManager(!cfg.NoProgress)
	stats := &ui.Stats{}

	scr := scraper.New(cfg, fetch.New(session, logSvc, stats), downloader.New(session, logSvc, pm), logSvc, pm)
	scr.Selection = scraper.Selection{Range: flagRange, List: flagList}

	start := time.Now()
	table, err := scr.Run(ctx, mode)
	pm.Close()
	if err != nil {
		logSvc.Errorf("%s failed: %v", mode, err)
		return err
	}

	if _, err := output.Control(table, output.Options{
		Format:         cfg.Output,
		Mode:           mode,
		ResultsDir:     cfg.ResultsDir(),
		DateTimeFormat: cfg.DateTimeFormat,
		Log:            logSvc,
	}); err != nil {
		return err
	}

	logSvc.Infof("%s in %s", stats.Summary(), time.Since(start).Round(time.Millisecond))
	logSvc.Infof("parser finished")
	return nil
}
