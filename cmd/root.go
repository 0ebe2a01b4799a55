package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/brogergvhs/docscrape/internal/scraper"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagClearCache   bool
	flagNoProgress   bool
	flagOutput       string
	flagBaseDir      string
	flagCachePath    string
)

var rootCmd = &cobra.Command{
	Use:   "docscrape [mode]",
	Short: "Scrape the Python documentation and PEP index into tables",
	Long: "Scrape the Python documentation and PEP index.\n\n" +
		"Modes: whats-new, latest-versions, download, pep. Without a mode an interactive picker is shown.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := promptui.Select{
			Label: "Select parser mode",
			Items: scraper.ModeNames(),
		}

		mode, err := pickMode(prompt.Run)
		if err != nil {
			return err
		}

		return runMode(cmd, mode)
	},
}

func pickMode(run func() (int, string, error)) (string, error) {
	_, mode, err := run()
	if err != nil {
		return "", fmt.Errorf("select mode: %w", err)
	}
	return mode, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	pf.BoolVarP(&flagClearCache, "clear-cache", "c", false, "clear the response cache before running")
	pf.StringVarP(&flagOutput, "output", "o", "", "output format: pretty or file (default: plain rows)")
	pf.BoolVar(&flagNoProgress, "no-progress", false, "hide progress bars")
	pf.StringVar(&flagBaseDir, "base-dir", "", "directory for downloads/, results/, logs/ and the cache")
	pf.StringVar(&flagCachePath, "cache", "", "path of the response cache database")
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
