package cmd

import (
	"fmt"

	"github.com/brogergvhs/docscrape/internal/httpcache"

	"github.com/spf13/cobra"
)

var flagCacheClear bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show or clear the response cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := httpcache.OpenSQLite(cfg.CacheFile())
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()

		if flagCacheClear || flagClearCache {
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("Cache cleared.")
		}

		n, err := store.Count()
		if err != nil {
			return err
		}

		fmt.Printf("Cache: %s\nEntries: %d\n", store.Path(), n)
		return nil
	},
}

func init() {
	cacheCmd.Flags().BoolVar(&flagCacheClear, "clear", false, "remove every cached response")
	rootCmd.AddCommand(cacheCmd)
}
