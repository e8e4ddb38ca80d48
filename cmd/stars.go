package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nishanthcgit/haystack-website/internal/stars"
)

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "Print the repository star count",
	Long:  `Prints the star count shown in the badge, using the local cache while it is fresh and GitHub otherwise.`,
	RunE:  runStars,
}

func init() {
	starsCmd.Flags().Bool("refresh", false, "ignore the cached fetch time and ask GitHub")
	starsCmd.Flags().Bool("cached", false, "print the cached count without contacting GitHub")
	rootCmd.AddCommand(starsCmd)
}

func runStars(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loader, cache, err := newStarLoader(cfg)
	if err != nil {
		return err
	}
	if loader == nil {
		return fmt.Errorf("no repository configured (set stars.repo in %s)", cfgFile)
	}
	defer cache.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Stars.Timeout+5*time.Second)
	defer cancel()

	if cachedOnly, _ := cmd.Flags().GetBool("cached"); cachedOnly {
		n, ok := loader.Cached(ctx)
		if !ok {
			return fmt.Errorf("no cached star count for %s", cfg.Stars.Repo)
		}
		fmt.Println(n)
		return nil
	}

	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		key := cfg.Stars.FetchTimeKey
		if key == "" {
			key = stars.DefaultKeys.FetchTime
		}
		// Without a fetch time the cache is stale.
		if err := cache.Delete(ctx, key); err != nil {
			return fmt.Errorf("resetting fetch time: %w", err)
		}
	}

	n, ok := loader.Load(ctx)
	if !ok {
		return fmt.Errorf("star count unavailable for %s", cfg.Stars.Repo)
	}
	fmt.Println(n)
	return nil
}
