package cmd

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/nishanthcgit/haystack-website/internal/config"
	"github.com/nishanthcgit/haystack-website/internal/db"
	"github.com/nishanthcgit/haystack-website/internal/stars"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newStarLoader opens the star cache and returns a loader over it. It returns
// a nil loader when no repository is configured. The caller closes the cache.
func newStarLoader(cfg *config.Config) (*stars.Loader, *db.DB, error) {
	if cfg.Stars.Repo == "" {
		return nil, nil, nil
	}
	cache, err := db.Open(cfg.Stars.CacheDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening star cache: %w", err)
	}
	client := stars.NewGitHubClient(cfg.Stars.APIBase, cfg.Stars.Repo, cfg.Stars.Timeout)
	loader := stars.NewLoader(cache, client,
		stars.WithKeys(stars.Keys{Count: cfg.Stars.CountKey, FetchTime: cfg.Stars.FetchTimeKey}),
		stars.WithTTL(cfg.Stars.TTL),
		stars.WithLogger(slog.Default()),
	)
	return loader, cache, nil
}

// openBrowser opens url in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
