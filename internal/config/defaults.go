package config

import "time"

// DefaultExcludes are glob patterns never rendered as pages.
var DefaultExcludes = []string{
	"**/_*",
	"**/_*/**",
	"**/.*",
	"**/node_modules/**",
	"**/drafts/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteName:     "Haystack",
		DocsDir:      "docs",
		OutputDir:    "public",
		Language:     "en",
		Locale:       "en",
		Version:      "latest",
		Versions:     []string{"latest"},
		ShowDoc:      true,
		WrapperClass: "doc-wrapper",
		Include:      []string{"**/*.md", "**/*.html"},
		Exclude:      append([]string(nil), DefaultExcludes...),
		HeaderOffset: 62,
		Stars: StarsConfig{
			Repo:         "deepset-ai/haystack",
			APIBase:      "https://api.github.com",
			CountKey:     "haystack-website.stargazers",
			FetchTimeKey: "haystack-website.stargazers_fetch_time",
			TTL:          time.Hour,
			Timeout:      10 * time.Second,
			CacheDB:      ".docsite/cache.db",
		},
		Server: ServerConfig{
			Port:  8080,
			Watch: true,
		},
	}
}
