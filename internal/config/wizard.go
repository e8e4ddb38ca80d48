package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// docsDirCandidates are checked in order when guessing the docs directory.
var docsDirCandidates = []string{"docs", "content", "src/pages/docs", "documentation"}

// detectDocsDir returns the first existing candidate directory, or "docs".
func detectDocsDir() string {
	for _, dir := range docsDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "docs"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docsite! Let's configure your documentation site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.SiteName = strings.TrimSpace(name)

	// 2. Docs directory.
	docsPrompt := promptui.Prompt{
		Label:   "Documentation directory",
		Default: detectDocsDir(),
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs directory: %w", err)
	}
	cfg.DocsDir = strings.TrimSpace(docsDir)

	// 3. Star badge repository.
	repoPrompt := promptui.Prompt{
		Label:   "GitHub repository for the star badge (owner/name, empty to disable)",
		Default: cfg.Stars.Repo,
		Validate: func(s string) error {
			s = strings.Trim(strings.TrimSpace(s), "/")
			if s == "" || strings.Count(s, "/") == 1 {
				return nil
			}
			return fmt.Errorf("expected owner/name")
		},
	}
	repo, err := repoPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}
	cfg.Stars.Repo = strings.Trim(strings.TrimSpace(repo), "/")

	// 4. Layout mode.
	layoutPrompt := promptui.Select{
		Label: "Page chrome",
		Items: []string{
			"full   - header, menu, footer and anchor panel",
			"bare   - content and menu only (no documentation header)",
		},
	}
	layoutIdx, _, err := layoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("layout selection: %w", err)
	}
	cfg.ShowDoc = layoutIdx == 0

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
