package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nishanthcgit/haystack-website/internal/config"
	"github.com/nishanthcgit/haystack-website/internal/layout"
	"github.com/nishanthcgit/haystack-website/internal/outline"
)

// ManifestFile is written to the output directory after every build.
const ManifestFile = "build.json"

// Manifest describes a finished build.
type Manifest struct {
	BuildID     string         `json:"build_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	SiteName    string         `json:"site_name"`
	Version     string         `json:"version"`
	StarCount   *int           `json:"star_count"`
	Pages       []ManifestPage `json:"pages"`
}

// ManifestPage describes one rendered page.
type ManifestPage struct {
	Source      string            `json:"source"`
	Output      string            `json:"output"`
	Title       string            `json:"title"`
	Kind        string            `json:"kind"`
	ContentHash string            `json:"content_hash"`
	Benchmark   bool              `json:"benchmark,omitempty"`
	Headings    []outline.Heading `json:"headings"`
}

// Find returns the page whose source or output path equals p.
func (m *Manifest) Find(p string) (ManifestPage, bool) {
	for _, page := range m.Pages {
		if page.Source == p || page.Output == p {
			return page, true
		}
	}
	return ManifestPage{}, false
}

func writeManifest(cfg *config.Config, res *Result, pages []*Page) error {
	m := Manifest{
		BuildID:     res.BuildID,
		GeneratedAt: time.Now().UTC(),
		SiteName:    cfg.SiteName,
		Version:     cfg.Version,
		StarCount:   res.StarCount,
		Pages:       make([]ManifestPage, 0, len(pages)),
	}
	for _, p := range pages {
		headings := p.Headings
		if headings == nil {
			headings = []outline.Heading{}
		}
		m.Pages = append(m.Pages, ManifestPage{
			Source:      p.RelPath,
			Output:      layout.OutputPath(p.RelPath),
			Title:       p.Title,
			Kind:        p.Kind.String(),
			ContentHash: p.ContentHash,
			Benchmark:   p.Benchmark,
			Headings:    headings,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.OutputDir, ManifestFile), data, 0o644)
}

// ReadManifest loads the manifest of the last build in outputDir.
func ReadManifest(outputDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	return &m, nil
}
