package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/nishanthcgit/haystack-website/internal/config"
	"github.com/nishanthcgit/haystack-website/internal/layout"
	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/progress"
	"github.com/nishanthcgit/haystack-website/internal/stars"
	"github.com/nishanthcgit/haystack-website/internal/walker"
)

// StarSource resolves the star count baked into rendered pages.
type StarSource interface {
	Load(ctx context.Context) (int, bool)
}

// Generator converts a docs directory into a static HTML site.
type Generator struct {
	cfg        *config.Config
	md         goldmark.Markdown
	log        *slog.Logger
	progress   progress.Reporter
	stars      StarSource
	liveReload bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// WithProgress sets the progress reporter.
func WithProgress(r progress.Reporter) Option {
	return func(g *Generator) { g.progress = r }
}

// WithStars resolves an initial star count for every page at build time.
func WithStars(s StarSource) Option {
	return func(g *Generator) { g.stars = s }
}

// WithLiveReload makes pages connect to the dev server's reload socket.
func WithLiveReload(enabled bool) Option {
	return func(g *Generator) { g.liveReload = enabled }
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		log:      slog.Default(),
		progress: progress.Nop{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Page is a discovered page after parsing.
type Page struct {
	walker.Page
	Title     string
	Headings  []outline.Heading
	Benchmark bool
	// Content is the rendered body for markdown and fragment pages, or the
	// whole file for documents.
	Content []byte
}

// Result summarises a build.
type Result struct {
	BuildID   string
	Pages     int
	StarCount *int
	Duration  time.Duration
}

// Discover lists the pages the site is built from.
func (g *Generator) Discover() ([]walker.Page, error) {
	pages, err := walker.Walk(walker.Config{
		RootDir: g.cfg.DocsDir,
		Include: g.cfg.Include,
		Exclude: g.cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("discovering pages: %w", err)
	}
	return pages, nil
}

// Generate builds the full static site into the output directory.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()

	found, err := g.Discover()
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no pages found in %s", g.cfg.DocsDir)
	}

	pages := make([]*Page, 0, len(found))
	for _, wp := range found {
		p, err := g.LoadPage(wp)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", wp.RelPath, err)
		}
		pages = append(pages, p)
	}

	res := &Result{BuildID: uuid.NewString(), Pages: len(pages)}
	if g.stars != nil {
		if n, ok := g.stars.Load(ctx); ok {
			res.StarCount = &n
		}
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	assets, err := g.writeAssets(res.BuildID)
	if err != nil {
		return nil, fmt.Errorf("writing assets: %w", err)
	}

	paths := make([]string, 0, len(pages))
	titles := make(map[string]string, len(pages))
	for _, p := range pages {
		paths = append(paths, p.RelPath)
		titles[p.RelPath] = p.Title
	}
	menu := layout.BuildMenu(paths, titles)

	g.progress.Start(len(pages))
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.writePage(p, menu, assets, res); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", p.RelPath, err)
		}
		g.progress.Update(i+1, p.RelPath)
	}
	g.progress.Finish()

	if err := writeManifest(g.cfg, res, pages); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	res.Duration = time.Since(start)
	g.log.Info("site built",
		"pages", res.Pages,
		"output", g.cfg.OutputDir,
		"build_id", res.BuildID,
		"duration", res.Duration)
	return res, nil
}

// LoadPage reads and parses a single page.
func (g *Generator) LoadPage(wp walker.Page) (*Page, error) {
	src, err := os.ReadFile(wp.Path)
	if err != nil {
		return nil, err
	}

	p := &Page{
		Page:      wp,
		Benchmark: len(g.cfg.BenchmarkPages) > 0 && walker.MatchesInclude(wp.RelPath, g.cfg.BenchmarkPages),
	}

	switch wp.Kind {
	case walker.KindMarkdown:
		doc := g.md.Parser().Parse(text.NewReader(src))
		p.Headings = outline.FromMarkdown(doc, src)
		var buf bytes.Buffer
		if err := g.md.Renderer().Render(&buf, src, doc); err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
		p.Content = []byte(rewriteMDLinks(buf.String()))
	case walker.KindFragment:
		out, headings, err := outline.FromHTML(src)
		if err != nil {
			return nil, fmt.Errorf("parsing html: %w", err)
		}
		p.Content = out
		p.Headings = headings
	default:
		p.Content = src
	}

	p.Title = pageTitle(p.Headings, wp.RelPath)
	return p, nil
}

// Outline returns the headings of the page at relPath inside the docs dir.
func (g *Generator) Outline(relPath string) ([]outline.Heading, error) {
	p, err := g.loadPath(relPath)
	if err != nil {
		return nil, err
	}
	return p.Headings, nil
}

// loadPath loads a page by its path relative to the docs dir. Paths that
// escape the docs dir are rejected.
func (g *Generator) loadPath(relPath string) (*Page, error) {
	clean := filepath.ToSlash(filepath.Clean("/" + relPath))[1:]
	if clean == "" {
		return nil, fmt.Errorf("empty page path")
	}
	abs := filepath.Join(g.cfg.DocsDir, filepath.FromSlash(clean))
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", relPath)
	}

	head := make([]byte, 512)
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	n, _ := f.Read(head)
	f.Close()

	kind := walker.DetectKind(abs, head[:n])
	if kind == walker.KindUnknown {
		return nil, fmt.Errorf("%s is not a page", relPath)
	}
	return g.LoadPage(walker.Page{Path: abs, RelPath: clean, Size: info.Size(), Kind: kind})
}

type assetInfo struct {
	version string
	wasm    string
	logo    string
}

// writeAssets writes the stylesheet, scripts, logo and optional browser module.
func (g *Generator) writeAssets(buildID string) (assetInfo, error) {
	a := assetInfo{version: buildID[:8]}
	out := g.cfg.OutputDir

	files := map[string]string{
		"style.css": layout.CSS,
		"script.js": layout.Script,
	}
	if g.liveReload {
		files["livereload.js"] = layout.LiveReload
	}
	if g.cfg.Wasm.Module != "" {
		files["wasm_boot.js"] = layout.WasmBoot
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(out, name), []byte(content), 0o644); err != nil {
			return a, err
		}
	}

	if g.cfg.Wasm.Module != "" {
		a.wasm = filepath.Base(g.cfg.Wasm.Module)
		if err := copyFile(g.cfg.Wasm.Module, filepath.Join(out, a.wasm)); err != nil {
			return a, fmt.Errorf("copying wasm module: %w", err)
		}
		execJS := g.cfg.Wasm.ExecJS
		if execJS == "" {
			var err error
			if execJS, err = locateWasmExec(); err != nil {
				return a, err
			}
		}
		if err := copyFile(execJS, filepath.Join(out, "wasm_exec.js")); err != nil {
			return a, fmt.Errorf("copying wasm_exec.js: %w", err)
		}
	}

	if g.cfg.Logo != "" {
		a.logo = filepath.Base(g.cfg.Logo)
		if err := copyFile(g.cfg.Logo, filepath.Join(out, a.logo)); err != nil {
			return a, fmt.Errorf("copying logo: %w", err)
		}
	}
	return a, nil
}

// writePage renders p into the output directory. Documents are copied verbatim.
func (g *Generator) writePage(p *Page, menu *layout.Menu, assets assetInfo, res *Result) error {
	outPath := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(layout.OutputPath(p.RelPath)))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	if p.Kind == walker.KindDocument {
		return os.WriteFile(outPath, p.Content, 0o644)
	}

	current := "doc"
	if p.Benchmark {
		current = "benchmark"
	}
	props := layout.Props{
		Language:     g.cfg.Language,
		Locale:       g.cfg.Locale,
		SiteName:     g.cfg.SiteName,
		Title:        p.Title,
		Children:     template.HTML(p.Content),
		Headings:     p.Headings,
		MenuList:     menu,
		ID:           p.RelPath,
		Current:      current,
		Versions:     g.cfg.Versions,
		Version:      g.cfg.Version,
		WrapperClass: g.cfg.WrapperClass,
		IsBenchMark:  p.Benchmark,
		ShowDoc:      g.cfg.ShowDoc,
		Logo:         assets.logo,
		StarCount:    res.StarCount,
		Stars: layout.StarBadge{
			Repo:    g.cfg.Stars.Repo,
			APIBase: g.cfg.Stars.APIBase,
			Keys:    stars.Keys{Count: g.cfg.Stars.CountKey, FetchTime: g.cfg.Stars.FetchTimeKey},
			TTL:     g.cfg.Stars.TTL,
		},
		HeaderOffset: g.cfg.HeaderOffset,
		AssetVersion: assets.version,
		WasmModule:   assets.wasm,
		LiveReload:   g.liveReload,
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return layout.Render(f, props)
}

// pageTitle returns the first top-level heading, or a name derived from the path.
func pageTitle(headings []outline.Heading, relPath string) string {
	for _, h := range headings {
		if h.Depth == 1 {
			return h.Value
		}
	}
	name := filepath.Base(relPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// rewriteMDLinks changes .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	result := strings.ReplaceAll(content, `.md"`, `.html"`)
	return strings.ReplaceAll(result, `.md#`, `.html#`)
}
