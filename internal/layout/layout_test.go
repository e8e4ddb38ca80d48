package layout

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/stars"
)

func TestBuildMenu(t *testing.T) {
	paths := []string{
		"index.md",
		"usage/pipelines.md",
		"usage/nodes.md",
		"guides/getting-started/install.md",
		"overview.html",
	}

	menu := BuildMenu(paths, map[string]string{"usage/pipelines.md": "Pipelines"})

	if menu.Name != "docs" || !menu.IsDir {
		t.Fatalf("root = %q (dir=%v), want docs dir", menu.Name, menu.IsDir)
	}
	// Directories first, then pages.
	if len(menu.Children) != 4 {
		t.Fatalf("root children = %d, want 4", len(menu.Children))
	}
	if menu.Children[0].Name != "guides" || menu.Children[1].Name != "usage" {
		t.Errorf("dirs = %q, %q; want guides, usage", menu.Children[0].Name, menu.Children[1].Name)
	}
	if menu.Children[2].Name != "index.md" || menu.Children[3].Name != "overview.html" {
		t.Errorf("pages = %q, %q; want index.md, overview.html", menu.Children[2].Name, menu.Children[3].Name)
	}

	usage := menu.Children[1]
	if usage.Children[0].Name != "nodes.md" || usage.Children[1].Title != "Pipelines" {
		t.Errorf("usage children not sorted or titled: %+v %+v", usage.Children[0], usage.Children[1])
	}

	gs := menu.Children[0].Children[0]
	if gs.Title != "Getting Started" || gs.Path != "guides/getting-started" {
		t.Errorf("nested dir = %q at %q, want Getting Started at guides/getting-started", gs.Title, gs.Path)
	}
}

func TestBuildMenuEmpty(t *testing.T) {
	if menu := BuildMenu(nil, nil); len(menu.Children) != 0 {
		t.Errorf("empty menu children = %d, want 0", len(menu.Children))
	}
}

func TestMenuToHTML(t *testing.T) {
	menu := BuildMenu([]string{"index.md", "usage/pipelines.md", "usage/nodes.md"}, nil)
	html := menu.ToHTML("usage/nodes.md", "../")

	if !strings.Contains(html, `<li class="dir expanded">`) {
		t.Error("ancestor directory of the active page should be expanded")
	}
	if !strings.Contains(html, `href="../usage/nodes.html" class="active"`) {
		t.Error("active page should link to its .html output and carry the active class")
	}
	if !strings.Contains(html, `href="../index.html"`) {
		t.Error("home link should point at the site root")
	}
	if strings.Contains(html, `href="../index.html" class="active"`) {
		t.Error("home link should not be active on a nested page")
	}
}

func TestComputeActiveAncestors(t *testing.T) {
	got := computeActiveAncestors("usage/pipelines/nodes.md")
	if !got["usage"] || !got["usage/pipelines"] || len(got) != 2 {
		t.Errorf("computeActiveAncestors = %v", got)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"index.md", "index.html"},
		{"usage/pipelines.md", "usage/pipelines.html"},
		{"benchmarks/overview.html", "benchmarks/overview.html"},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.input); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"index.md", ""},
		{"usage/pipelines.md", "../"},
		{"a/b/c.html", "../../"},
	}
	for _, tt := range tests {
		if got := BasePath(tt.input); got != tt.want {
			t.Errorf("BasePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatDirName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"getting-started", "Getting Started"},
		{"document_stores", "Document Stores"},
		{"usage", "Usage"},
	}
	for _, tt := range tests {
		if got := formatDirName(tt.input); got != tt.want {
			t.Errorf("formatDirName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func baseProps() Props {
	count := 1234
	return Props{
		Language: "en",
		Locale:   "en",
		SiteName: "Haystack",
		Title:    "Pipelines",
		Children: `<h2 id="Nodes">Nodes</h2><p>Text</p>`,
		Headings: []outline.Heading{
			{Value: "Nodes", Depth: 2},
			{Value: "Custom nodes", Depth: 3},
			{Value: "FAQ", Depth: 2},
		},
		MenuList:     BuildMenu([]string{"index.md", "usage/pipelines.md"}, nil),
		ID:           "usage/pipelines.md",
		Versions:     []string{"v1.0", "latest"},
		Version:      "latest",
		ShowDoc:      true,
		StarCount:    &count,
		HeaderOffset: 62,
		AssetVersion: "abc",
		Stars: StarBadge{
			Repo:    "deepset-ai/haystack",
			APIBase: stars.DefaultAPIBase,
			Keys:    stars.DefaultKeys,
			TTL:     time.Hour,
		},
	}
}

func render(t *testing.T, p Props) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderFullPage(t *testing.T) {
	out := render(t, baseProps())

	checks := []string{
		`<html lang="en"`,
		`<title>Pipelines · Haystack</title>`,
		`href="../style.css?v=abc"`,
		`<div class="doc-wrapper">`,
		`<nav class="menu" id="menu">`,
		`<div class="anchor-menu" id="anchor-menu">`,
		`data-anchor="Custom-nodes"`,
		`<span id="star-count">1234</span>`,
		`href="https://github.com/deepset-ai/haystack"`,
		`<div id="to-top" class="button-to-top"`,
		`<footer class="footer">`,
		`data-header-offset="62"`,
		`data-star-repo="deepset-ai/haystack"`,
		`data-star-ttl-ms="3600000"`,
		`data-star-count-key="` + stars.DefaultKeys.Count + `"`,
		`<script type="application/json" id="page-headings">`,
		`"value":"Custom nodes"`,
		`src="../script.js?v=abc"`,
		`class="version-select"`,
		`href="../../v1.0/index.html"`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
	if strings.Contains(out, "wasm_exec.js") {
		t.Error("page without a module should not load wasm_exec.js")
	}
}

func TestRenderNoHeadingsOmitsAnchorPanel(t *testing.T) {
	p := baseProps()
	p.Headings = nil
	out := render(t, p)

	if strings.Contains(out, `id="anchor-menu"`) {
		t.Error("anchor panel should be omitted when the page has no headings")
	}
	if !strings.Contains(out, `id="page-headings">[]</script>`) {
		t.Error("headings JSON should be an empty array")
	}
}

func TestRenderBenchmarkMode(t *testing.T) {
	p := baseProps()
	p.IsBenchMark = true
	out := render(t, p)

	if strings.Contains(out, `<footer`) {
		t.Error("benchmark pages should not render the footer")
	}
	if strings.Contains(out, `id="anchor-menu"`) {
		t.Error("benchmark pages should not render the anchor panel")
	}
	if !strings.Contains(out, `doc-content full-width`) {
		t.Error("benchmark content should be full width")
	}
}

func TestStarBadgeOnlyWithAnchorPanel(t *testing.T) {
	bench := baseProps()
	bench.IsBenchMark = true
	bare := baseProps()
	bare.Headings = nil

	for name, p := range map[string]Props{"benchmark": bench, "no headings": bare} {
		out := render(t, p)
		if strings.Contains(out, `id="star-count"`) {
			t.Errorf("%s page should not render the star badge", name)
		}
	}
}

func TestHeaderOffsetZero(t *testing.T) {
	p := baseProps()
	p.HeaderOffset = 0
	if out := render(t, p); !strings.Contains(out, `data-header-offset="0"`) {
		t.Error("a zero header offset should be passed through")
	}
	if strings.Contains(Script, `data-header-offset")) ||`) || !strings.Contains(Script, "isNaN(offset)") {
		t.Error("fallback script should only default the offset when it is not a number")
	}
}

func TestRenderNilStarCount(t *testing.T) {
	p := baseProps()
	p.StarCount = nil
	out := render(t, p)

	if !strings.Contains(out, `<span id="star-count"></span>`) {
		t.Error("unknown star count should render an empty badge count")
	}
}

func TestRenderWithoutRepo(t *testing.T) {
	p := baseProps()
	p.Stars = StarBadge{}
	out := render(t, p)

	if strings.Contains(out, `id="star-count"`) {
		t.Error("badge should be omitted without a repository")
	}
	if strings.Contains(out, `data-star-repo`) {
		t.Error("star data attributes should be omitted without a repository")
	}
}

func TestRenderHideDocChrome(t *testing.T) {
	p := baseProps()
	p.ShowDoc = false
	out := render(t, p)

	if strings.Contains(out, `class="header-nav"`) || strings.Contains(out, `version-select`) {
		t.Error("documentation header chrome should be hidden when ShowDoc is false")
	}
}

func TestRenderDefaults(t *testing.T) {
	out := render(t, Props{ID: "index.md", Title: "Home"})
	if !strings.Contains(out, `<div class="doc-wrapper">`) {
		t.Error("wrapper class should default to doc-wrapper")
	}
	if !strings.Contains(out, `<html lang="en"`) {
		t.Error("language should default to en")
	}
}

func TestRenderWasmModule(t *testing.T) {
	p := baseProps()
	p.WasmModule = "docsite.wasm"
	p.LiveReload = true
	out := render(t, p)

	if !strings.Contains(out, `src="../wasm_exec.js?v=abc"`) {
		t.Error("module pages should load wasm_exec.js")
	}
	if !strings.Contains(out, `data-module="../docsite.wasm?v=abc"`) {
		t.Error("boot script should name the module")
	}
	if strings.Contains(out, `src="../script.js`) {
		t.Error("module pages should not load the fallback script")
	}
	if !strings.Contains(out, `data-livereload="../livereload"`) || !strings.Contains(out, `livereload.js`) {
		t.Error("live reload should be wired when enabled")
	}
}

func TestRenderEscapesHeadingsJSON(t *testing.T) {
	p := baseProps()
	p.Headings = []outline.Heading{{Value: "</script><b>x</b>", Depth: 2}}
	out := render(t, p)

	if strings.Count(out, "</script>") != strings.Count(out, "<script") {
		t.Error("heading text must not close the headings script element")
	}
}
