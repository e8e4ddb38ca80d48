// Package layout renders documentation pages: header, side menu, content,
// the "on this page" anchor panel, the scroll-to-top button and the star badge.
package layout

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/stars"
)

// Props is everything a page needs to render. Only Headings is interpreted by
// the layout itself; the other fields pass through to the page chrome.
type Props struct {
	Language     string
	Locale       string
	SiteName     string
	Title        string
	Children     template.HTML
	Headings     []outline.Heading
	MenuList     *Menu
	ID           string // source path of the page relative to the docs dir
	Current      string // active header section, "doc" or "benchmark"
	Versions     []string
	Version      string
	WrapperClass string
	IsBenchMark  bool
	ShowDoc      bool
	Logo         string

	StarCount    *int
	Stars        StarBadge
	HeaderOffset float64

	// AssetVersion is appended to asset URLs to bust caches between builds.
	AssetVersion string
	// WasmModule, when set, loads the browser module instead of script.js.
	WasmModule string
	// LiveReload adds the dev server's reload client.
	LiveReload bool
}

// StarBadge configures the client-side star loader.
type StarBadge struct {
	Repo    string
	APIBase string
	Keys    stars.Keys
	TTL     time.Duration
}

// templateData is the view model handed to pageTemplate.
type templateData struct {
	Props
	BasePath     string
	MenuHTML     template.HTML
	AnchorHTML   template.HTML
	HeadingsJSON template.JS
	RepoURL      string
	StarText     string
	OtherVersion []versionLink
}

type versionLink struct {
	Name    string
	Current bool
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Render writes the page for p to w.
func Render(w io.Writer, p Props) error {
	data, err := newTemplateData(p)
	if err != nil {
		return err
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering %s: %w", p.ID, err)
	}
	return nil
}

func newTemplateData(p Props) (templateData, error) {
	if p.WrapperClass == "" {
		p.WrapperClass = "doc-wrapper"
	}
	if p.Language == "" {
		p.Language = "en"
	}

	d := templateData{
		Props:    p,
		BasePath: BasePath(p.ID),
		StarText: StarText(p.StarCount),
	}
	if p.MenuList != nil {
		d.MenuHTML = template.HTML(p.MenuList.ToHTML(p.ID, d.BasePath))
	}

	forest := outline.Group(p.Headings)
	if len(forest) > 0 && !p.IsBenchMark {
		d.AnchorHTML = outline.Render(forest, "")
	}

	headings := p.Headings
	if headings == nil {
		headings = []outline.Heading{}
	}
	raw, err := json.Marshal(headings)
	if err != nil {
		return d, fmt.Errorf("encoding headings: %w", err)
	}
	d.HeadingsJSON = template.JS(raw)

	if p.Stars.Repo != "" {
		d.RepoURL = stars.RepoURL(p.Stars.Repo)
	}
	if len(p.Versions) > 1 {
		for _, v := range p.Versions {
			d.OtherVersion = append(d.OtherVersion, versionLink{Name: v, Current: v == p.Version})
		}
	}
	return d, nil
}

// BasePath returns the relative prefix from the page's output file back to
// the site root, e.g. "../" for "usage/pipelines.md".
func BasePath(id string) string {
	return strings.Repeat("../", strings.Count(OutputPath(id), "/"))
}

// StarText formats a star count for the badge. A nil count renders empty and
// the badge shows only its label.
func StarText(count *int) string {
	if count == nil {
		return ""
	}
	return strconv.Itoa(*count)
}

// TTLMillis is the loader TTL in milliseconds for the fallback script.
func (b StarBadge) TTLMillis() int64 {
	return b.TTL.Milliseconds()
}
