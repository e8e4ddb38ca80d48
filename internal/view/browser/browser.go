//go:build js && wasm

// Package browser binds the view controller to the DOM through syscall/js.
package browser

import (
	"context"
	"encoding/json"
	"strconv"
	"syscall/js"

	"github.com/nishanthcgit/haystack-website/internal/outline"
	"github.com/nishanthcgit/haystack-website/internal/view"
)

// Element ids and data attributes shared with the page template.
const (
	HeadingsID     = "page-headings"
	AnchorMenuID   = "anchor-menu"
	ToTopID        = "to-top"
	StarCountID    = "star-count"
	anchorDataAttr = "data-anchor"
)

// Window implements view.Platform over the global window and document.
type Window struct {
	window   js.Value
	document js.Value
}

// NewWindow returns the platform for the current page.
func NewWindow() *Window {
	g := js.Global()
	return &Window{window: g, document: g.Get("document")}
}

func (w *Window) ScrollOffset() float64 {
	return w.document.Get("documentElement").Get("scrollTop").Float()
}

func (w *Window) ElementTop(id string) (float64, bool) {
	el := w.document.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return 0, false
	}
	return el.Call("getBoundingClientRect").Get("top").Float(), true
}

func (w *Window) BodyTop() float64 {
	return w.document.Get("body").Call("getBoundingClientRect").Get("top").Float()
}

func (w *Window) ScrollTo(top float64, smooth bool) {
	opts := map[string]any{"top": top}
	if smooth {
		opts["behavior"] = "smooth"
	}
	w.window.Call("scrollTo", opts)
}

func (w *Window) OnScroll(fn func()) func() {
	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	w.window.Call("addEventListener", "scroll", cb)
	return func() {
		w.window.Call("removeEventListener", "scroll", cb)
		cb.Release()
	}
}

// LocalStorage implements stars.Store over window.localStorage.
type LocalStorage struct {
	storage js.Value
}

// NewLocalStorage returns the page's localStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{storage: js.Global().Get("localStorage")}
}

func (s *LocalStorage) Get(_ context.Context, key string) (string, bool, error) {
	v := s.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (s *LocalStorage) Set(_ context.Context, key, value string) error {
	s.storage.Call("setItem", key, value)
	return nil
}

// domEvent adapts a DOM event to view.Event.
type domEvent struct{ v js.Value }

func (e domEvent) PreventDefault()  { e.v.Call("preventDefault") }
func (e domEvent) StopPropagation() { e.v.Call("stopPropagation") }

// Page wires a controller to the layout's DOM nodes and re-renders them from
// the controller's state.
type Page struct {
	win        *Window
	controller *view.Controller
	forest     []*outline.Node
	listeners  []domListener
}

type domListener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Bind reads the page's headings, creates the controller with opts and
// attaches the click handlers. Call Release when the page is torn down.
func Bind(win *Window, opts ...view.Option) *Page {
	p := &Page{win: win, forest: outline.Group(readHeadings(win.document))}
	opts = append(opts, view.WithOnChange(p.render))
	p.controller = view.NewController(win, opts...)

	if menu := p.byID(AnchorMenuID); !menu.IsNull() {
		p.listen(menu, "click", func(ev js.Value) {
			link := ev.Get("target").Call("closest", "a["+anchorDataAttr+"]")
			if link.IsNull() {
				return
			}
			p.controller.ClickAnchor(domEvent{ev}, link.Call("getAttribute", anchorDataAttr).String())
		})
	}
	if btn := p.byID(ToTopID); !btn.IsNull() {
		scrollTop := func(js.Value) { p.controller.ScrollToTop() }
		p.listen(btn, "click", scrollTop)
		p.listen(btn, "keydown", scrollTop)
	}
	return p
}

// Controller returns the bound controller.
func (p *Page) Controller() *view.Controller { return p.controller }

// Release unmounts the controller and detaches every DOM listener.
func (p *Page) Release() {
	p.controller.Unmount()
	for _, l := range p.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	p.listeners = nil
}

func (p *Page) render(s view.State) {
	if menu := p.byID(AnchorMenuID); !menu.IsNull() && len(p.forest) > 0 {
		menu.Set("innerHTML", string(outline.Render(p.forest, s.ActiveAnchor)))
	}
	if btn := p.byID(ToTopID); !btn.IsNull() {
		btn.Set("hidden", !s.ShowToTop)
	}
	if s.StarCount != nil {
		if badge := p.byID(StarCountID); !badge.IsNull() {
			badge.Set("textContent", strconv.Itoa(*s.StarCount))
		}
	}
}

func (p *Page) listen(target js.Value, event string, fn func(js.Value)) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, cb)
	p.listeners = append(p.listeners, domListener{target: target, event: event, fn: cb})
}

func (p *Page) byID(id string) js.Value {
	return p.win.document.Call("getElementById", id)
}

func readHeadings(document js.Value) []outline.Heading {
	el := document.Call("getElementById", HeadingsID)
	if el.IsNull() {
		return nil
	}
	var headings []outline.Heading
	if err := json.Unmarshal([]byte(el.Get("textContent").String()), &headings); err != nil {
		return nil
	}
	return headings
}
