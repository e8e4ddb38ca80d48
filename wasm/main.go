//go:build js && wasm

// Command wasm runs the layout's client-side behavior in the browser.
// Build with: GOOS=js GOARCH=wasm go build -o docsite.wasm ./wasm
package main

import (
	"context"
	"strconv"
	"syscall/js"
	"time"

	"github.com/nishanthcgit/haystack-website/internal/stars"
	"github.com/nishanthcgit/haystack-website/internal/view"
	"github.com/nishanthcgit/haystack-website/internal/view/browser"
)

func main() {
	body := js.Global().Get("document").Get("body")
	data := func(name string) string {
		v := body.Call("getAttribute", "data-"+name)
		if v.IsNull() {
			return ""
		}
		return v.String()
	}

	opts := []view.Option{}
	if offset, err := strconv.ParseFloat(data("header-offset"), 64); err == nil {
		opts = append(opts, view.WithHeaderOffset(offset))
	}
	// The badge is only rendered inside the anchor panel.
	badge := js.Global().Get("document").Call("getElementById", browser.StarCountID)
	if repo := data("star-repo"); repo != "" && !badge.IsNull() {
		ttl, _ := time.ParseDuration(data("star-ttl"))
		loader := stars.NewLoader(
			browser.NewLocalStorage(),
			stars.NewGitHubClient(data("star-api"), repo, 10*time.Second),
			stars.WithKeys(stars.Keys{Count: data("star-count-key"), FetchTime: data("star-fetch-time-key")}),
			stars.WithTTL(ttl),
		)
		opts = append(opts, view.WithStars(loader))
	}

	page := browser.Bind(browser.NewWindow(), opts...)
	page.Controller().Mount(context.Background())

	done := make(chan struct{})
	var unload js.Func
	unload = js.FuncOf(func(js.Value, []js.Value) any {
		page.Release()
		js.Global().Call("removeEventListener", "pagehide", unload)
		unload.Release()
		close(done)
		return nil
	})
	js.Global().Call("addEventListener", "pagehide", unload)
	<-done
}
