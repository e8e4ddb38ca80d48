// Package view holds the client-side behavior of the documentation layout:
// the active anchor, scroll-to-anchor and scroll-to-top, the visibility of the
// scroll-to-top button and the star badge count. Browser access goes through
// Platform so the controller runs unchanged against fakes in tests.
package view

import "context"

// Platform is the set of browser services the controller depends on.
type Platform interface {
	// ScrollOffset is the document's current vertical scroll offset.
	ScrollOffset() float64
	// ElementTop is the top of the element with the given id relative to
	// the viewport, and false when no such element exists.
	ElementTop(id string) (float64, bool)
	// BodyTop is the top of the document body relative to the viewport.
	BodyTop() float64
	// ScrollTo scrolls the window to the given vertical position.
	ScrollTo(top float64, smooth bool)
	// OnScroll subscribes fn to scroll events. The returned function detaches
	// exactly that subscription.
	OnScroll(fn func()) (detach func())
}

// Event is the part of a DOM event the anchor click handler needs.
type Event interface {
	PreventDefault()
	StopPropagation()
}

// StarSource resolves the star count shown in the badge.
type StarSource interface {
	Load(ctx context.Context) (int, bool)
}

// State is the render state owned by the controller.
type State struct {
	ActiveAnchor string
	ShowToTop    bool
	StarCount    *int
}
