package view

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultHeaderOffset keeps anchor targets clear of the sticky header.
const DefaultHeaderOffset = 62

// Controller owns the layout's transient state and reacts to clicks and
// scroll events. Every state change is reported to the change callback so the
// caller can re-render.
type Controller struct {
	platform     Platform
	stars        StarSource
	headerOffset float64
	onChange     func(State)
	log          *slog.Logger

	// listener is created once so subscribe and detach see the same callback.
	listener func()

	mu       sync.Mutex
	state    State
	mounted  bool
	detach   func()
	cancel   context.CancelFunc
	loadDone chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithStars enables the star badge loader.
func WithStars(s StarSource) Option {
	return func(c *Controller) { c.stars = s }
}

// WithHeaderOffset overrides DefaultHeaderOffset.
func WithHeaderOffset(px float64) Option {
	return func(c *Controller) { c.headerOffset = px }
}

// WithOnChange registers the re-render callback.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger sets the controller's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController creates a controller bound to the given platform.
func NewController(p Platform, opts ...Option) *Controller {
	c := &Controller{
		platform:     p,
		headerOffset: DefaultHeaderOffset,
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.listener = c.handleScroll
	return c
}

// Mount subscribes the scroll listener and starts the star badge load.
// Mounting an already mounted controller is a no-op.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.detach = c.platform.OnScroll(c.listener)

	done := make(chan struct{})
	c.loadDone = done
	var loadCtx context.Context
	if c.stars != nil {
		loadCtx, c.cancel = context.WithCancel(ctx)
	}
	c.mu.Unlock()

	c.handleScroll()

	if c.stars == nil {
		close(done)
		return
	}
	go c.loadStars(loadCtx, done)
}

// Unmount detaches the scroll listener and abandons any in-flight star load.
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	c.mounted = false
	if c.detach != nil {
		c.detach()
		c.detach = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// StarsLoaded is closed once the star load started by the latest Mount has
// finished, whether or not its result was applied.
func (c *Controller) StarsLoaded() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadDone
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) loadStars(ctx context.Context, done chan struct{}) {
	defer close(done)
	count, ok := c.stars.Load(ctx)
	if !ok || ctx.Err() != nil {
		return
	}
	c.update(func(s *State) bool {
		// Unmount cancels under the same lock.
		if ctx.Err() != nil {
			return false
		}
		n := count
		s.StarCount = &n
		return true
	})
}

// handleScroll recomputes the scroll-to-top visibility.
func (c *Controller) handleScroll() {
	show := c.platform.ScrollOffset() != 0
	c.update(func(s *State) bool {
		if s.ShowToTop == show {
			return false
		}
		s.ShowToTop = show
		return true
	})
}

// ClickAnchor handles a click on an anchor link: the event's default action
// and propagation are suppressed, the anchor becomes active and the window
// scrolls to its target.
func (c *Controller) ClickAnchor(ev Event, id string) {
	if ev != nil {
		ev.StopPropagation()
		ev.PreventDefault()
	}
	c.update(func(s *State) bool {
		if s.ActiveAnchor == id {
			return false
		}
		s.ActiveAnchor = id
		return true
	})
	c.ScrollToAnchor(id)
}

// ScrollToAnchor jumps to the element with the given id, leaving room for
// the header. A missing element is ignored.
func (c *Controller) ScrollToAnchor(id string) {
	top, ok := c.platform.ElementTop(id)
	if !ok {
		c.log.Debug("anchor target not found", "id", id)
		return
	}
	position := top - c.platform.BodyTop()
	c.platform.ScrollTo(position-c.headerOffset, false)
}

// ScrollToTop smoothly scrolls back to the top of the page.
func (c *Controller) ScrollToTop() {
	c.platform.ScrollTo(0, true)
}

// update applies fn under the lock and notifies the change callback when fn
// reports a change.
func (c *Controller) update(fn func(*State) bool) {
	c.mu.Lock()
	changed := fn(&c.state)
	snapshot := c.state
	c.mu.Unlock()
	if changed && c.onChange != nil {
		c.onChange(snapshot)
	}
}
