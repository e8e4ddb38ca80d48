package view

import (
	"context"
	"sync"
	"testing"
	"time"
)

type scrollCall struct {
	top    float64
	smooth bool
}

// fakePlatform is an in-memory Platform with a settable scroll offset and
// element positions.
type fakePlatform struct {
	mu        sync.Mutex
	offset    float64
	bodyTop   float64
	elements  map[string]float64
	listeners map[int]func()
	nextID    int
	scrolls   []scrollCall
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		elements:  make(map[string]float64),
		listeners: make(map[int]func()),
	}
}

func (p *fakePlatform) ScrollOffset() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

func (p *fakePlatform) ElementTop(id string) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	top, ok := p.elements[id]
	return top, ok
}

func (p *fakePlatform) BodyTop() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bodyTop
}

func (p *fakePlatform) ScrollTo(top float64, smooth bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrolls = append(p.scrolls, scrollCall{top: top, smooth: smooth})
}

func (p *fakePlatform) OnScroll(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// scroll sets the offset and fires every subscribed listener.
func (p *fakePlatform) scroll(offset float64) {
	p.mu.Lock()
	p.offset = offset
	var fns []func()
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (p *fakePlatform) listenerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

type fakeEvent struct {
	prevented, stopped bool
}

func (e *fakeEvent) PreventDefault()  { e.prevented = true }
func (e *fakeEvent) StopPropagation() { e.stopped = true }

type fakeStars struct {
	count   int
	ok      bool
	release chan struct{}
}

func (s *fakeStars) Load(ctx context.Context) (int, bool) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return 0, false
		}
	}
	return s.count, s.ok
}

func waitLoaded(t *testing.T, c *Controller) {
	t.Helper()
	select {
	case <-c.StarsLoaded():
	case <-time.After(2 * time.Second):
		t.Fatal("star load did not finish")
	}
}

func TestClickAnchorScrollsWithOffset(t *testing.T) {
	p := newFakePlatform()
	p.bodyTop = -400
	p.elements["Installation"] = 100
	c := NewController(p)

	ev := &fakeEvent{}
	c.ClickAnchor(ev, "Installation")

	if !ev.prevented || !ev.stopped {
		t.Errorf("event prevented=%v stopped=%v, want both true", ev.prevented, ev.stopped)
	}
	if got := c.State().ActiveAnchor; got != "Installation" {
		t.Errorf("active anchor = %q, want Installation", got)
	}
	if len(p.scrolls) != 1 {
		t.Fatalf("scroll calls = %d, want 1", len(p.scrolls))
	}
	want := scrollCall{top: 100 - (-400) - DefaultHeaderOffset, smooth: false}
	if p.scrolls[0] != want {
		t.Errorf("scroll = %+v, want %+v", p.scrolls[0], want)
	}
}

func TestClickAnchorMissingTarget(t *testing.T) {
	p := newFakePlatform()
	var changes []State
	c := NewController(p, WithOnChange(func(s State) { changes = append(changes, s) }))

	c.ClickAnchor(&fakeEvent{}, "Does-Not-Exist")

	if got := c.State().ActiveAnchor; got != "Does-Not-Exist" {
		t.Errorf("active anchor = %q, want Does-Not-Exist", got)
	}
	if len(p.scrolls) != 0 {
		t.Errorf("scroll calls = %d, want 0", len(p.scrolls))
	}
	if len(changes) != 1 {
		t.Errorf("change notifications = %d, want 1", len(changes))
	}
}

func TestHeaderOffsetOption(t *testing.T) {
	p := newFakePlatform()
	p.elements["x"] = 500
	c := NewController(p, WithHeaderOffset(100))

	c.ScrollToAnchor("x")
	if len(p.scrolls) != 1 || p.scrolls[0].top != 400 {
		t.Errorf("scrolls = %+v, want one scroll to 400", p.scrolls)
	}
}

func TestScrollToTopIsSmooth(t *testing.T) {
	p := newFakePlatform()
	NewController(p).ScrollToTop()

	if len(p.scrolls) != 1 || p.scrolls[0] != (scrollCall{top: 0, smooth: true}) {
		t.Errorf("scrolls = %+v, want one smooth scroll to 0", p.scrolls)
	}
}

func TestScrollTogglesToTopButton(t *testing.T) {
	p := newFakePlatform()
	c := NewController(p)
	c.Mount(context.Background())
	defer c.Unmount()

	if c.State().ShowToTop {
		t.Error("button should be hidden at offset 0")
	}
	p.scroll(250)
	if !c.State().ShowToTop {
		t.Error("button should be shown after scrolling down")
	}
	p.scroll(0)
	if c.State().ShowToTop {
		t.Error("button should be hidden after returning to the top")
	}
}

func TestMountReadsInitialOffset(t *testing.T) {
	p := newFakePlatform()
	p.offset = 80
	c := NewController(p)
	c.Mount(context.Background())
	defer c.Unmount()

	if !c.State().ShowToTop {
		t.Error("button should be shown when mounted below the top")
	}
}

func TestUnmountDetachesListener(t *testing.T) {
	p := newFakePlatform()
	c := NewController(p)

	c.Mount(context.Background())
	c.Mount(context.Background())
	if n := p.listenerCount(); n != 1 {
		t.Fatalf("listeners after double mount = %d, want 1", n)
	}

	c.Unmount()
	if n := p.listenerCount(); n != 0 {
		t.Fatalf("listeners after unmount = %d, want 0", n)
	}

	p.scroll(300)
	if c.State().ShowToTop {
		t.Error("detached listener should not update state")
	}
}

func TestMountLoadsStars(t *testing.T) {
	p := newFakePlatform()
	updates := make(chan State, 4)
	c := NewController(p,
		WithStars(&fakeStars{count: 788, ok: true}),
		WithOnChange(func(s State) { updates <- s }),
	)
	c.Mount(context.Background())
	defer c.Unmount()
	waitLoaded(t, c)

	got := c.State().StarCount
	if got == nil || *got != 788 {
		t.Fatalf("star count = %v, want 788", got)
	}
	select {
	case s := <-updates:
		if s.StarCount == nil {
			t.Error("change notification should carry the star count")
		}
	default:
		t.Error("expected a change notification")
	}
}

func TestMountWithoutStarsLeavesCountUnset(t *testing.T) {
	c := NewController(newFakePlatform(), WithStars(&fakeStars{ok: false}))
	c.Mount(context.Background())
	defer c.Unmount()
	waitLoaded(t, c)

	if c.State().StarCount != nil {
		t.Error("star count should stay unset when the loader has nothing")
	}
}

func TestUnmountDiscardsLateStarCount(t *testing.T) {
	release := make(chan struct{})
	c := NewController(newFakePlatform(), WithStars(&fakeStars{count: 5, ok: true, release: release}))
	c.Mount(context.Background())
	c.Unmount()
	close(release)
	waitLoaded(t, c)

	if c.State().StarCount != nil {
		t.Error("star count should be discarded after unmount")
	}
}
