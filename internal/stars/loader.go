package stars

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// DefaultTTL is how long a cached count is trusted before it is refetched.
const DefaultTTL = time.Hour

// Loader resolves the star count to display, consulting the cache first and
// the upstream API at most once per TTL.
type Loader struct {
	store   Store
	fetcher Fetcher
	keys    Keys
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithKeys overrides the cache keys.
func WithKeys(k Keys) Option {
	return func(l *Loader) {
		if k.Count != "" {
			l.keys.Count = k.Count
		}
		if k.FetchTime != "" {
			l.keys.FetchTime = k.FetchTime
		}
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.ttl = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// WithLogger sets the logger used for the (silent) failure paths.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// NewLoader creates a Loader over the given cache and upstream.
func NewLoader(store Store, fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		store:   store,
		fetcher: fetcher,
		keys:    DefaultKeys,
		ttl:     DefaultTTL,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the star count to display and whether one is known.
//
// A fresh cache is returned without touching the network. Otherwise the
// upstream is queried; a result at least as large as the cached count
// replaces the cache, anything else (errors, lower counts) leaves the cache
// alone and the cached count is returned. If ctx is done by the time the
// fetch returns, the result is discarded and nothing is written.
func (l *Loader) Load(ctx context.Context) (int, bool) {
	cached, hasCount := l.cachedCount(ctx)
	fetchedAt, hasTime := l.cachedFetchTime(ctx)

	now := l.now()
	if hasCount && hasTime && now.UnixMilli()-fetchedAt <= l.ttl.Milliseconds() {
		return cached, true
	}

	count, err := l.fetcher.StarCount(ctx)
	if ctx.Err() != nil {
		l.log.Debug("star count load abandoned", "error", ctx.Err())
		return 0, false
	}
	if err != nil {
		l.log.Debug("star count fetch failed", "error", err)
		return cached, hasCount
	}
	if hasCount && count < cached {
		l.log.Debug("ignoring lower star count", "fetched", count, "cached", cached)
		return cached, true
	}

	if err := l.store.Set(ctx, l.keys.Count, strconv.Itoa(count)); err != nil {
		l.log.Warn("writing star count cache", "error", err)
	} else if err := l.store.Set(ctx, l.keys.FetchTime, strconv.FormatInt(l.now().UnixMilli(), 10)); err != nil {
		l.log.Warn("writing star fetch time cache", "error", err)
	}
	return count, true
}

// Cached returns the cached count without consulting the upstream.
func (l *Loader) Cached(ctx context.Context) (int, bool) {
	return l.cachedCount(ctx)
}

func (l *Loader) cachedCount(ctx context.Context) (int, bool) {
	v, ok, err := l.store.Get(ctx, l.keys.Count)
	if err != nil {
		l.log.Debug("reading star count cache", "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (l *Loader) cachedFetchTime(ctx context.Context) (int64, bool) {
	v, ok, err := l.store.Get(ctx, l.keys.FetchTime)
	if err != nil || !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
