// Package query is the keyed fetch cache that sits between the pages and the
// resource APIs. It de-duplicates concurrent fetches of the same key, serves
// stale data while revalidating, and evicts entries nobody has used for a
// while.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Zachkp/portfolio/internal/metrics"
)

const (
	DefaultStaleTime    = 5 * time.Minute
	DefaultCacheTime    = 15 * time.Minute
	DefaultFetchTimeout = 30 * time.Second
)

// Result is what a page sees for one key.
type Result[T any] struct {
	Data      T
	Err       error
	IsLoading bool
	IsStale   bool
	UpdatedAt time.Time
}

// HasData reports whether Data holds a successfully fetched value.
func (r Result[T]) HasData() bool {
	return !r.UpdatedAt.IsZero()
}

type entry struct {
	data      any
	err       error
	updatedAt time.Time
	lastUsed  time.Time
}

// call marks one in-flight fetch. Invalidate and Clear detach it so its
// result is not stored.
type call struct {
	detached bool
}

// Cache holds fetched values per Key.
type Cache struct {
	mu       sync.Mutex
	entries  map[Key]*entry
	inflight map[Key]*call
	group    singleflight.Group

	staleTime    time.Duration
	cacheTime    time.Duration
	fetchTimeout time.Duration
	now          func() time.Time
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

type Option func(*Cache)

// WithStaleTime sets how long a value is served without refetching.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) {
		c.staleTime = d
	}
}

// WithCacheTime sets how long an unused value is kept before Sweep drops it.
func WithCacheTime(d time.Duration) Option {
	return func(c *Cache) {
		c.cacheTime = d
	}
}

// WithFetchTimeout bounds a shared fetch once it no longer belongs to any
// single caller.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Cache) {
		c.fetchTimeout = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:      map[Key]*entry{},
		inflight:     map[Key]*call{},
		staleTime:    DefaultStaleTime,
		cacheTime:    DefaultCacheTime,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fetchOptions struct {
	blocking bool
}

type FetchOption func(*fetchOptions)

// Blocking makes a stale hit wait for the refetch instead of returning the
// stale value immediately.
func Blocking() FetchOption {
	return func(o *fetchOptions) {
		o.blocking = true
	}
}

// Fetch returns the value for key, calling fn only when the cache cannot
// answer. fn receives a context detached from the caller: if ctx ends first,
// Fetch returns IsLoading with ctx.Err() and the shared call keeps running
// for other callers. All callers of one key must use the same T.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error), opts ...FetchOption) Result[T] {
	var o fetchOptions
	for _, opt := range opts {
		opt(&o)
	}

	load := func(fctx context.Context) (any, error) {
		return fn(fctx)
	}

	c.mu.Lock()
	now := c.now()
	e, cached := c.entries[key]
	var stale Result[T]
	if cached {
		e.lastUsed = now
		stale = resultOf[T](e)
		if now.Sub(e.updatedAt) < c.staleTime {
			c.mu.Unlock()
			c.event("hit")
			return stale
		}
		stale.IsStale = true
	}
	c.mu.Unlock()

	if cached {
		c.event("stale")
		if !o.blocking {
			c.start(ctx, key, load)
			return stale
		}
	} else {
		c.event("miss")
	}

	select {
	case r := <-c.start(ctx, key, load):
		if r.Err != nil {
			if cached {
				stale.Err = r.Err
				return stale
			}
			return Result[T]{Err: r.Err}
		}
		data, ok := r.Val.(T)
		if !ok {
			return Result[T]{Err: fmt.Errorf("query %s: cached %T is not %T", key, r.Val, data)}
		}
		c.mu.Lock()
		updated := c.now()
		if e, ok := c.entries[key]; ok {
			updated = e.updatedAt
		}
		c.mu.Unlock()
		return Result[T]{Data: data, UpdatedAt: updated}
	case <-ctx.Done():
		stale.IsLoading = true
		stale.Err = ctx.Err()
		return stale
	}
}

// start joins or begins the single in-flight call for key.
func (c *Cache) start(ctx context.Context, key Key, load func(context.Context) (any, error)) <-chan singleflight.Result {
	fctx := context.WithoutCancel(ctx)
	return c.group.DoChan(key.String(), func() (any, error) {
		cl := &call{}
		c.mu.Lock()
		c.inflight[key] = cl
		c.mu.Unlock()
		defer func() {
			c.mu.Lock()
			if c.inflight[key] == cl {
				delete(c.inflight, key)
			}
			c.mu.Unlock()
		}()

		lctx, cancel := context.WithTimeout(fctx, c.fetchTimeout)
		defer cancel()
		v, err := load(lctx)
		c.store(key, cl, v, err)
		return v, err
	})
}

// store records the outcome of cl unless cl was detached meanwhile.
func (c *Cache) store(key Key, cl *call, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cl.detached {
		c.logger.Debug("dropping result of invalidated fetch", slog.String("key", key.String()))
		return
	}

	now := c.now()
	e, ok := c.entries[key]
	if err != nil {
		c.event("error")
		c.logger.Debug("query fetch failed", slog.String("key", key.String()), slog.String("error", err.Error()))
		if ok {
			e.err = err
		}
		return
	}
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.data = v
	e.err = nil
	e.updatedAt = now
	e.lastUsed = now
	c.gauge()
}

func resultOf[T any](e *entry) Result[T] {
	data, _ := e.data.(T)
	return Result[T]{Data: data, Err: e.err, UpdatedAt: e.updatedAt}
}

// Peek returns what the cache holds for key without fetching. IsLoading is
// set while a call for key is in flight.
func Peek[T any](c *Cache, key Key) Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	var r Result[T]
	if e, ok := c.entries[key]; ok {
		r = resultOf[T](e)
		r.IsStale = c.now().Sub(e.updatedAt) >= c.staleTime
	}
	_, r.IsLoading = c.inflight[key]
	return r
}

// Invalidate drops every entry of op. In-flight calls for op are detached:
// their callers still get the result, but it is not stored, and the next
// Fetch starts a fresh call.
func (c *Cache) Invalidate(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.entries {
		if k.op == op {
			delete(c.entries, k)
		}
	}
	for k := range c.inflight {
		if k.op == op {
			c.detach(k)
		}
	}
	c.gauge()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.inflight {
		c.detach(k)
	}
	c.entries = map[Key]*entry{}
	c.gauge()
}

// detach must be called with mu held.
func (c *Cache) detach(k Key) {
	c.inflight[k].detached = true
	delete(c.inflight, k)
	c.group.Forget(k.String())
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep evicts entries unused for longer than the cache time and returns how
// many it removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for k, e := range c.entries {
		if _, busy := c.inflight[k]; busy {
			continue
		}
		if now.Sub(e.lastUsed) > c.cacheTime {
			delete(c.entries, k)
			n++
		}
	}
	if n > 0 {
		c.logger.Debug("query cache swept", slog.Int("evicted", n))
		if c.metrics != nil {
			c.metrics.CacheEvents.WithLabelValues("evict").Add(float64(n))
		}
	}
	c.gauge()
	return n
}

// Run sweeps every interval until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

func (c *Cache) event(name string) {
	if c.metrics != nil {
		c.metrics.CacheEvents.WithLabelValues(name).Inc()
	}
}

// gauge must be called with mu held.
func (c *Cache) gauge() {
	if c.metrics != nil {
		c.metrics.CacheEntries.Set(float64(len(c.entries)))
	}
}
