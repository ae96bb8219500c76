package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/funcwrap/observe"
	"github.com/jonwraymond/funcwrap/wrap"
)

// Stats reports a memoizer's lookup counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

type config struct {
	keyer   Keyer
	metrics observe.Metrics
	logger  observe.Logger
	meta    observe.FuncMeta
}

// Option configures a Memoizer.
type Option func(*config)

// WithKeyPolicy selects the default keyer's policy.
func WithKeyPolicy(p KeyPolicy) Option {
	return func(c *config) {
		c.keyer = NewDefaultKeyer(p)
	}
}

// WithKeyer replaces the default keyer.
func WithKeyer(k Keyer) Option {
	return func(c *config) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithMetrics records every lookup as a hit or miss.
func WithMetrics(m observe.Metrics) Option {
	return func(c *config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger writes a debug line for every lookup.
func WithLogger(l observe.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFuncMeta names the memoized function in metrics and logs.
func WithFuncMeta(meta observe.FuncMeta) Option {
	return func(c *config) {
		c.meta = meta
	}
}

// Memoizer caches the results of one function.
//
// Contract:
//   - Concurrency: safe for concurrent use. Callers that miss on the same key
//     while a computation is in flight wait for it and share its result, so
//     the function runs at most once per key.
//   - Errors: errors are returned to every waiting caller and never stored.
//   - Context: a shared computation runs with the context of the caller that
//     started it.
type Memoizer[V any] struct {
	fn     wrap.Func[V]
	store  Store[V]
	group  singleflight.Group
	cfg    config
	logger observe.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoizer wraps fn with a cache held in store. A nil store is replaced by
// a fresh MemoryStore.
func NewMemoizer[V any](fn wrap.Func[V], store Store[V], opts ...Option) (*Memoizer[V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	if store == nil {
		store = NewMemoryStore[V]()
	}

	cfg := config{
		keyer:   NewDefaultKeyer(KeyPositional),
		metrics: observe.NopMetrics(),
		logger:  observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Memoizer[V]{
		fn:     fn,
		store:  store,
		cfg:    cfg,
		logger: cfg.logger.WithFunc(cfg.meta),
	}, nil
}

// Call returns the cached result for args, computing it on a miss.
// Arguments that cannot be keyed fail with a wrap.KindType error and fn is
// not invoked.
func (m *Memoizer[V]) Call(ctx context.Context, args wrap.Args) (V, error) {
	key, err := m.cfg.keyer.Key(args)
	if err != nil {
		var zero V
		return zero, err
	}

	if v, ok := m.store.Get(ctx, key); ok {
		m.record(ctx, key, true)
		return v, nil
	}

	computed := false
	res, err, _ := m.group.Do(key, func() (any, error) {
		// A flight for key may have completed between Get and Do.
		if v, ok := m.store.Get(ctx, key); ok {
			return v, nil
		}

		computed = true
		v, err := m.fn(ctx, args)
		if err != nil {
			return v, err
		}
		m.store.Set(ctx, key, v)
		return v, nil
	})
	m.record(ctx, key, !computed)

	v, _ := res.(V)
	return v, err
}

func (m *Memoizer[V]) record(ctx context.Context, key string, hit bool) {
	if hit {
		m.hits.Add(1)
	} else {
		m.misses.Add(1)
	}
	m.cfg.metrics.RecordCacheLookup(ctx, m.cfg.meta, hit)
	m.logger.Debug(ctx, "cache lookup",
		observe.Field{Key: "cache.key", Value: key},
		observe.Field{Key: "cache.hit", Value: hit},
	)
}

// Func returns Call as a wrap.Func.
func (m *Memoizer[V]) Func() wrap.Func[V] {
	return m.Call
}

// Stats returns the lookup counters and current entry count.
func (m *Memoizer[V]) Stats() Stats {
	return Stats{
		Hits:    m.hits.Load(),
		Misses:  m.misses.Load(),
		Entries: m.store.Len(),
	}
}

// Store returns the memoizer's cache for inspection.
func (m *Memoizer[V]) Store() Store[V] {
	return m.store
}

// Forget removes the entry for args. It returns an error only if args
// cannot be keyed.
func (m *Memoizer[V]) Forget(ctx context.Context, args wrap.Args) error {
	key, err := m.cfg.keyer.Key(args)
	if err != nil {
		return err
	}
	m.store.Delete(ctx, key)
	return nil
}

// Reset drops every entry and zeroes the counters.
func (m *Memoizer[V]) Reset() {
	m.store.Reset()
	m.hits.Store(0)
	m.misses.Store(0)
}

// Memoize returns a decorator that gives each wrapped function its own
// MemoryStore.
func Memoize[V any](opts ...Option) wrap.Decorator[V] {
	return func(fn wrap.Func[V]) wrap.Func[V] {
		m, err := NewMemoizer(fn, nil, opts...)
		if err != nil {
			return func(context.Context, wrap.Args) (V, error) {
				var zero V
				return zero, err
			}
		}
		return m.Call
	}
}

// MemoizeFunc caches a plain single-argument function. Each distinct key is
// computed at most once, even under concurrent callers.
func MemoizeFunc[K comparable, V any](fn func(K) V) func(K) V {
	var entries sync.Map // K -> *onceValue[V]

	return func(k K) V {
		e, _ := entries.LoadOrStore(k, &onceValue[V]{})
		ov := e.(*onceValue[V])
		ov.once.Do(func() { ov.v = fn(k) })
		return ov.v
	}
}

type onceValue[V any] struct {
	once sync.Once
	v    V
}
