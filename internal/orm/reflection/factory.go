package reflection

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// CacheConfig holds configuration for a metadata Cache
type CacheConfig struct {
	// Enabled keeps built metadata for later lookups
	Enabled bool
	// AccessPolicy decides what happens to unexported members
	AccessPolicy AccessPolicy
	// Logger receives build events; nil disables logging
	Logger *zap.Logger
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      true,
		AccessPolicy: AccessForce,
		Logger:       zap.NewNop(),
	}
}

// Cache maps types to their property Metadata. It is safe for concurrent
// use. Two goroutines missing on the same type may both build it; builds
// are deterministic so the last stored result is as good as the first.
type Cache struct {
	enabled atomic.Bool
	policy  AccessPolicy
	logger  *zap.Logger
	entries sync.Map // map[reflect.Type]*Metadata
}

// NewCache creates a new metadata cache
func NewCache(cfg CacheConfig) *Cache {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		policy: cfg.AccessPolicy,
		logger: logger,
	}
	c.enabled.Store(cfg.Enabled)
	return c
}

// CacheEnabled reports whether built metadata is kept
func (c *Cache) CacheEnabled() bool {
	return c.enabled.Load()
}

// SetCacheEnabled turns caching on or off. Entries stored earlier are kept
// and served again once caching is turned back on.
func (c *Cache) SetCacheEnabled(enabled bool) {
	c.enabled.Store(enabled)
}

// MetadataFor returns the property metadata of t. Pointer types share the
// metadata of their element type.
func (c *Cache) MetadataFor(t reflect.Type) (*Metadata, error) {
	if t == nil {
		return nil, newError(KindIntrospectionFailure, "", nil, "cannot introspect a nil type")
	}
	t = indirectType(t)

	if !c.enabled.Load() {
		return c.build(t, false)
	}

	if cached, ok := c.entries.Load(t); ok {
		return cached.(*Metadata), nil
	}

	meta, err := c.build(t, true)
	if err != nil {
		return nil, err
	}
	c.entries.Store(t, meta)
	return meta, nil
}

// MetadataOf returns the property metadata of the dynamic type of v
func (c *Cache) MetadataOf(v any) (*Metadata, error) {
	return c.MetadataFor(reflect.TypeOf(v))
}

// Len returns the number of cached types
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *Cache) build(t reflect.Type, cached bool) (*Metadata, error) {
	start := time.Now()

	d, err := Describe(t, c.policy)
	if err != nil {
		return nil, err
	}
	meta, err := NewMetadata(d)
	if err != nil {
		c.logger.Warn("property metadata build failed",
			zap.Stringer("type", t),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("built property metadata",
		zap.Stringer("type", t),
		zap.Int("readable", len(meta.readable)),
		zap.Int("writable", len(meta.writable)),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", time.Since(start)),
	)
	return meta, nil
}
