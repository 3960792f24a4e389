package assets

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/loomui/loom/pkg/errors"
)

// Loader resolves a key to an asset, typically hitting disk or network.
// Loads run on caller goroutines, never the UI thread.
type Loader interface {
	Load(ctx context.Context, key string) (*Asset, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, key string) (*Asset, error)

func (f LoaderFunc) Load(ctx context.Context, key string) (*Asset, error) {
	return f(ctx, key)
}

type registryEntry struct {
	asset *Asset
	size  int64
}

// Registry resolves keys to assets through a Loader, caching results in
// a byte-capacity LRU. Concurrent loads of the same key are collapsed
// into one loader call. Safe for concurrent use.
type Registry struct {
	loader   Loader
	capacity int64

	mu    sync.Mutex
	used  int64
	order *list.List               // front = most recent
	items map[string]*list.Element // value: *lruItem

	flight singleflight.Group
}

type lruItem struct {
	key   string
	entry registryEntry
}

// NewRegistry creates a registry with the given byte capacity. A zero or
// negative capacity disables caching entirely; every Load hits the
// loader (still deduplicated in flight).
func NewRegistry(loader Loader, capacityBytes int64) *Registry {
	return &Registry{
		loader:   loader,
		capacity: capacityBytes,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Load resolves key, returning the cached asset or invoking the loader.
// Concurrent calls for the same key share a single loader invocation.
func (r *Registry) Load(ctx context.Context, key string) (*Asset, error) {
	if asset, ok := r.Get(key); ok {
		return asset, nil
	}
	result, err, _ := r.flight.Do(key, func() (any, error) {
		if asset, ok := r.Get(key); ok {
			return asset, nil
		}
		asset, err := r.loader.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, fmt.Errorf("assets: loader returned no asset for %q", key)
		}
		r.insert(asset)
		return asset, nil
	})
	if err != nil {
		errors.Report(&errors.FrameworkError{
			Op:        "assets.Load",
			Kind:      errors.KindResource,
			Err:       fmt.Errorf("loading %q: %w", key, err),
			Timestamp: time.Now(),
		})
		return nil, err
	}
	return result.(*Asset), nil
}

// Get returns the cached asset for key, refreshing its LRU position.
func (r *Registry) Get(key string) (*Asset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	element, ok := r.items[key]
	if !ok {
		return nil, false
	}
	r.order.MoveToFront(element)
	return element.Value.(*lruItem).entry.asset, true
}

// Invalidate drops key from the cache. In-flight loads are unaffected.
func (r *Registry) Invalidate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if element, ok := r.items[key]; ok {
		r.removeElement(element)
	}
}

// Weak returns a weak handle for key; it does not require the asset to
// be loaded yet.
func (r *Registry) Weak(key string) WeakHandle {
	return WeakHandle{registry: r, key: key}
}

// Preload resolves every key concurrently, failing fast on the first
// error.
func (r *Registry) Preload(ctx context.Context, keys ...string) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		group.Go(func() error {
			_, err := r.Load(ctx, key)
			return err
		})
	}
	return group.Wait()
}

// UsedBytes returns the cache's current weight.
func (r *Registry) UsedBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used
}

// Len returns the number of cached assets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Registry) insert(asset *Asset) {
	if r.capacity <= 0 {
		return
	}
	size := asset.SizeBytes()
	r.mu.Lock()
	defer r.mu.Unlock()
	if element, ok := r.items[asset.Key()]; ok {
		r.removeElement(element)
	}
	element := r.order.PushFront(&lruItem{key: asset.Key(), entry: registryEntry{asset: asset, size: size}})
	r.items[asset.Key()] = element
	r.used += size
	for r.used > r.capacity && r.order.Len() > 1 {
		r.removeElement(r.order.Back())
	}
}

func (r *Registry) removeElement(element *list.Element) {
	item := element.Value.(*lruItem)
	r.order.Remove(element)
	delete(r.items, item.key)
	r.used -= item.entry.size
}
