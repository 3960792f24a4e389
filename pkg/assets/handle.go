// Package assets provides the typed asset handles and the byte-capacity
// LRU registry the core resolves them through. Loading runs off the UI
// thread; handles are shared immutable references the UI thread reads
// freely.
package assets

import (
	"bytes"
	"image"

	// Register the extended codecs so DecodeImage handles the formats
	// the stdlib image package does not.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Asset is an immutable loaded resource with its cache key attached.
// Handles to it are shared; nothing mutates an Asset after creation.
type Asset struct {
	key    string
	data   []byte
	img    image.Image
	format string
}

// NewAsset wraps raw bytes as an asset.
func NewAsset(key string, data []byte) *Asset {
	return &Asset{key: key, data: data}
}

// NewImageAsset wraps a decoded image, retaining the encoded bytes for
// size accounting.
func NewImageAsset(key string, data []byte, img image.Image, format string) *Asset {
	return &Asset{key: key, data: data, img: img, format: format}
}

// Key returns the cache key the asset was resolved under.
func (a *Asset) Key() string { return a.key }

// Bytes returns the raw encoded bytes. Callers must not modify them.
func (a *Asset) Bytes() []byte { return a.data }

// Image returns the decoded image, nil for non-image assets.
func (a *Asset) Image() image.Image { return a.img }

// Format names the decoded image format ("png", "webp", ...), empty for
// non-image assets.
func (a *Asset) Format() string { return a.format }

// SizeBytes is the asset's cache weight.
func (a *Asset) SizeBytes() int64 {
	size := int64(len(a.data))
	if a.img != nil {
		bounds := a.img.Bounds()
		size += int64(bounds.Dx()) * int64(bounds.Dy()) * 4
	}
	return size
}

// DecodeImage decodes encoded bytes into an image asset using every
// registered codec.
func DecodeImage(key string, data []byte) (*Asset, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewImageAsset(key, data, img, format), nil
}

// WeakHandle names an asset without keeping it cached: observers hold
// weak handles and promote them lazily, so the registry's LRU remains
// free to evict.
type WeakHandle struct {
	registry *Registry
	key      string
}

// Key returns the referenced cache key.
func (w WeakHandle) Key() string { return w.key }

// Upgrade promotes the weak handle to a strong one if the asset is still
// cached. It never triggers a load.
func (w WeakHandle) Upgrade() (*Asset, bool) {
	if w.registry == nil {
		return nil, false
	}
	return w.registry.Get(w.key)
}
