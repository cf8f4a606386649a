package badge

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Decoders for the photo formats probed on disk.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/floorops/dispatch/internal/schema"
)

// DefaultSize is the badge edge length used when no explicit size is asked.
const DefaultSize = 150

// photoExtensions is the probe order for photo files named <worker_id>.<ext>.
var photoExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// Manager renders badges from a photo directory with a bounded cache in
// front. A badge request never fails: a missing or undecodable photo
// yields the initials card instead.
//
// Manager is single-owner, like the cache behind it.
type Manager struct {
	dir   string
	cache *Cache
}

// NewManager creates a manager reading photos from dir and caching up to
// cacheCapacity rendered badges.
func NewManager(dir string, cacheCapacity int) *Manager {
	return &Manager{
		dir:   dir,
		cache: NewCache(cacheCapacity),
	}
}

// Badge returns the badge for a worker at the requested size. The rendered
// image is cached per worker and size, so repeated board draws hit the
// cache.
func (m *Manager) Badge(id, name string, width, height int) image.Image {
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}

	key := fmt.Sprintf("%s_%dx%d", id, width, height)
	if img, ok := m.cache.Get(key); ok {
		return img
	}

	img := m.loadPhoto(id, width, height)
	if img == nil {
		img = renderInitials(Initials(id, name), width, height)
	}

	m.cache.Put(key, img)
	return img
}

// loadPhoto probes the photo directory for the worker's photo and scales
// it to fit the badge, preserving aspect ratio. Returns nil when no
// extension yields a decodable image.
func (m *Manager) loadPhoto(id string, width, height int) image.Image {
	for _, ext := range photoExtensions {
		// #nosec G304 - path built from the configured photo directory
		file, err := os.Open(filepath.Join(m.dir, id+ext))
		if err != nil {
			continue
		}

		src, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			continue
		}

		return scaleToFit(src, width, height)
	}
	return nil
}

// scaleToFit scales src onto a width x height canvas, preserved aspect,
// centered, transparent margins.
func scaleToFit(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	sw := src.Bounds().Dx()
	sh := src.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return dst
	}

	tw := width
	th := sh * tw / sw
	if th > height {
		th = height
		tw = sw * th / sh
	}

	x0 := (width - tw) / 2
	y0 := (height - th) / 2
	target := image.Rect(x0, y0, x0+tw, y0+th)
	draw.ApproxBiLinear.Scale(dst, target, src, src.Bounds(), draw.Src, nil)

	return dst
}

// Preload warms the cache at the default size for a worker list, typically
// before the board is drawn. Workers already cached are skipped.
func (m *Manager) Preload(workers []*schema.Worker) {
	for _, w := range workers {
		key := fmt.Sprintf("%s_%dx%d", w.ID, DefaultSize, DefaultSize)
		if _, ok := m.cache.Get(key); ok {
			continue
		}
		m.Badge(w.ID, w.Name, DefaultSize, DefaultSize)
	}
}

// CacheStats reports cache occupancy.
type CacheStats struct {
	Len int
	Cap int
}

// Stats returns current cache occupancy.
func (m *Manager) Stats() CacheStats {
	return CacheStats{Len: m.cache.Len(), Cap: m.cache.Cap()}
}
