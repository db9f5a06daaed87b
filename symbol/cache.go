// seehuhn.de/go/maprender - a styled 2D map renderer
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package symbol

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/singleflight"

	"seehuhn.de/go/maprender/internal/logging"
)

// DefaultCacheSize is the number of bitmaps kept by a cache created with
// size zero.
const DefaultCacheSize = 256

type kind uint8

const (
	kindSVG kind = iota
	kindImage
)

type key struct {
	kind          kind
	url           string
	width, height int
}

func (k key) String() string {
	return fmt.Sprintf("%d:%dx%d:%s", k.kind, k.width, k.height, k.url)
}

// Cache is a bounded store of symbol bitmaps, keyed by URL and size.
// When the cache is full, the oldest entry is evicted first.
// Concurrent requests for the same missing entry are loaded only once.
// Failed loads are not cached.
//
// A Cache is safe for concurrent use by several render passes.
type Cache struct {
	src  Source
	size int

	mu      sync.Mutex
	entries map[key]image.Image
	order   []key

	loads singleflight.Group
}

// NewCache returns an empty cache reading from src, holding at most size
// bitmaps. If size is not positive, DefaultCacheSize is used.
func NewCache(src Source, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		src:     src,
		size:    size,
		entries: make(map[key]image.Image),
	}
}

var shared = sync.OnceValue(func() *Cache {
	return NewCache(&Loader{}, DefaultCacheSize)
})

// Shared returns the process-wide cache, backed by a Loader.
func Shared() *Cache {
	return shared()
}

// SVG returns the SVG document at url rasterized to width×height pixels.
// Non-positive sizes select the natural size of the document.
func (c *Cache) SVG(url string, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	return c.get(key{kind: kindSVG, url: url, width: width, height: height})
}

// Image returns the raster image at url.
func (c *Cache) Image(url string) (image.Image, error) {
	return c.get(key{kind: kindImage, url: url})
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) get(k key) (image.Image, error) {
	c.mu.Lock()
	img, ok := c.entries[k]
	c.mu.Unlock()
	if ok {
		return img, nil
	}

	v, err, _ := c.loads.Do(k.String(), func() (any, error) {
		var img image.Image
		var err error
		if k.kind == kindSVG {
			img, err = c.src.RasterizeSVG(k.url, k.width, k.height)
		} else {
			img, err = c.src.LoadImage(k.url)
		}
		if err != nil {
			return nil, err
		}
		c.put(k, img)
		return img, nil
	})
	if err != nil {
		logging.Logger().Warn("symbol load failed", "url", k.url, "error", err)
		return nil, err
	}
	return v.(image.Image), nil
}

func (c *Cache) put(k key, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok {
		return
	}
	for len(c.order) >= c.size {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	c.entries[k] = img
	c.order = append(c.order, k)
}
