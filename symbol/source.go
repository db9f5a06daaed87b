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

// Package symbol loads and caches the bitmaps used for point symbols,
// graphic strokes and graphic fills.
package symbol

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Source produces symbol bitmaps from URLs.
type Source interface {
	// RasterizeSVG renders the SVG document at url into a bitmap of the
	// given size. If width or height is not positive, the natural size of
	// the document is used.
	RasterizeSVG(url string, width, height int) (image.Image, error)

	// LoadImage decodes the raster image at url.
	LoadImage(url string) (image.Image, error)
}

// ErrEmptySVG is returned for SVG documents without a usable view box.
var ErrEmptySVG = errors.New("symbol: SVG has empty view box")

// Loader is a Source which reads from local files and over HTTP.
type Loader struct {
	// Client is used for http and https URLs.
	// If nil, http.DefaultClient is used.
	Client *http.Client
}

var _ Source = (*Loader)(nil)

func (l *Loader) open(url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Get(url)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("symbol: fetching %s: %s", url, resp.Status)
		}
		return resp.Body, nil
	case strings.HasPrefix(url, "file://"):
		return os.Open(strings.TrimPrefix(url, "file://"))
	}
	return os.Open(url)
}

// RasterizeSVG implements the Source interface.
func (l *Loader) RasterizeSVG(url string, width, height int) (image.Image, error) {
	rc, err := l.open(url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return RasterizeSVG(rc, width, height)
}

// LoadImage implements the Source interface.
func (l *Loader) LoadImage(url string) (image.Image, error) {
	rc, err := l.open(url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("symbol: decoding %s: %w", url, err)
	}
	return img, nil
}

// RasterizeSVG renders an SVG document into a new RGBA image.
// If width or height is not positive, the view box size is used,
// rounded up to whole pixels.
func RasterizeSVG(r io.Reader, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	vb := icon.ViewBox
	if !(vb.W > 0 && vb.H > 0) {
		return nil, ErrEmptySVG
	}
	if width <= 0 || height <= 0 {
		width = int(math.Ceil(vb.W))
		height = int(math.Ceil(vb.H))
	}

	icon.Transform = rasterx.Identity.
		Scale(float64(width)/vb.W, float64(height)/vb.H).
		Translate(-vb.X, -vb.Y)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}
