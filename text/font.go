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

// Package text lays out label text and provides glyph outlines.
//
// All layout goes through [Layout], which holds [LayoutMu] while it runs.
// Fonts are therefore never accessed by two goroutines at once.
package text

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"

	"seehuhn.de/go/maprender/style"
)

// Variant selects one member of a font family.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	BoldItalic
)

func variantOf(f style.Font) Variant {
	v := Regular
	if f.Style != style.Normal {
		v = Italic
	}
	if f.Bold {
		v++
	}
	return v
}

// Library maps font family names to parsed fonts.
type Library struct {
	families map[string]*[4]*sfnt.Font
	fallback string
}

// NewLibrary returns a library holding the Go fonts. "Go" and the generic
// names "sans-serif" and "serif" select the proportional family, "Go Mono"
// and "monospace" the fixed-width family.
func NewLibrary() (*Library, error) {
	l := &Library{
		families: make(map[string]*[4]*sfnt.Font),
		fallback: "go",
	}
	builtin := []struct {
		family string
		data   [4][]byte
	}{
		{"Go", [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}},
		{"Go Mono", [4][]byte{gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF}},
	}
	for _, b := range builtin {
		for v, data := range b.data {
			if err := l.Add(b.family, Variant(v), data); err != nil {
				return nil, err
			}
		}
	}
	l.families["sans-serif"] = l.families["go"]
	l.families["serif"] = l.families["go"]
	l.families["monospace"] = l.families["go mono"]
	return l, nil
}

// Add parses an OpenType or TrueType font and registers it under the
// given family name. Family names are case-insensitive.
func (l *Library) Add(family string, v Variant, data []byte) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("text: parsing font %q: %w", family, err)
	}
	name := strings.ToLower(family)
	fam := l.families[name]
	if fam == nil {
		fam = &[4]*sfnt.Font{}
		l.families[name] = fam
	}
	fam[v] = f
	return nil
}

// Face returns the first available family from f.Family at the given
// pixel size. Missing variants fall back to the regular member of the
// family, unknown families to the Go font.
func (l *Library) Face(f style.Font, size float64) *Face {
	fam := l.families[l.fallback]
	for _, name := range f.Family {
		if cand, ok := l.families[strings.ToLower(name)]; ok {
			fam = cand
			break
		}
	}
	font := fam[variantOf(f)]
	if font == nil {
		font = fam[Regular]
	}
	if font == nil {
		font = l.families[l.fallback][Regular]
	}
	return &Face{Font: font, Size: size}
}

// Face is a font at a given size.
type Face struct {
	Font *sfnt.Font

	// Size is the em size in pixels.
	Size float64
}
