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

package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrOptionsFormat is returned by LoadOptions for unknown file types.
var ErrOptionsFormat = errors.New("render: options file must be .yaml, .yml or .toml")

// Options control a render pass. Zero fields select the defaults.
type Options struct {
	// Flatness is the tolerance in pixels for approximating curves.
	Flatness float64 `yaml:"flatness" toml:"flatness"`

	// GuardBand is the margin around the view, in pixels, inside which
	// geometries are kept when clipping.
	GuardBand float64 `yaml:"guard_band" toml:"guard_band"`

	// LinearizePoints is the maximum number of points used to
	// approximate one arc segment.
	LinearizePoints int `yaml:"linearize_points" toml:"linearize_points"`

	// PixelSize is the physical size of one pixel, in meters.
	PixelSize float64 `yaml:"pixel_size" toml:"pixel_size"`

	// MetersPerUnit is the length of one world unit in meters.
	MetersPerUnit float64 `yaml:"meters_per_unit" toml:"meters_per_unit"`

	// StrictGraphicSize keeps graphics with only a size square instead
	// of using the aspect ratio of the image.
	StrictGraphicSize bool `yaml:"strict_graphic_size" toml:"strict_graphic_size"`

	// LabelCollisions drops labels which overlap an earlier label.
	LabelCollisions bool `yaml:"label_collisions" toml:"label_collisions"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Flatness:        0.25,
		GuardBand:       100,
		LinearizePoints: 100,
		PixelSize:       0.00028,
		MetersPerUnit:   1,
	}
}

// withDefaults replaces unset fields by their defaults.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Flatness <= 0 {
		o.Flatness = def.Flatness
	}
	if o.GuardBand <= 0 {
		o.GuardBand = def.GuardBand
	}
	if o.LinearizePoints <= 0 {
		o.LinearizePoints = def.LinearizePoints
	}
	if o.PixelSize <= 0 {
		o.PixelSize = def.PixelSize
	}
	if o.MetersPerUnit <= 0 {
		o.MetersPerUnit = def.MetersPerUnit
	}
	return o
}

// LoadOptions reads options from a YAML or TOML file, chosen by the file
// name extension. Settings missing from the file keep their defaults.
func LoadOptions(name string) (Options, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Options{}, err
	}

	opt := DefaultOptions()
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &opt)
	case ".toml":
		err = toml.Unmarshal(data, &opt)
	default:
		return Options{}, fmt.Errorf("%w: %s", ErrOptionsFormat, name)
	}
	if err != nil {
		return Options{}, fmt.Errorf("render: reading %s: %w", name, err)
	}
	return opt.withDefaults(), nil
}
