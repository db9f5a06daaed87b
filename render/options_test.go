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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(content), 0o644))
	return fname
}

func TestLoadOptionsYAML(t *testing.T) {
	fname := writeFile(t, "render.yaml", "guard_band: 20\nlabel_collisions: true\nflatness: -1\n")
	opt, err := LoadOptions(fname)
	require.NoError(t, err)

	want := DefaultOptions()
	want.GuardBand = 20
	want.LabelCollisions = true
	assert.Equal(t, want, opt)
}

func TestLoadOptionsTOML(t *testing.T) {
	fname := writeFile(t, "render.toml", "pixel_size = 0.001\nlinearize_points = 12\nstrict_graphic_size = true\n")
	opt, err := LoadOptions(fname)
	require.NoError(t, err)

	want := DefaultOptions()
	want.PixelSize = 0.001
	want.LinearizePoints = 12
	want.StrictGraphicSize = true
	assert.Equal(t, want, opt)
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(writeFile(t, "render.json", "{}"))
	assert.ErrorIs(t, err, ErrOptionsFormat)

	_, err = LoadOptions(writeFile(t, "bad.yaml", "guard_band: [1, 2"))
	assert.Error(t, err)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultsFillZeroFields(t *testing.T) {
	assert.Equal(t, DefaultOptions(), Options{}.withDefaults())
}
