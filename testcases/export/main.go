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

// Command export renders all scenarios from the testcases package and
// writes them as PNG files, for visual inspection.
//
// Usage:
//
//	go run ./testcases/export [-o dir] [-options file] [-v]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/maprender"
	"seehuhn.de/go/maprender/render"
	"seehuhn.de/go/maprender/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/scenarios", "output directory")
	optFile := flag.String("options", "", "YAML or TOML file with render options")
	verbose := flag.Bool("v", false, "log rendering problems to stderr")
	flag.Parse()

	if *verbose {
		maprender.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if err := run(*outDir, *optFile); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(1)
	}
}

func run(outDir, optFile string) error {
	var opt *render.Options
	if optFile != "" {
		o, err := render.LoadOptions(optFile)
		if err != nil {
			return err
		}
		opt = &o
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			if opt != nil {
				sc.Options = *opt
			}
			fname := filepath.Join(outDir, category+"_"+sc.Name+".png")
			g.Go(func() error {
				img, err := sc.Render()
				if err != nil {
					return err
				}
				return imgio.Save(fname, img, imgio.PNGEncoder())
			})
		}
	}
	return g.Wait()
}
