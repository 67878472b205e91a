/*
DESCRIPTION
  rmvbench drives rmv.Encoder over a directory of raw interleaved BGR24
  frame dumps and plots a per-frame packet-size / block-mode chart,
  grounded in cmd/rv/probe.go's use of gonum.org/v1/gonum/stat and
  styled after that package's evaluation-then-summarize shape.

AUTHOR
  Deshi Okafor <deshi@rmv-project.org>

LICENSE
  Copyright (C) 2026 the Retro Motion Video Project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Retro Motion Video Project.
*/

// rmvbench benchmarks rmv.Encoder over a directory of raw BGR24 frame
// dumps and plots per-frame packet size and block-mode statistics.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/utils/logging"

	"github.com/deepvideo/rmv"
)

func main() {
	dir := flag.String("dir", "", "directory of raw interleaved BGR24 frame dumps, one file per frame")
	width := flag.Int("width", 0, "frame width")
	height := flag.Int("height", 0, "frame height")
	keyint := flag.Int("keyint", 25, "minimum keyframe interval")
	meRange := flag.Int("merange", 0, "motion search range (0 selects the codec default)")
	out := flag.String("out", "rmvbench.png", "path to write the per-frame statistics chart to")
	flag.Parse()

	l := logging.New(logging.Info, os.Stderr, true)

	if *dir == "" || *width <= 0 || *height <= 0 {
		l.Fatal("-dir, -width and -height are required")
	}

	if err := run(*dir, *width, *height, *keyint, *meRange, *out, l); err != nil {
		l.Fatal("benchmark failed", "error", err)
	}
}

// frameStat is one frame's contribution to the benchmark: the encoded
// packet size in bytes and, for inter frames, the block mode counters
// rmv.Encoder.LastFrameStats reports.
type frameStat struct {
	bytes         int
	keyframe      bool
	zero, perfect int
	errorBlocks   int
}

func run(dir string, width, height, keyint, meRange int, outPath string, l logging.Logger) error {
	paths, err := framePaths(dir)
	if err != nil {
		return fmt.Errorf("could not list frame dumps: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no frame dumps found in %s", dir)
	}

	enc, err := rmv.NewEncoder(rmv.Config{Width: width, Height: height, KeyintMin: keyint, MERange: meRange, Logger: l})
	if err != nil {
		return fmt.Errorf("could not create encoder: %w", err)
	}

	frameSize := width * height * 3
	buf := make([]byte, frameSize)
	stats := make([]frameStat, 0, len(paths))

	for i, p := range paths {
		if err := readFrameFile(p, buf); err != nil {
			return fmt.Errorf("could not read %s: %w", p, err)
		}
		packet, keyframe, err := enc.EncodeFrame(buf, 0)
		if err != nil {
			return fmt.Errorf("could not encode frame %d (%s): %w", i, p, err)
		}
		fs := enc.LastFrameStats()
		stats = append(stats, frameStat{
			bytes:       len(packet),
			keyframe:    keyframe,
			zero:        fs.ZeroBlocks,
			perfect:     fs.PerfectBlocks,
			errorBlocks: fs.ErrorBlocks,
		})
	}

	sizes := make([]float64, len(stats))
	for i, fs := range stats {
		sizes[i] = float64(fs.bytes)
	}
	mean, variance := stat.MeanVariance(sizes, nil)
	l.Info("benchmark complete",
		"frames", len(stats),
		"mean_bytes", mean,
		"stddev_bytes", stat.StdDev(sizes, nil),
		"variance_bytes", variance,
	)

	return plotStats(stats, outPath)
}

// plotStats renders the per-frame packet size and ERROR_DIRECT block
// count as two lines on one chart, saved to a PNG (see DESIGN.md for
// the gonum.org/v1/plot grounding note).
func plotStats(stats []frameStat, outPath string) error {
	p := plot.New()
	p.Title.Text = "RMV encode benchmark"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "packet bytes"

	sizePoints := make(plotter.XYs, len(stats))
	errPoints := make(plotter.XYs, len(stats))
	for i, fs := range stats {
		sizePoints[i] = plotter.XY{X: float64(i), Y: float64(fs.bytes)}
		errPoints[i] = plotter.XY{X: float64(i), Y: float64(fs.errorBlocks)}
	}

	sizeLine, err := plotter.NewLine(sizePoints)
	if err != nil {
		return fmt.Errorf("could not build packet-size line: %w", err)
	}
	sizeLine.Color = color.RGBA{B: 200, A: 255}

	errLine, err := plotter.NewLine(errPoints)
	if err != nil {
		return fmt.Errorf("could not build error-block line: %w", err)
	}
	errLine.Color = color.RGBA{R: 200, A: 255}
	errLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(sizeLine, errLine)
	p.Legend.Add("packet bytes", sizeLine)
	p.Legend.Add("ERROR_DIRECT blocks", errLine)

	return p.Save(8*vg.Inch, 4*vg.Inch, outPath)
}

// framePaths returns the sorted raw frame dump paths under dir, so
// frames encode in filename order (mirroring the reference encoder's
// sequential frame submission model, spec.md section 5).
func framePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func readFrameFile(path string, buf []byte) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.ReadFull(f, buf)
	return err
}
