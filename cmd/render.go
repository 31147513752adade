package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/solstice-render/pathtrace/render"
	"github.com/solstice-render/pathtrace/scene"
)

// RenderFrame parses a scene file, renders a still frame across a worker
// pool sized to GOMAXPROCS (unless overridden), and writes the result as a
// PNG alongside a per-band timing report.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	path := ctx.String("file")
	if path == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	opts := render.Options{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		FastRender:      ctx.Bool("fast"),
		Workers:         ctx.Int("workers"),
	}
	if opts.SamplesPerPixel <= 0 {
		opts.SamplesPerPixel = 1
	}

	sc, err := scene.Parse(path)
	if err != nil {
		logger.Errorf("failed to load scene %q: %v", path, err)
		return nil
	}

	frame := render.NewFrame(opts.Width, opts.Height)
	pool := render.NewPool(int64(ctx.Int("seed")))

	logger.Noticef("rendering %dx%d at %d spp", opts.Width, opts.Height, opts.SamplesPerPixel)
	start := time.Now()
	stats, err := pool.Render(context.Background(), sc, opts, frame, int64(ctx.Int("seed")))
	if err != nil {
		return err
	}
	total := time.Since(start)
	logger.Noticef("rendered frame in %s", total)

	out := ctx.String("out")
	if err := writePNG(out, frame); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", out)

	displayFrameStats(stats, total)
	return nil
}

func writePNG(path string, frame *render.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := frame.Pixel(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return png.Encode(f, img)
}

func displayFrameStats(stats []render.WorkerStats, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Render time"})

	var totalRows int
	for _, s := range stats {
		totalRows += s.Band.YEnd - s.Band.YStart
	}
	for i, s := range stats {
		rows := s.Band.YEnd - s.Band.YStart
		pct := float64(0)
		if totalRows > 0 {
			pct = 100 * float64(rows) / float64(totalRows)
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", rows),
			fmt.Sprintf("%02.1f %%", pct),
			fmt.Sprintf("%s", s.Duration),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", total)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
