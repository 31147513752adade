package render

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/solstice-render/pathtrace/rng"
	"github.com/solstice-render/pathtrace/scene"
)

// Band is a disjoint horizontal slice of the frame, [YStart, YEnd).
type Band struct {
	YStart, YEnd int
}

// BandScheduler partitions an image height across a worker count. It is an
// interface (rather than a single hardcoded function) so the static,
// equal-split policy §5 requires can be swapped for another one in tests
// without touching the worker loop -- mirroring the teacher's
// tracer.BlockScheduler, generalized from adaptive per-device feedback to
// a pluggable static-split contract.
type BandScheduler interface {
	Bands(height, workers int) []Band
}

// EqualBandScheduler splits the frame into workers bands, band k covering
// rows [height*k/workers, height*(k+1)/workers), so band heights differ by
// at most one row and every row is covered exactly once.
type EqualBandScheduler struct{}

func (EqualBandScheduler) Bands(height, workers int) []Band {
	if workers <= 0 {
		workers = 1
	}
	bands := make([]Band, workers)
	for k := 0; k < workers; k++ {
		bands[k] = Band{YStart: height * k / workers, YEnd: height * (k + 1) / workers}
	}
	bands[workers-1].YEnd = height
	return bands
}

// WorkerStats reports one band's timing, surfaced by the CLI as a table
// after each still-frame render.
type WorkerStats struct {
	Band     Band
	Duration time.Duration
}

// Pool renders a whole Frame by handing each worker goroutine a disjoint
// band and its own thread-local RNG. Workers run their entire band to
// completion with no task stealing and no dynamic repartitioning; there is
// no shared mutable state across bands, so no locking is needed.
type Pool struct {
	Scheduler BandScheduler
	Cones     *rng.ConeTable

	// Cache holds every pixel's first-bounce collision across calls to
	// Render. A stationary camera re-rendered through the same Pool reuses
	// it instead of retracing primary rays; InvalidateCache must be called
	// once the camera moves.
	Cache *Cache
}

func NewPool(seed int64) *Pool {
	return &Pool{
		Scheduler: EqualBandScheduler{},
		Cones:     rng.NewConeTable(seed),
	}
}

// InvalidateCache discards the pool's first-bounce cache. Callers driving
// an interactive camera should invoke this every time it moves.
func (p *Pool) InvalidateCache() {
	if p.Cache != nil {
		p.Cache.Invalidate()
	}
}

// Render fills frame with opts.SamplesPerPixel samples per pixel using
// sc.Camera, reseeding every worker's RNG from seed so repeat renders of
// the same frame with the same seed are reproducible.
func (p *Pool) Render(ctx context.Context, sc *scene.Scene, opts Options, frame *Frame, seed int64) ([]WorkerStats, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if p.Cache == nil || p.Cache.width != frame.Width || p.Cache.height != frame.Height {
		p.Cache = NewCache(frame.Width, frame.Height)
	}
	bands := p.Scheduler.Bands(frame.Height, workers)
	stats := make([]WorkerStats, len(bands))

	g, gctx := errgroup.WithContext(ctx)
	for i, band := range bands {
		i, band := i, band
		g.Go(func() error {
			start := time.Now()
			src := rng.New(seed + int64(i))
			if err := p.renderBand(gctx, sc, opts, frame, band, src); err != nil {
				return err
			}
			stats[i] = WorkerStats{Band: band, Duration: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (p *Pool) renderBand(ctx context.Context, sc *scene.Scene, opts Options, frame *Frame, band Band, src *rng.Source) error {
	for y := band.YStart; y < band.YEnd; y++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		for x := 0; x < frame.Width; x++ {
			p.renderPixel(sc, opts, frame, x, y, src)
		}
	}
	return nil
}

func (p *Pool) renderPixel(sc *scene.Scene, opts Options, frame *Frame, x, y int, src *rng.Source) {
	for s := 0; s < opts.SamplesPerPixel; s++ {
		jitter := src.Disc()
		u := (float32(x) + 0.5 + jitter[0]*0.5) / float32(frame.Width)
		v := 1 - (float32(y)+0.5+jitter[1]*0.5)/float32(frame.Height)
		r := sc.Camera.Ray(u, v, src)

		if s == 0 {
			color, first := TraceSceneCached(sc, r, opts.FastRender, src, p.Cones, p.Cache, x, y)
			frame.AddSample(x, y, color)
			if first.Found {
				frame.SetFirstHit(x, y, first.Collision.Normal, first.Collision.T, first.Collision.Material)
			}
			continue
		}
		color := TraceScene(sc, r, opts.FastRender, src, p.Cones)
		frame.AddSample(x, y, color)
	}
}
