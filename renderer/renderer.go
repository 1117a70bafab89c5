package renderer

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/achilleasa/bvhtrace/bvh"
	"github.com/achilleasa/bvhtrace/log"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/tracer"
)

// Samples per pass when Options.SamplesPerPass is not set.
const defaultSamplesPerPass = 4

// Renderer drives a pool of cpu tracers to produce still frames.
type Renderer struct {
	sync.Mutex

	logger log.Logger

	reg     *scene.Registry
	options Options

	// The closest-hit query structure shared by all tracers.
	accel tracer.Intersector

	frame     *tracer.Frame
	tracers   []tracer.Tracer
	scheduler tracer.BlockScheduler

	stats   FrameStats
	metrics *Metrics
}

// Create a new renderer for the scene stored in reg. The acceleration
// structure is built once and shared by all tracers.
func New(reg *scene.Registry, opts Options) (*Renderer, error) {
	if reg == nil {
		return nil, ErrSceneNotDefined
	}
	if reg.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrame
	}
	if opts.SamplesPerPixel == 0 {
		opts.SamplesPerPixel = 1
	}
	if opts.SamplesPerPass == 0 {
		opts.SamplesPerPass = defaultSamplesPerPass
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	// Every tracer needs at least one row.
	if uint32(opts.Workers) > opts.FrameH {
		opts.Workers = int(opts.FrameH)
	}

	r := &Renderer{
		logger:    log.New("renderer"),
		reg:       reg,
		options:   opts,
		frame:     tracer.NewFrame(opts.FrameW, opts.FrameH),
		scheduler: tracer.PerfectScheduler(),
		metrics:   NewMetrics(),
	}

	if err := r.setupAccelerator(); err != nil {
		return nil, err
	}

	r.tracers = make([]tracer.Tracer, opts.Workers)
	for idx := range r.tracers {
		r.tracers[idx] = tracer.NewCPUTracer(
			fmt.Sprintf("cpu-%d", idx),
			r.frame, r.accel, reg,
			opts.Seed+int64(idx),
		)
	}
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}
	r.logger.Infof("attached %d cpu tracers", len(r.tracers))

	return r, nil
}

func (r *Renderer) setupAccelerator() error {
	if !r.options.UseBVH {
		r.logger.Notice("BVH disabled; testing rays against every object")
		r.accel = bvh.NewLinear(r.reg)
		return nil
	}

	accel, err := bvh.New(r.reg, rand.New(rand.NewSource(r.options.Seed)))
	if errors.Is(err, bvh.ErrNoItems) {
		r.logger.Notice("scene is empty; rendering background only")
		r.accel = bvh.NewLinear(r.reg)
		return nil
	} else if err != nil {
		return err
	}

	stats := accel.Stats()
	r.logger.Infof("built BVH with %d nodes in %s", stats.Nodes, stats.BuildTime)
	r.accel = accel
	return nil
}

// Render a frame. The returned image has row 0 at the top.
func (r *Renderer) Render() (*image.RGBA, error) {
	r.Lock()
	defer r.Unlock()

	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	start := time.Now()
	r.frame.Clear()
	r.stats = FrameStats{
		Tracers: make([]TracerStat, len(r.tracers)),
	}
	for idx, tr := range r.tracers {
		r.stats.Tracers[idx].Id = tr.Id()
	}

	var pass uint32
	for samples := uint32(0); samples < r.options.SamplesPerPixel; pass++ {
		passSamples := r.options.SamplesPerPass
		if remaining := r.options.SamplesPerPixel - samples; passSamples > remaining {
			passSamples = remaining
		}

		if err := r.renderPass(pass, passSamples); err != nil {
			return nil, err
		}
		samples += passSamples
		r.logger.Debugf("pass %d: %d/%d samples", pass, samples, r.options.SamplesPerPixel)
	}

	img := resolve(r.frame.Accum, r.options.FrameW, r.options.FrameH, r.options.SamplesPerPixel)

	r.stats.Passes = pass
	r.stats.RenderTime = time.Since(start)
	r.metrics.frameTime.Observe(r.stats.RenderTime.Seconds())
	r.logger.Infof("rendered %dx%d frame with %d spp in %s", r.options.FrameW, r.options.FrameH, r.options.SamplesPerPixel, r.stats.RenderTime)

	return img, nil
}

// Split the frame among the tracers and wait for all blocks to complete.
func (r *Renderer) renderPass(pass, samples uint32) error {
	passStart := time.Now()
	blockAssignment := r.scheduler.Schedule(r.tracers, r.options.FrameH)

	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32
	pending := 0
	for idx, tr := range r.tracers {
		blockH := blockAssignment[idx]
		if blockH == 0 {
			continue
		}
		tr.Enqueue(tracer.BlockRequest{
			BlockY:          blockY,
			BlockH:          blockH,
			SamplesPerPixel: samples,
			Pass:            pass,
			DoneChan:        doneChan,
			ErrChan:         errChan,
		})
		blockY += blockH
		pending++
	}

	var err error
	for ; pending > 0; pending-- {
		select {
		case <-doneChan:
		case blockErr := <-errChan:
			if err == nil {
				err = blockErr
			}
		}
	}
	if err != nil {
		return err
	}

	// Collect tracer stats.
	for idx, tr := range r.tracers {
		if blockAssignment[idx] == 0 {
			continue
		}
		trStats := tr.Stats()
		stat := &r.stats.Tracers[idx]
		stat.BlockH = trStats.BlockH
		stat.FramePercent = 100.0 * float32(trStats.BlockH) / float32(r.options.FrameH)
		stat.RenderTime += trStats.RenderTime
		stat.Rays += trStats.Rays
		r.stats.Rays += trStats.Rays

		r.metrics.rays.WithLabelValues(stat.Id).Add(float64(trStats.Rays))
		r.metrics.blockRows.WithLabelValues(stat.Id).Set(float64(trStats.BlockH))
	}

	r.metrics.samples.Add(float64(samples) * float64(r.options.FrameW) * float64(r.options.FrameH))
	r.metrics.passes.Inc()
	r.metrics.passDuration.Observe(time.Since(passStart).Seconds())
	return nil
}

// Get the statistics for the last rendered frame.
func (r *Renderer) Stats() FrameStats {
	r.Lock()
	defer r.Unlock()
	return r.stats
}

// Get the renderer metrics.
func (r *Renderer) Metrics() *Metrics {
	return r.metrics
}

// Shutdown renderer and any attached tracer.
func (r *Renderer) Close() {
	r.Lock()
	defer r.Unlock()

	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}
