package tracer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/achilleasa/bvhtrace/log"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// Frame accumulates radiance samples for each pixel. Rows are stored top
// to bottom. Tracers write to disjoint row ranges so no locking is needed.
type Frame struct {
	W, H  uint32
	Accum []types.Vec3
}

// Allocate an accumulation frame.
func NewFrame(w, h uint32) *Frame {
	return &Frame{
		W:     w,
		H:     h,
		Accum: make([]types.Vec3, w*h),
	}
}

// Reset all accumulated samples.
func (f *Frame) Clear() {
	for i := range f.Accum {
		f.Accum[i] = types.Vec3{}
	}
}

// An intersector wrapper that counts queries.
type countingIntersector struct {
	Intersector
	rays uint64
}

func (c *countingIntersector) Query(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	c.rays++
	return c.Intersector.Query(ray, tMin, tMax, rng)
}

// A tracer that renders blocks on the cpu. Each tracer owns a private
// random generator and processes requests on its own goroutine.
type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	id    string
	frame *Frame
	reg   *scene.Registry
	accel *countingIntersector
	rng   *rand.Rand

	// A channel for receiving block requests from the renderer.
	blockReqChan chan BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered block.
	stats *Stats
}

// Create a new cpu tracer that adds samples to frame. The accelerator and
// registry are shared read-only between tracers.
func NewCPUTracer(id string, frame *Frame, accel Intersector, reg *scene.Registry, seed int64) Tracer {
	tr := &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		frame:        frame,
		reg:          reg,
		accel:        &countingIntersector{Intersector: accel},
		rng:          rand.New(rand.NewSource(seed)),
		blockReqChan: make(chan BlockRequest, 1),
		closeChan:    make(chan struct{}),
		stats:        &Stats{},
	}

	tr.startWorker()
	return tr
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers are assumed to run at the baseline speed.
func (tr *cpuTracer) Speed() uint32 {
	return 1
}

// Enqueue block request. Blocks until the worker accepts the request.
func (tr *cpuTracer) Enqueue(blockReq BlockRequest) {
	tr.blockReqChan <- blockReq
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *Stats {
	return tr.stats
}

// Shutdown the worker. It is safe to call Close more than once.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}
	close(tr.closeChan)
	tr.wg.Wait()
	tr.closeChan = nil
}

// Spawn a go-routine to process block render requests.
func (tr *cpuTracer) startWorker() {
	readyChan := make(chan struct{})
	closeChan := tr.closeChan
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		close(readyChan)
		for {
			select {
			case blockReq := <-tr.blockReqChan:
				if err := tr.validate(&blockReq); err != nil {
					blockReq.ErrChan <- err
					continue
				}

				startTime := time.Now()
				tr.accel.rays = 0
				tr.renderBlock(&blockReq)

				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)
				tr.stats.Rays = tr.accel.rays
				tr.logger.Debugf(
					"pass %d: rendered rows [%d, %d) in %s",
					blockReq.Pass, blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, tr.stats.RenderTime,
				)

				blockReq.DoneChan <- blockReq.BlockH
			case <-closeChan:
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

func (tr *cpuTracer) validate(blockReq *BlockRequest) error {
	if blockReq.BlockY+blockReq.BlockH > tr.frame.H {
		return fmt.Errorf("tracer %s: block [%d, %d) exceeds frame height %d", tr.id, blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, tr.frame.H)
	}
	return nil
}

// Add SamplesPerPixel samples to every pixel in the requested rows.
func (tr *cpuTracer) renderBlock(blockReq *BlockRequest) {
	camera := tr.reg.Camera
	frameW, frameH := tr.frame.W, tr.frame.H
	invW := 1 / float32(frameW)
	invH := 1 / float32(frameH)

	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		// The camera expects t = 0 at the bottom of the frame.
		row := float32(frameH - 1 - y)
		offset := y * frameW
		for x := uint32(0); x < frameW; x++ {
			var color types.Vec3
			for s := uint32(0); s < blockReq.SamplesPerPixel; s++ {
				u := (float32(x) + tr.rng.Float32()) * invW
				v := (row + tr.rng.Float32()) * invH
				ray := camera.Ray(u, v, tr.rng)
				color = color.Add(Trace(ray, 0, tr.accel, tr.reg, tr.rng))
			}
			tr.frame.Accum[offset+x] = tr.frame.Accum[offset+x].Add(color)
		}
	}
}
