package cmd

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/achilleasa/bvhtrace/catalog"
	"github.com/achilleasa/bvhtrace/renderer"
	"github.com/urfave/cli"
)

// Render a still frame of a catalog scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	var dims [4]uint32
	for idx, name := range []string{"width", "height", "spp", "spp-per-pass"} {
		val := ctx.Int(name)
		if val < 0 || int64(val) > math.MaxUint32 {
			return fmt.Errorf("invalid value %d for flag --%s", val, name)
		}
		dims[idx] = uint32(val)
	}

	opts := renderer.Options{
		FrameW:          dims[0],
		FrameH:          dims[1],
		SamplesPerPixel: dims[2],
		SamplesPerPass:  dims[3],
		Workers:         ctx.Int("workers"),
		Seed:            ctx.Int64("seed"),
		UseBVH:          !ctx.Bool("no-bvh"),
	}

	reg, err := catalog.Build(ctx.String("scene"), catalog.Options{
		FrameW:      opts.FrameW,
		FrameH:      opts.FrameH,
		Seed:        opts.Seed,
		TexturePath: ctx.String("texture"),
	})
	if err != nil {
		return err
	}
	logger.Infof("camera: %s", reg.Camera)

	r, err := renderer.New(reg, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	if addr := ctx.String("metrics-addr"); addr != "" {
		srv, err := serveMetrics(addr, r.Metrics())
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	logger.Noticef("rendering %q (%dx%d, %d spp)", ctx.String("scene"), opts.FrameW, opts.FrameH, opts.SamplesPerPixel)
	img, err := r.Render()
	if err != nil {
		return err
	}

	// Display stats
	logger.Noticef("frame statistics\n%s", r.Stats())

	imgFile := ctx.String("out")
	start := time.Now()
	if err = renderer.SaveImage(imgFile, img); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)

	return nil
}

// Expose renderer metrics over http. The listener is bound before
// returning so address errors are reported to the caller. The caller must
// close the returned server.
func serveMetrics(addr string, metrics *renderer.Metrics) (*http.Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Errorf("metrics server: %s", err)
		}
	}()
	logger.Noticef("serving metrics on http://%s/metrics", listener.Addr())
	return srv, nil
}
