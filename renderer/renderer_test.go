package renderer

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/achilleasa/bvhtrace/geometry"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

type glowMaterial struct {
	emit types.Vec3
}

func (m *glowMaterial) Scatter(types.Ray, *scene.HitRecord, scene.TextureSource, *rand.Rand) (types.Vec3, types.Ray, bool) {
	return types.Vec3{}, types.Ray{}, false
}

func (m *glowMaterial) Emitted(scene.TextureSource, float32, float32, types.Vec3) types.Vec3 {
	return m.emit
}

func testCamera() *scene.Camera {
	return scene.NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), types.XYZ(0, 1, 0), 90, 1, 0, 1, 0, 0)
}

// The camera sits inside a glowing sphere so every pixel sees the same
// radiance.
func glowScene(radiance float32) *scene.Registry {
	reg := scene.NewRegistry()
	reg.Camera = testCamera()
	reg.AddObject(geometry.NewSphere(types.Vec3{}, 10, reg.AddMaterial(&glowMaterial{emit: types.Uniform(radiance)})))
	return reg
}

func TestRendererValidation(t *testing.T) {
	if _, err := New(nil, Options{FrameW: 1, FrameH: 1}); err != ErrSceneNotDefined {
		t.Fatalf("expected to get ErrSceneNotDefined; got %v", err)
	}

	if _, err := New(scene.NewRegistry(), Options{FrameW: 1, FrameH: 1}); err != ErrCameraNotDefined {
		t.Fatalf("expected to get ErrCameraNotDefined; got %v", err)
	}

	if _, err := New(glowScene(1), Options{FrameW: 0, FrameH: 1}); err != ErrInvalidFrame {
		t.Fatalf("expected to get ErrInvalidFrame; got %v", err)
	}
}

func TestRenderUniformFrame(t *testing.T) {
	for _, useBVH := range []bool{false, true} {
		r, err := New(glowScene(0.25), Options{
			FrameW:          8,
			FrameH:          6,
			SamplesPerPixel: 10,
			SamplesPerPass:  4,
			Workers:         3,
			Seed:            1,
			UseBVH:          useBVH,
		})
		if err != nil {
			t.Fatal(err)
		}

		img, err := r.Render()
		if err != nil {
			r.Close()
			t.Fatal(err)
		}

		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
			t.Fatalf("[bvh: %t] expected 8x6 image; got %v", useBVH, img.Bounds())
		}
		for y := 0; y < 6; y++ {
			for x := 0; x < 8; x++ {
				c := img.RGBAAt(x, y)
				if c.R != 127 || c.G != 127 || c.B != 127 || c.A != 255 {
					t.Fatalf("[bvh: %t] expected pixel (%d, %d) to be gray; got %v", useBVH, x, y, c)
				}
			}
		}

		stats := r.Stats()
		if stats.Passes != 3 {
			t.Fatalf("[bvh: %t] expected 3 passes; got %d", useBVH, stats.Passes)
		}
		if stats.Rays != 8*6*10 {
			t.Fatalf("[bvh: %t] expected %d rays; got %d", useBVH, 8*6*10, stats.Rays)
		}
		if len(stats.Tracers) != 3 {
			t.Fatalf("[bvh: %t] expected stats for 3 tracers; got %d", useBVH, len(stats.Tracers))
		}
		var rows uint32
		for _, stat := range stats.Tracers {
			rows += stat.BlockH
		}
		if rows != 6 {
			t.Fatalf("[bvh: %t] expected tracer blocks to cover 6 rows; got %d", useBVH, rows)
		}

		if passes := testutil.ToFloat64(r.Metrics().passes); passes != 3 {
			t.Fatalf("[bvh: %t] expected passes metric to be 3; got %f", useBVH, passes)
		}
		if samples := testutil.ToFloat64(r.Metrics().samples); samples != 8*6*10 {
			t.Fatalf("[bvh: %t] expected samples metric to be %d; got %f", useBVH, 8*6*10, samples)
		}

		r.Close()
	}
}

func TestRenderRowOrder(t *testing.T) {
	// A glowing ceiling above the camera and nothing below it.
	reg := scene.NewRegistry()
	reg.Camera = testCamera()
	reg.AddObject(geometry.NewXZRect(-1000, 1000, -1000, 1000, 1, reg.AddMaterial(&glowMaterial{emit: types.Uniform(1)})))

	r, err := New(reg, Options{FrameW: 4, FrameH: 8, SamplesPerPixel: 2, Workers: 2, UseBVH: true})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	img, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}

	if c := img.RGBAAt(0, 0); c.R != 255 {
		t.Fatalf("expected top row to see the ceiling; got %v", c)
	}
	if c := img.RGBAAt(0, 7); c.R != 0 {
		t.Fatalf("expected bottom row to see the background; got %v", c)
	}
}

func TestRenderEmptyScene(t *testing.T) {
	reg := scene.NewRegistry()
	reg.Camera = testCamera()
	reg.Background = types.Uniform(1)

	r, err := New(reg, Options{FrameW: 2, FrameH: 2, UseBVH: true, Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if len(r.tracers) != 2 {
		t.Fatalf("expected worker count to be clamped to the frame height; got %d", len(r.tracers))
	}

	img, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(1, 1); c.R != 255 {
		t.Fatalf("expected background color; got %v", c)
	}
}

func TestToneMap(t *testing.T) {
	specs := []struct {
		in  float32
		exp uint8
	}{
		{0, 0},
		{-1, 0},
		{float32(math.NaN()), 0},
		{0.25, 127},
		{1, 255},
		{16, 255},
	}

	for specIndex, spec := range specs {
		if got := toneMap(spec.in); got != spec.exp {
			t.Fatalf("[spec %d] expected %d; got %d", specIndex, spec.exp, got)
		}
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.jpg", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(path, img); err != nil {
			t.Fatalf("[%s] %v", name, err)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("[%s] %v", name, err)
		}
		if cfg.Width != 3 || cfg.Height != 2 {
			t.Fatalf("[%s] expected 3x2 image; got %dx%d", name, cfg.Width, cfg.Height)
		}
	}

	if err := SaveImage(filepath.Join(dir, "out.gif"), img); err == nil {
		t.Fatal("expected unsupported format error")
	}
}
