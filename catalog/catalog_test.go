package catalog

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/achilleasa/bvhtrace/geometry"
	"github.com/achilleasa/bvhtrace/texture"
)

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(builders) {
		t.Fatalf("expected %d scene names; got %d", len(builders), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected names to be sorted; got %v", names)
	}
}

func TestUnknownScene(t *testing.T) {
	_, err := Build("teapot", Options{})
	if !errors.Is(err, ErrUnknownScene) {
		t.Fatalf("expected to get ErrUnknownScene; got %v", err)
	}
}

func TestBuildAllScenes(t *testing.T) {
	opts := Options{FrameW: 64, FrameH: 32, Seed: 1}
	for _, name := range Names() {
		if name == "earth" {
			continue
		}

		reg, err := Build(name, opts)
		if err != nil {
			t.Fatalf("[%s] %v", name, err)
		}
		if reg.ObjectCount() == 0 {
			t.Fatalf("[%s] expected scene to contain objects", name)
		}
		if reg.Camera == nil {
			t.Fatalf("[%s] expected scene to define a camera", name)
		}
		if reg.Camera.Aspect != 2 {
			t.Fatalf("[%s] expected camera aspect 2; got %f", name, reg.Camera.Aspect)
		}
	}
}

func TestRandomScenesAreReproducible(t *testing.T) {
	reg1, err := Build("spheres", Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	reg2, err := Build("spheres", Options{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	if reg1.ObjectCount() != reg2.ObjectCount() {
		t.Fatalf("expected same object count; got %d and %d", reg1.ObjectCount(), reg2.ObjectCount())
	}
	s1 := reg1.Object(1).(*geometry.Sphere)
	s2 := reg2.Object(1).(*geometry.Sphere)
	if s1.Center != s2.Center {
		t.Fatalf("expected same sphere placement; got %v and %v", s1.Center, s2.Center)
	}
}

func TestEarthSceneRequiresTexture(t *testing.T) {
	_, err := Build("earth", Options{})
	if !errors.Is(err, texture.ErrMissingImage) {
		t.Fatalf("expected to get ErrMissingImage; got %v", err)
	}

	pathToImage := filepath.Join(t.TempDir(), "earth.png")
	f, err := os.Create(pathToImage)
	if err != nil {
		t.Fatal(err)
	}
	err = png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 4)))
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	reg, err := Build("earth", Options{TexturePath: pathToImage})
	if err != nil {
		t.Fatal(err)
	}
	if reg.ObjectCount() != 1 || reg.TextureCount() != 1 {
		t.Fatalf("expected 1 object and 1 texture; got %d and %d", reg.ObjectCount(), reg.TextureCount())
	}
}
