package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/achilleasa/bvhtrace/log"
	"github.com/achilleasa/bvhtrace/scene"
)

var ErrUnknownScene = errors.New("catalog: unknown scene")

// Scene construction options.
type Options struct {
	// Frame dimensions; used for the camera aspect ratio.
	FrameW uint32
	FrameH uint32

	// Seed for the random scene content.
	Seed int64

	// Path or URL of the image used by textured scenes.
	TexturePath string
}

func (o Options) aspect() float32 {
	if o.FrameH == 0 {
		return 1
	}
	return float32(o.FrameW) / float32(o.FrameH)
}

type builderFn func(opts Options, rng *rand.Rand) (*scene.Registry, error)

var builders = map[string]builderFn{
	"spheres":            buildSpheres,
	"moving-spheres":     buildMovingSpheres,
	"two-perlin-spheres": buildTwoPerlinSpheres,
	"simple-light":       buildSimpleLight,
	"cornell-box":        buildCornellBox,
	"cornell-smoke":      buildCornellSmoke,
	"final":              buildFinal,
	"earth":              buildEarth,
}

// Get the sorted list of available scene names.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build the named scene. Scenes with random content are reproducible for a
// given seed.
func Build(name string, opts Options) (*scene.Registry, error) {
	builder, exists := builders[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	reg, err := builder(opts, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, fmt.Errorf("catalog: could not build scene %q: %w", name, err)
	}

	log.New("catalog").Infof(
		"built scene %q: %d objects, %d materials, %d textures",
		name, reg.ObjectCount(), reg.MaterialCount(), reg.TextureCount(),
	)
	return reg, nil
}
