package catalog

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/geometry"
	"github.com/achilleasa/bvhtrace/material"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/texture"
	"github.com/achilleasa/bvhtrace/types"
)

// Radiance of the sky used by the outdoor scenes without light sources.
var skyColor = types.XYZ(0.7, 0.8, 1.0)

// Registration helpers shared by the scene builders.
type sceneBuilder struct {
	*scene.Registry
}

func newSceneBuilder() sceneBuilder {
	return sceneBuilder{Registry: scene.NewRegistry()}
}

func (b sceneBuilder) solid(color types.Vec3) scene.TextureHandle {
	return b.AddTexture(&texture.Constant{Color: color})
}

func (b sceneBuilder) lambertian(color types.Vec3) scene.MaterialHandle {
	return b.AddMaterial(&material.Lambertian{Albedo: b.solid(color)})
}

func (b sceneBuilder) light(radiance types.Vec3) scene.MaterialHandle {
	return b.AddMaterial(&material.DiffuseLight{Emit: b.solid(radiance)})
}

func (b sceneBuilder) checker(odd, even types.Vec3) scene.TextureHandle {
	return b.AddTexture(&texture.Checker{Odd: b.solid(odd), Even: b.solid(even)})
}

func defaultCamera(opts Options) *scene.Camera {
	return scene.NewCamera(
		types.XYZ(13, 2, 3), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0),
		20, opts.aspect(), 0.1, 10, 0, 1,
	)
}

func cornellCamera(opts Options) *scene.Camera {
	return scene.NewCamera(
		types.XYZ(278, 278, -800), types.XYZ(278, 278, 0), types.XYZ(0, 1, 0),
		40, opts.aspect(), 0, 10, 0, 1,
	)
}

// The book cover scene: a checkered ground with a grid of small random
// spheres and three large ones.
func buildSpheres(opts Options, rng *rand.Rand) (*scene.Registry, error) {
	return randomSpheres(opts, rng, false), nil
}

// Like spheres but diffuse spheres bounce during the shutter interval.
func buildMovingSpheres(opts Options, rng *rand.Rand) (*scene.Registry, error) {
	return randomSpheres(opts, rng, true), nil
}

func randomSpheres(opts Options, rng *rand.Rand, moving bool) *scene.Registry {
	b := newSceneBuilder()
	b.Background = skyColor
	b.Camera = defaultCamera(opts)

	ground := b.AddMaterial(&material.Lambertian{Albedo: b.checker(types.XYZ(0.2, 0.3, 0.1), types.Uniform(0.9))})
	b.AddObject(geometry.NewSphere(types.XYZ(0, -1000, 0), 1000, ground))

	glass := b.AddMaterial(&material.Dielectric{RefIdx: 1.5})
	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			chooseMat := rng.Float32()
			center := types.XYZ(float32(a)+0.9*rng.Float32(), 0.2, float32(c)+0.9*rng.Float32())
			if center.Sub(types.XYZ(4, 0.2, 0)).Len() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				mat := b.lambertian(types.XYZ(
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
					rng.Float32()*rng.Float32(),
				))
				if moving {
					center1 := center.Add(types.XYZ(0, 0.5*rng.Float32(), 0))
					b.AddObject(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, mat))
				} else {
					b.AddObject(geometry.NewSphere(center, 0.2, mat))
				}
			case chooseMat < 0.95:
				mat := b.AddMaterial(material.NewMetal(types.XYZ(
					0.5*(1+rng.Float32()),
					0.5*(1+rng.Float32()),
					0.5*(1+rng.Float32()),
				), 0.5*rng.Float32()))
				b.AddObject(geometry.NewSphere(center, 0.2, mat))
			default:
				b.AddObject(geometry.NewSphere(center, 0.2, glass))
			}
		}
	}

	b.AddObject(geometry.NewSphere(types.XYZ(0, 1, 0), 1, glass))
	b.AddObject(geometry.NewSphere(types.XYZ(-4, 1, 0), 1, b.lambertian(types.XYZ(0.4, 0.2, 0.1))))
	b.AddObject(geometry.NewSphere(types.XYZ(4, 1, 0), 1, b.AddMaterial(material.NewMetal(types.XYZ(0.7, 0.6, 0.5), 0))))

	return b.Registry
}

func buildTwoPerlinSpheres(opts Options, rng *rand.Rand) (*scene.Registry, error) {
	b := newSceneBuilder()
	b.Background = skyColor
	b.Camera = defaultCamera(opts)

	marble := b.AddMaterial(&material.Lambertian{
		Albedo: b.AddTexture(&texture.Marble{Perlin: texture.NewPerlin(rng), Scale: 4}),
	})
	b.AddObject(geometry.NewSphere(types.XYZ(0, -1000, 0), 1000, marble))
	b.AddObject(geometry.NewSphere(types.XYZ(0, 2, 0), 2, marble))

	return b.Registry, nil
}

func buildSimpleLight(opts Options, rng *rand.Rand) (*scene.Registry, error) {
	b := newSceneBuilder()
	b.Camera = scene.NewCamera(
		types.XYZ(18, 5, 3), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0),
		40, opts.aspect(), 0.1, 10, 0, 1,
	)

	marble := b.AddMaterial(&material.Lambertian{
		Albedo: b.AddTexture(&texture.Marble{Perlin: texture.NewPerlin(rng), Scale: 4}),
	})
	light := b.light(types.Uniform(4))

	b.AddObject(geometry.NewSphere(types.XYZ(0, -1000, 0), 1000, marble))
	b.AddObject(geometry.NewSphere(types.XYZ(0, 2, 0), 2, marble))
	b.AddObject(geometry.NewSphere(types.XYZ(0, 7, 0), 2, light))
	b.AddObject(geometry.NewXYRect(3, 5, 1, 3, -2, light))

	return b.Registry, nil
}

// Add the walls, floor, ceiling and light of the Cornell box and return the
// white material for the box contents.
func cornellRoom(b sceneBuilder, lightRadiance float32) scene.MaterialHandle {
	red := b.lambertian(types.XYZ(0.65, 0.05, 0.05))
	white := b.lambertian(types.Uniform(0.73))
	green := b.lambertian(types.XYZ(0.12, 0.45, 0.15))
	light := b.light(types.Uniform(lightRadiance))

	b.AddObject(&geometry.FlipNormals{Object: geometry.NewYZRect(0, 555, 0, 555, 555, green)})
	b.AddObject(geometry.NewYZRect(0, 555, 0, 555, 0, red))
	if lightRadiance > 10 {
		b.AddObject(geometry.NewXZRect(213, 343, 227, 332, 554, light))
	} else {
		b.AddObject(geometry.NewXZRect(113, 443, 127, 432, 554, light))
	}
	b.AddObject(&geometry.FlipNormals{Object: geometry.NewXZRect(0, 555, 0, 555, 555, white)})
	b.AddObject(geometry.NewXZRect(0, 555, 0, 555, 0, white))
	b.AddObject(&geometry.FlipNormals{Object: geometry.NewXYRect(0, 555, 0, 555, 555, white)})

	return white
}

// Create the short and tall Cornell boxes.
func cornellBlocks(white scene.MaterialHandle) (short, tall scene.Intersectable) {
	short = &geometry.Translate{
		Object: geometry.NewRotateY(geometry.NewCube(types.XYZ(0, 0, 0), types.Uniform(165), white), -18),
		Offset: types.XYZ(130, 0, 65),
	}
	tall = &geometry.Translate{
		Object: geometry.NewRotateY(geometry.NewCube(types.XYZ(0, 0, 0), types.XYZ(165, 330, 165), white), 15),
		Offset: types.XYZ(265, 0, 295),
	}
	return short, tall
}

func buildCornellBox(opts Options, _ *rand.Rand) (*scene.Registry, error) {
	b := newSceneBuilder()
	b.Camera = cornellCamera(opts)

	white := cornellRoom(b, 15)
	short, tall := cornellBlocks(white)
	b.AddObject(short)
	b.AddObject(tall)

	return b.Registry, nil
}

func buildCornellSmoke(opts Options, _ *rand.Rand) (*scene.Registry, error) {
	b := newSceneBuilder()
	b.Camera = cornellCamera(opts)

	white := cornellRoom(b, 7)
	short, tall := cornellBlocks(white)
	lightSmoke := b.AddMaterial(&material.Isotropic{Albedo: b.solid(types.Uniform(1))})
	darkSmoke := b.AddMaterial(&material.Isotropic{Albedo: b.solid(types.Uniform(0))})
	b.AddObject(geometry.NewConstantMedium(short, 0.01, lightSmoke))
	b.AddObject(geometry.NewConstantMedium(tall, 0.01, darkSmoke))

	return b.Registry, nil
}

// The closing scene of the series exercising every primitive, material and
// texture type. The earth sphere is only added when an image is supplied.
func buildFinal(opts Options, rng *rand.Rand) (*scene.Registry, error) {
	b := newSceneBuilder()
	b.Camera = scene.NewCamera(
		types.XYZ(478, 278, -600), types.XYZ(278, 278, 0), types.XYZ(0, 1, 0),
		40, opts.aspect(), 0, 10, 0, 1,
	)

	// Floor made of boxes of random height.
	ground := b.lambertian(types.XYZ(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			const w = 100
			x0 := float32(-1000 + i*w)
			z0 := float32(-1000 + j*w)
			y1 := 100 * (rng.Float32() + 0.01)
			b.AddObject(geometry.NewCube(types.XYZ(x0, 0, z0), types.XYZ(x0+w, y1, z0+w), ground))
		}
	}

	b.AddObject(geometry.NewXZRect(123, 423, 147, 412, 554, b.light(types.Uniform(7))))

	center := types.XYZ(400, 400, 200)
	b.AddObject(geometry.NewMovingSphere(center, center.Add(types.XYZ(30, 0, 0)), 0, 1, 50, b.lambertian(types.XYZ(0.7, 0.3, 0.1))))

	glass := b.AddMaterial(&material.Dielectric{RefIdx: 1.5})
	b.AddObject(geometry.NewSphere(types.XYZ(260, 150, 45), 50, glass))
	b.AddObject(geometry.NewSphere(types.XYZ(0, 150, 145), 50, b.AddMaterial(material.NewMetal(types.XYZ(0.8, 0.8, 0.9), 10))))

	// Blue subsurface sphere: a glass shell filled with a dense medium.
	boundary := geometry.NewSphere(types.XYZ(360, 150, 145), 70, glass)
	b.AddObject(boundary)
	blueMist := b.AddMaterial(&material.Isotropic{Albedo: b.solid(types.XYZ(0.2, 0.4, 0.9))})
	b.AddObject(geometry.NewConstantMedium(boundary, 0.2, blueMist))

	// Thin global haze.
	haze := b.AddMaterial(&material.Isotropic{Albedo: b.solid(types.Uniform(1))})
	b.AddObject(geometry.NewConstantMedium(geometry.NewSphere(types.XYZ(0, 0, 0), 5000, glass), 0.0001, haze))

	if opts.TexturePath != "" {
		img, err := texture.LoadImage(opts.TexturePath)
		if err != nil {
			return nil, err
		}
		earth := b.AddMaterial(&material.Lambertian{Albedo: b.AddTexture(img)})
		b.AddObject(geometry.NewSphere(types.XYZ(400, 200, 400), 100, earth))
	}

	noise := b.AddMaterial(&material.Lambertian{
		Albedo: b.AddTexture(&texture.Noise{Perlin: texture.NewPerlin(rng), Scale: 0.1}),
	})
	b.AddObject(geometry.NewSphere(types.XYZ(220, 280, 300), 80, noise))

	// A cluster of small spheres kept together as a single rotated object.
	white := b.lambertian(types.Uniform(0.73))
	cluster := make(geometry.List, 0, 1000)
	for i := 0; i < 1000; i++ {
		c := types.XYZ(165*rng.Float32(), 165*rng.Float32(), 165*rng.Float32())
		cluster = append(cluster, geometry.NewSphere(c, 10, white))
	}
	b.AddObject(&geometry.Translate{
		Object: geometry.NewRotateY(cluster, 15),
		Offset: types.XYZ(-100, 270, 395),
	})

	return b.Registry, nil
}

// A single sphere wrapped with an image texture.
func buildEarth(opts Options, _ *rand.Rand) (*scene.Registry, error) {
	img, err := texture.LoadImage(opts.TexturePath)
	if err != nil {
		return nil, err
	}

	b := newSceneBuilder()
	b.Background = skyColor
	b.Camera = defaultCamera(opts)

	earth := b.AddMaterial(&material.Lambertian{Albedo: b.AddTexture(img)})
	b.AddObject(geometry.NewSphere(types.XYZ(0, 0, 0), 2, earth))

	return b.Registry, nil
}
