package scene

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/types"
)

// Handles index the registry's append-only object, material and texture lists.
type ObjectHandle uint32
type MaterialHandle uint32
type TextureHandle uint32

// The result of a successful ray intersection.
type HitRecord struct {
	// Parametric distance along the ray.
	T float32

	// World-space intersection point.
	P types.Vec3

	// Texture coordinates.
	U, V float32

	// Surface normal.
	Normal types.Vec3

	// Material of the struck surface.
	Material MaterialHandle
}

// The Intersectable interface is implemented by all renderable geometry.
type Intersectable interface {
	// Get the object's bounding box. If the object has no well-defined
	// extent the second return value is false.
	BBox() (types.AABB, bool)

	// Intersect ray with the object inside [tMin, tMax]. The supplied
	// generator is owned by the calling worker.
	Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool)
}

// The TextureSource interface resolves texture handles.
type TextureSource interface {
	Texture(handle TextureHandle) Texture
}

// The Texture interface is implemented by all surface color sources.
type Texture interface {
	Value(textures TextureSource, u, v float32, p types.Vec3) types.Vec3
}

// The Material interface is implemented by all surface materials.
type Material interface {
	// Scatter an incoming ray. If the material absorbs the ray the last
	// return value is false.
	Scatter(rayIn types.Ray, hit *HitRecord, textures TextureSource, rng *rand.Rand) (attenuation types.Vec3, scattered types.Ray, ok bool)

	// Get the radiance emitted at a surface point.
	Emitted(textures TextureSource, u, v float32, p types.Vec3) types.Vec3
}
