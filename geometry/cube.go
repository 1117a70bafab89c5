package geometry

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// An axis-aligned box built from six rectangles with outward facing normals.
type Cube struct {
	Min, Max types.Vec3

	sides List
}

// Create a new cube spanning [min, max].
func NewCube(min, max types.Vec3, mat scene.MaterialHandle) *Cube {
	return &Cube{
		Min: min,
		Max: max,
		sides: List{
			NewXYRect(min[0], max[0], min[1], max[1], max[2], mat),
			&FlipNormals{Object: NewXYRect(min[0], max[0], min[1], max[1], min[2], mat)},
			NewXZRect(min[0], max[0], min[2], max[2], max[1], mat),
			&FlipNormals{Object: NewXZRect(min[0], max[0], min[2], max[2], min[1], mat)},
			NewYZRect(min[1], max[1], min[2], max[2], max[0], mat),
			&FlipNormals{Object: NewYZRect(min[1], max[1], min[2], max[2], min[0], mat)},
		},
	}
}

// The box is the union of the padded side boxes.
func (c *Cube) BBox() (types.AABB, bool) {
	return c.sides.BBox()
}

func (c *Cube) Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	return c.sides.Hit(ray, tMin, tMax, rng)
}
