package types

// A ray with an origin, a direction and the shutter time it was emitted at.
// Rays are values; every bounce creates a new one.
type Ray struct {
	Origin    Vec3
	Direction Vec3

	// Shutter time. Geometry with motion uses it to place itself; nothing
	// else interprets it.
	Time float32
}

// Create a new ray.
func NewRay(origin, direction Vec3, time float32) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		Time:      time,
	}
}

// Get the point at parametric distance t along the ray.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Get the component-wise inverse of the ray direction for slab tests.
func (r Ray) InvDirection() Vec3 {
	return r.Direction.Recip()
}
