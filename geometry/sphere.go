package geometry

import (
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// A static sphere.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Material scene.MaterialHandle
}

// Create a new sphere.
func NewSphere(center types.Vec3, radius float32, mat scene.MaterialHandle) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

func (s *Sphere) BBox() (types.AABB, bool) {
	return sphereBBox(s.Center, s.Radius), true
}

func (s *Sphere) Hit(ray types.Ray, tMin, tMax float32, _ *rand.Rand) (scene.HitRecord, bool) {
	return hitSphere(ray, s.Center, s.Radius, s.Material, tMin, tMax)
}

// A sphere moving linearly from Center0 at Time0 to Center1 at Time1.
type MovingSphere struct {
	Center0, Center1 types.Vec3
	Time0, Time1     float32
	Radius           float32
	Material         scene.MaterialHandle
}

// Create a new moving sphere.
func NewMovingSphere(center0, center1 types.Vec3, time0, time1, radius float32, mat scene.MaterialHandle) *MovingSphere {
	return &MovingSphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: mat,
	}
}

// Get the sphere center at a particular time.
func (s *MovingSphere) Center(time float32) types.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	f := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Sub(s.Center0).Mul(f))
}

// The box encloses the sphere over the whole [Time0, Time1] interval.
func (s *MovingSphere) BBox() (types.AABB, bool) {
	return types.Union(
		sphereBBox(s.Center(s.Time0), s.Radius),
		sphereBBox(s.Center(s.Time1), s.Radius),
	), true
}

func (s *MovingSphere) Hit(ray types.Ray, tMin, tMax float32, _ *rand.Rand) (scene.HitRecord, bool) {
	return hitSphere(ray, s.Center(ray.Time), s.Radius, s.Material, tMin, tMax)
}

func sphereBBox(center types.Vec3, radius float32) types.AABB {
	r := float32(math.Abs(float64(radius)))
	return types.NewAABB(center.Sub(types.Uniform(r)), center.Add(types.Uniform(r)))
}

// Intersect a ray with a sphere. A negative radius flips the normals which
// allows building hollow glass spheres.
func hitSphere(ray types.Ray, center types.Vec3, radius float32, mat scene.MaterialHandle, tMin, tMax float32) (scene.HitRecord, bool) {
	oc := ray.Origin.Sub(center)
	a := ray.Direction.LenSq()
	b := oc.Dot(ray.Direction)
	c := oc.LenSq() - radius*radius
	discriminant := b*b - a*c
	if discriminant <= 0 {
		return scene.HitRecord{}, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	for _, t := range [2]float32{(-b - sqrtD) / a, (-b + sqrtD) / a} {
		if t <= tMin || t >= tMax {
			continue
		}

		p := ray.PointAt(t)
		normal := p.Sub(center).Div(radius)
		u, v := sphereUV(normal)
		return scene.HitRecord{
			T:        t,
			P:        p,
			U:        u,
			V:        v,
			Normal:   normal,
			Material: mat,
		}, true
	}

	return scene.HitRecord{}, false
}

// Map a point on the unit sphere to texture coordinates.
func sphereUV(p types.Vec3) (u, v float32) {
	phi := math.Atan2(float64(p[2]), float64(p[0]))
	theta := math.Asin(math.Max(-1, math.Min(1, float64(p[1]))))
	u = float32(1 - (phi+math.Pi)/(2*math.Pi))
	v = float32((theta + math.Pi/2) / math.Pi)
	return u, v
}
