package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/types"
	"github.com/go-gl/mathgl/mgl32"
)

// The camera type generates primary rays for the scene. A camera is
// immutable after construction and may be shared between tracers.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	// Frame aspect ratio (width / height).
	Aspect float32

	// Thin lens parameters.
	Aperture  float32
	FocusDist float32

	// Shutter open/close times.
	Time0 float32
	Time1 float32

	lowerLeft  types.Vec3
	horizontal types.Vec3
	vertical   types.Vec3
	u, v, w    types.Vec3
	lensRadius float32
}

// Create a new camera.
func NewCamera(position, lookAt, up types.Vec3, fov, aspect, aperture, focusDist, time0, time1 float32) *Camera {
	c := &Camera{
		Position:  position,
		LookAt:    lookAt,
		Up:        up,
		FOV:       fov,
		Aspect:    aspect,
		Aperture:  aperture,
		FocusDist: focusDist,
		Time0:     time0,
		Time1:     time1,
	}
	c.Update()
	return c
}

// Recalculate the camera basis and image plane. It must be called after
// changing any of the exported camera fields.
func (c *Camera) Update() {
	halfHeight := float32(math.Tan(float64(mgl32.DegToRad(c.FOV) / 2)))
	halfWidth := c.Aspect * halfHeight

	w := mgl32.Vec3(c.Position).Sub(mgl32.Vec3(c.LookAt)).Normalize()
	u := mgl32.Vec3(c.Up).Cross(w).Normalize()
	v := w.Cross(u)

	c.w, c.u, c.v = types.Vec3(w), types.Vec3(u), types.Vec3(v)
	c.lensRadius = c.Aperture / 2
	c.horizontal = c.u.Mul(2 * halfWidth * c.FocusDist)
	c.vertical = c.v.Mul(2 * halfHeight * c.FocusDist)
	c.lowerLeft = c.Position.
		Sub(c.u.Mul(halfWidth * c.FocusDist)).
		Sub(c.v.Mul(halfHeight * c.FocusDist)).
		Sub(c.w.Mul(c.FocusDist))
}

// Generate a ray through normalized image plane coordinates (s, t) where
// (0, 0) is the lower left corner of the frame.
func (c *Camera) Ray(s, t float32, rng *rand.Rand) types.Ray {
	origin := c.Position
	if c.lensRadius > 0 {
		rd := randomInUnitDisk(rng).Mul(c.lensRadius)
		origin = origin.Add(c.u.Mul(rd[0])).Add(c.v.Mul(rd[1]))
	}

	dir := c.lowerLeft.Add(c.horizontal.Mul(s)).Add(c.vertical.Mul(t)).Sub(origin)

	time := c.Time0
	if c.Time1 > c.Time0 {
		time += rng.Float32() * (c.Time1 - c.Time0)
	}

	return types.NewRay(origin, dir, time)
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"position: (%3.3f, %3.3f, %3.3f), look at: (%3.3f, %3.3f, %3.3f), fov: %3.1f, aperture: %3.3f",
		c.Position[0], c.Position[1], c.Position[2],
		c.LookAt[0], c.LookAt[1], c.LookAt[2],
		c.FOV, c.Aperture,
	)
}

func randomInUnitDisk(rng *rand.Rand) types.Vec3 {
	for {
		p := types.XYZ(2*rng.Float32()-1, 2*rng.Float32()-1, 0)
		if p.LenSq() < 1 {
			return p
		}
	}
}
