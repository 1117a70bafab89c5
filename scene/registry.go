package scene

import (
	"fmt"

	"github.com/achilleasa/bvhtrace/types"
)

// Registry stores the scene objects, materials and textures. Entries are
// only ever appended; a handle stays valid for the lifetime of the registry.
//
// Once rendering starts the registry is shared read-only between all
// tracers.
type Registry struct {
	objects   []Intersectable
	materials []Material
	textures  []Texture

	// Radiance returned for rays that escape the scene.
	Background types.Vec3

	// The scene camera.
	Camera *Camera
}

// Create an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		objects:   make([]Intersectable, 0),
		materials: make([]Material, 0),
		textures:  make([]Texture, 0),
	}
}

// Register an object and return its handle.
func (r *Registry) AddObject(obj Intersectable) ObjectHandle {
	r.objects = append(r.objects, obj)
	return ObjectHandle(len(r.objects) - 1)
}

// Register a material and return its handle.
func (r *Registry) AddMaterial(mat Material) MaterialHandle {
	r.materials = append(r.materials, mat)
	return MaterialHandle(len(r.materials) - 1)
}

// Register a texture and return its handle.
func (r *Registry) AddTexture(tex Texture) TextureHandle {
	r.textures = append(r.textures, tex)
	return TextureHandle(len(r.textures) - 1)
}

// Get the object for a handle. Panics if the handle is out of range.
func (r *Registry) Object(handle ObjectHandle) Intersectable {
	if int(handle) >= len(r.objects) {
		panic(fmt.Sprintf("scene: object handle %d out of range (%d objects)", handle, len(r.objects)))
	}
	return r.objects[handle]
}

// Get the material for a handle. Panics if the handle is out of range.
func (r *Registry) Material(handle MaterialHandle) Material {
	if int(handle) >= len(r.materials) {
		panic(fmt.Sprintf("scene: material handle %d out of range (%d materials)", handle, len(r.materials)))
	}
	return r.materials[handle]
}

// Get the texture for a handle. Panics if the handle is out of range.
func (r *Registry) Texture(handle TextureHandle) Texture {
	if int(handle) >= len(r.textures) {
		panic(fmt.Sprintf("scene: texture handle %d out of range (%d textures)", handle, len(r.textures)))
	}
	return r.textures[handle]
}

func (r *Registry) ObjectCount() int {
	return len(r.objects)
}

func (r *Registry) MaterialCount() int {
	return len(r.materials)
}

func (r *Registry) TextureCount() int {
	return len(r.textures)
}
