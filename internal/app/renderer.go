package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/pkg/geometry"
)

// raylibBackend uploads one GPU mesh per primitive. Uploads happen lazily
// in Render, which must run on the main thread between BeginMode3D and
// EndMode3D.
type raylibBackend struct {
	*render.Store

	camera   *rl.Camera3D
	material rl.Material
	meshes   map[string]rl.Mesh
	dirty    map[string]bool
	edges    bool
}

func newRaylibBackend(camera *rl.Camera3D) *raylibBackend {
	return &raylibBackend{
		Store:    render.NewStore(),
		camera:   camera,
		material: rl.LoadMaterialDefault(),
		meshes:   make(map[string]rl.Mesh),
		dirty:    make(map[string]bool),
		edges:    true,
	}
}

func (b *raylibBackend) Upsert(p render.Primitive) {
	b.Store.Upsert(p)
	b.dirty[p.ID] = true
}

func (b *raylibBackend) Remove(id string) {
	b.Store.Remove(id)
	b.unload(id)
	delete(b.dirty, id)
}

func (b *raylibBackend) unload(id string) {
	if mesh, ok := b.meshes[id]; ok {
		rl.UnloadMesh(&mesh)
		delete(b.meshes, id)
	}
}

// HitTest casts the mouse ray at a screen position
func (b *raylibBackend) HitTest(x, y float64) (string, geometry.Vector3, bool) {
	return b.Pick(screenRay(rl.Vector2{X: float32(x), Y: float32(y)}, *b.camera))
}

func screenRay(pos rl.Vector2, camera rl.Camera3D) geometry.Ray {
	ray := rl.GetMouseRay(pos, camera)
	return geometry.Ray{
		Origin:    geometry.NewVector3(float64(ray.Position.X), float64(ray.Position.Y), float64(ray.Position.Z)),
		Direction: geometry.NewVector3(float64(ray.Direction.X), float64(ray.Direction.Y), float64(ray.Direction.Z)).Normalize(),
	}
}

// Render draws every primitive, uploading meshes that changed
func (b *raylibBackend) Render() {
	b.Each(func(p render.Primitive, world geometry.Mesh) {
		if b.dirty[p.ID] {
			b.unload(p.ID)
			delete(b.dirty, p.ID)
		}
		mesh, ok := b.meshes[p.ID]
		if !ok {
			if len(world.Triangles) == 0 {
				return
			}
			mesh = meshToRaylib(world, p.Color)
			b.meshes[p.ID] = mesh
		}
		rl.DrawMesh(mesh, b.material, rl.MatrixIdentity())
		if b.edges {
			drawEdges(world, p.Color)
		}
	})
}

// Close releases GPU resources
func (b *raylibBackend) Close() {
	for id := range b.meshes {
		b.unload(id)
	}
	rl.UnloadMaterial(b.material)
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// meshToRaylib converts a world-space mesh to a Raylib mesh with baked
// lighting in the primitive colour
func meshToRaylib(m geometry.Mesh, c scene.Color) rl.Mesh {
	triangleCount := len(m.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, triangle := range m.Triangles {
		normal := triangle.CalculateNormal()

		// Two-sided diffuse with 30% ambient
		light := math.Max(0.3, math.Abs(normal.Dot(lightDir)))
		r := uint8(float64(c.R) * light)
		g := uint8(float64(c.G) * light)
		bl := uint8(float64(c.B) * light)

		for _, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			colors[idx*4+0] = r
			colors[idx*4+1] = g
			colors[idx*4+2] = bl
			colors[idx*4+3] = 255
			idx++
		}
	}

	mesh.Vertices = &vertices[0]
	mesh.Normals = &normals[0]
	mesh.Texcoords = &texcoords[0]
	mesh.Colors = &colors[0]

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}
