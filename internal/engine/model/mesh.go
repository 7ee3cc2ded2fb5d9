package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one skinned mesh vertex. Joints index into the skinning
// matrix array; Weights must sum to 1 for fully weighted vertices.
// Joint indices are float32 so the slice uploads as plain vertex
// attributes without integer-attribute plumbing.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Joints   [4]float32
	Weights  [4]float32
}

// Mesh holds vertex data plus the per-mesh transform fields the
// owning model broadcasts into it every update. The rendering
// collaborator reads these; nothing here composes transforms.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
	Lit      bool
}

// Renderer is the rendering collaborator: it receives the skeleton
// state for a shader and draws meshes one at a time. The model never
// touches GPU state itself.
type Renderer interface {
	// UploadSkeleton publishes the skinning matrices for subsequent
	// draws. A nil or empty slice switches skinning off.
	UploadSkeleton(shader uint32, joints []mgl32.Mat4)

	// DrawMesh issues one draw for the mesh with its current
	// transform fields.
	DrawMesh(shader uint32, m *Mesh)
}
