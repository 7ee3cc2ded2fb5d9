// Package render is the OpenGL rendering collaborator: it uploads
// skeleton uniforms and draws meshes handed over by the model layer.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelview/internal/engine/model"
)

// floats per vertex: position 3, normal 3, texcoord 2, joints 4, weights 4
const vertexStride = 16

// glMesh is the GPU side of one model.Mesh.
type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// uniforms caches the uniform locations of one shader program.
type uniforms struct {
	viewProj    int32
	modelMat    int32
	hasSkeleton int32
	boneMatrix  int32
	isLit       int32
}

// GL implements model.Renderer on an OpenGL 4.1 core context.
// Meshes are uploaded lazily on first draw and stay resident until
// Close. Not safe for concurrent use; all calls must come from the
// thread owning the GL context.
type GL struct {
	program  uint32
	locs     map[uint32]uniforms
	meshes   map[*model.Mesh]*glMesh
	viewProj mgl32.Mat4
}

// New compiles the built-in skinning shader and prepares the
// renderer. Requires a current GL context.
func New() (*GL, error) {
	program, err := compileProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("skinning shader: %w", err)
	}
	return &GL{
		program:  program,
		locs:     make(map[uint32]uniforms),
		meshes:   make(map[*model.Mesh]*glMesh),
		viewProj: mgl32.Ident4(),
	}, nil
}

// Program returns the built-in skinning shader program.
func (r *GL) Program() uint32 { return r.program }

// SetViewProjection sets the camera matrix applied to every draw.
func (r *GL) SetViewProjection(m mgl32.Mat4) { r.viewProj = m }

// UploadSkeleton publishes the skinning matrix array to the shader.
// nil or empty switches skinning off for subsequent draws; skeletons
// beyond MaxBones joints upload only the first MaxBones matrices.
func (r *GL) UploadSkeleton(shader uint32, joints []mgl32.Mat4) {
	u := r.uniformsFor(shader)
	gl.UseProgram(shader)
	if len(joints) == 0 {
		gl.Uniform1i(u.hasSkeleton, 0)
		return
	}
	count := len(joints)
	if count > MaxBones {
		count = MaxBones
	}
	gl.Uniform1i(u.hasSkeleton, 1)
	gl.UniformMatrix4fv(u.boneMatrix, int32(count), false, &joints[0][0])
}

// DrawMesh draws one mesh with its current transform fields,
// uploading its vertex data first if this is its first draw.
func (r *GL) DrawMesh(shader uint32, m *model.Mesh) {
	gm, ok := r.meshes[m]
	if !ok {
		gm = uploadMesh(m)
		r.meshes[m] = gm
	}

	u := r.uniformsFor(shader)
	gl.UseProgram(shader)
	modelMat := meshMatrix(m)
	gl.UniformMatrix4fv(u.viewProj, 1, false, &r.viewProj[0])
	gl.UniformMatrix4fv(u.modelMat, 1, false, &modelMat[0])
	lit := int32(0)
	if m.Lit {
		lit = 1
	}
	gl.Uniform1i(u.isLit, lit)

	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Close releases every uploaded mesh and the shader program.
func (r *GL) Close() {
	for _, gm := range r.meshes {
		gl.DeleteVertexArrays(1, &gm.vao)
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
	}
	r.meshes = make(map[*model.Mesh]*glMesh)
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func (r *GL) uniformsFor(shader uint32) uniforms {
	if u, ok := r.locs[shader]; ok {
		return u
	}
	u := uniforms{
		viewProj:    uniform(shader, "u_view_proj"),
		modelMat:    uniform(shader, "u_model"),
		hasSkeleton: uniform(shader, "u_has_skeleton"),
		boneMatrix:  uniform(shader, "u_bone_matrix"),
		isLit:       uniform(shader, "u_is_lit"),
	}
	r.locs[shader] = u
	return u
}

// meshMatrix composes the mesh's model matrix from the transform
// fields broadcast by the owning model: scale, then XYZ euler
// rotation, then translation.
func meshMatrix(m *model.Mesh) mgl32.Mat4 {
	out := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	out = out.Mul4(mgl32.HomogRotate3DZ(m.Rotation.Z()))
	out = out.Mul4(mgl32.HomogRotate3DY(m.Rotation.Y()))
	out = out.Mul4(mgl32.HomogRotate3DX(m.Rotation.X()))
	return out.Mul4(mgl32.Scale3D(m.Scale, m.Scale, m.Scale))
}

func uploadMesh(m *model.Mesh) *glMesh {
	data := make([]float32, 0, len(m.Vertices)*vertexStride)
	for _, v := range m.Vertices {
		data = append(data, v.Position[0], v.Position[1], v.Position[2])
		data = append(data, v.Normal[0], v.Normal[1], v.Normal[2])
		data = append(data, v.TexCoord[0], v.TexCoord[1])
		data = append(data, v.Joints[0], v.Joints[1], v.Joints[2], v.Joints[3])
		data = append(data, v.Weights[0], v.Weights[1], v.Weights[2], v.Weights[3])
	}

	gm := &glMesh{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 4, gl.FLOAT, false, stride, 8*4)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointerWithOffset(4, 4, gl.FLOAT, false, stride, 12*4)

	gl.BindVertexArray(0)
	return gm
}
