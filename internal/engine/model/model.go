// Package model aggregates a skeleton, animation clips and meshes
// into one animated, drawable unit.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelview/internal/engine/anim"
	"github.com/Faultbox/skelview/internal/engine/pose"
	"github.com/Faultbox/skelview/internal/engine/skeleton"
)

// Model owns the live playback state of one animated model: the
// skeleton and clips populated by a loader, the attached meshes, and
// the skinning matrix array rewritten on every update. All mutation
// goes through Update, SetAnimation and SetPose; fields exposed here
// are plain per-model transform attributes.
type Model struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
	Lit      bool
	Shadow   bool

	meshes   []*Mesh
	skeleton *skeleton.Skeleton
	animator *anim.Animator
	skin     []mgl32.Mat4
}

// New builds a model around a skeleton and its animator. Either may
// be nil for a static (unskinned) model.
func New(skel *skeleton.Skeleton, animator *anim.Animator) *Model {
	m := &Model{
		Scale:    1,
		Lit:      true,
		Shadow:   true,
		skeleton: skel,
		animator: animator,
	}
	if skel != nil {
		m.skin = make([]mgl32.Mat4, skel.Len())
	}
	return m
}

// AttachMesh adds a mesh to the model. The mesh picks up the model
// transform on the next Update.
func (m *Model) AttachMesh(mesh *Mesh) {
	m.meshes = append(m.meshes, mesh)
}

// Meshes returns the attached meshes in attach order.
func (m *Model) Meshes() []*Mesh { return m.meshes }

// Update copies the model transform into every attached mesh, then
// advances animation playback. Whenever the animator produced a new
// pose the whole skinning array is recomposed; it is never left
// partially stale.
func (m *Model) Update(dt float32) {
	for _, mesh := range m.meshes {
		mesh.Position = m.Position
		mesh.Rotation = m.Rotation
		mesh.Scale = m.Scale
		mesh.Lit = m.Lit
	}

	if m.animator == nil {
		return
	}
	if m.animator.Advance(dt) && m.skeleton != nil {
		m.skeleton.Skin(m.animator.Pose(), m.skin)
	}
}

// Draw publishes the skeleton state to the renderer and draws every
// attached mesh. Skinning matrices are uploaded only while a
// skeleton is present and a clip is active; otherwise the renderer
// is told to draw unskinned.
func (m *Model) Draw(r Renderer, shader uint32) {
	if m.skeleton != nil && m.animator != nil && m.animator.Active() {
		r.UploadSkeleton(shader, m.skin)
	} else {
		r.UploadSkeleton(shader, nil)
	}
	for _, mesh := range m.meshes {
		r.DrawMesh(shader, mesh)
	}
}

// SetAnimation selects the active clip by index. Out-of-range
// indices disable animation.
func (m *Model) SetAnimation(index int) {
	if m.animator != nil {
		m.animator.SetAnimation(index)
	}
}

// SetPose overwrites the live pose directly and recomposes the
// skinning matrices from it, without touching clip playback.
func (m *Model) SetPose(frame pose.Buffer) {
	if m.animator == nil {
		return
	}
	m.animator.SetPose(frame)
	if m.skeleton != nil {
		m.skeleton.Skin(m.animator.Pose(), m.skin)
	}
}

// Animator returns the model's animator, nil for static models.
func (m *Model) Animator() *anim.Animator { return m.animator }

// SkinningMatrices returns the current skinning matrix array. The
// slice is owned by the model and rewritten by Update.
func (m *Model) SkinningMatrices() []mgl32.Mat4 { return m.skin }

// Close releases everything the model owns. Safe to call on a model
// that was never fully populated, and safe to call twice.
func (m *Model) Close() {
	m.meshes = nil
	m.skeleton = nil
	m.animator = nil
	m.skin = nil
}
