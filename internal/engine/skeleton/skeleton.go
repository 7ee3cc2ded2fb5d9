// Package skeleton models the bone hierarchy and composes skinning matrices.
package skeleton

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelview/internal/engine/pose"
)

// Root marks a bone with no parent.
const Root = -1

// Bone is one joint in the hierarchy: the index of its parent and
// the matrix that maps a vertex from model space into this bone's
// bind-pose space.
type Bone struct {
	Parent      int
	InverseBind mgl32.Mat4
}

// Skeleton is an immutable bone hierarchy, shared by every clip of a
// model. Bones are stored parent-before-child: a bone's parent index
// is always strictly smaller than its own index, which lets the
// compositor run in a single forward pass.
type Skeleton struct {
	bones []Bone

	// scratch world transforms, reused across Skin calls
	world []mgl32.Mat4
}

// New validates the hierarchy and builds a skeleton. A parent index
// that is not Root and not strictly smaller than the bone's own
// index would make the compositor read a transform it has not
// written yet, so such input is rejected outright.
func New(bones []Bone) (*Skeleton, error) {
	for i, b := range bones {
		if b.Parent == Root {
			continue
		}
		if b.Parent < 0 || b.Parent >= i {
			return nil, fmt.Errorf("bone %d: parent index %d must be %d or in [0, %d)", i, b.Parent, Root, i)
		}
	}
	return &Skeleton{
		bones: bones,
		world: make([]mgl32.Mat4, len(bones)),
	}, nil
}

// Len returns the bone count.
func (s *Skeleton) Len() int { return len(s.bones) }

// Bones returns the bone list in hierarchy order.
func (s *Skeleton) Bones() []Bone { return s.bones }

// Skin converts a local pose into skinning matrices, one per bone,
// written into dst. Each matrix maps a bind-pose vertex into the
// posed position: world = parentWorld * translate * rotate * scale,
// then premultiplied against the bone's inverse bind.
// dst must hold Len() matrices; every slot is overwritten.
func (s *Skeleton) Skin(p pose.Buffer, dst []mgl32.Mat4) {
	for i, b := range s.bones {
		local := localMatrix(p[i])
		if b.Parent >= 0 {
			s.world[i] = s.world[b.Parent].Mul4(local)
		} else {
			s.world[i] = local
		}
		dst[i] = s.world[i].Mul4(b.InverseBind)
	}
}

// localMatrix builds the bone-local transform. Scale applies to the
// vertex first, then rotation, then translation.
func localMatrix(p pose.Pose) mgl32.Mat4 {
	m := mgl32.Translate3D(p.Translate.X(), p.Translate.Y(), p.Translate.Z())
	m = m.Mul4(p.Rotate.Mat4())
	return m.Mul4(mgl32.Scale3D(p.Scale.X(), p.Scale.Y(), p.Scale.Z()))
}
