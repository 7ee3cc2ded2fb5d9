// Package pose holds per-bone local transforms and blending between them.
package pose

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is one bone's local transform: translation, rotation, scale.
type Pose struct {
	Translate mgl32.Vec3
	Rotate    mgl32.Quat
	Scale     mgl32.Vec3
}

// Identity returns a pose that leaves the bone untouched.
func Identity() Pose {
	return Pose{
		Rotate: mgl32.QuatIdent(),
		Scale:  mgl32.Vec3{1, 1, 1},
	}
}

// Buffer is an ordered set of poses, one per bone, indexed in
// skeleton bone order.
type Buffer []Pose

// NewBuffer returns a buffer of n identity poses.
func NewBuffer(n int) Buffer {
	b := make(Buffer, n)
	for i := range b {
		b[i] = Identity()
	}
	return b
}

// Set overwrites the buffer from src without blending.
// Rotations are renormalized on write so the unit-norm invariant
// holds regardless of what the caller hands in.
func (b Buffer) Set(src Buffer) {
	for i := range b {
		b[i].Translate = src[i].Translate
		b[i].Rotate = src[i].Rotate.Normalize()
		b[i].Scale = src[i].Scale
	}
}

// Mix overwrites the buffer with the blend of two keyframes.
// Translation and scale interpolate linearly, rotation spherically.
// weight is clamped to [0,1]; 0 collapses to a exactly.
func (b Buffer) Mix(a, c Buffer, weight float32) {
	weight = mgl32.Clamp(weight, 0, 1)
	for i := range b {
		b[i].Translate = lerp(a[i].Translate, c[i].Translate, weight)
		b[i].Rotate = mgl32.QuatSlerp(a[i].Rotate, c[i].Rotate, weight).Normalize()
		b[i].Scale = lerp(a[i].Scale, c[i].Scale, weight)
	}
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
