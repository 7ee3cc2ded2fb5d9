// Package demo builds a small procedural rig so the viewer has
// something to play without an asset loader: a three-bone arm with a
// looping wave clip and a one-shot bow clip.
package demo

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelview/internal/engine/anim"
	"github.com/Faultbox/skelview/internal/engine/model"
	"github.com/Faultbox/skelview/internal/engine/pose"
	"github.com/Faultbox/skelview/internal/engine/skeleton"
)

const (
	waveFrames = 10
	bowFrames  = 12
	sampleRate = 15 // keyframes per second
)

// segment is the bind-pose offset of each bone from its parent.
var segment = mgl32.Vec3{0, 1, 0}

// Build assembles the demo model: skeleton, clips, and one box mesh
// per bone.
func Build() (*model.Model, error) {
	skel, err := buildSkeleton()
	if err != nil {
		return nil, err
	}

	frames := make([]pose.Buffer, 0, waveFrames+bowFrames)
	for k := 0; k < waveFrames; k++ {
		frames = append(frames, waveFrame(float32(k)/waveFrames))
	}
	for k := 0; k < bowFrames; k++ {
		frames = append(frames, bowFrame(float32(k)/(bowFrames-1)))
	}

	clips := []anim.Clip{
		{Name: "wave", First: 0, Last: waveFrames, Rate: sampleRate, Loop: true},
		{Name: "bow", First: waveFrames, Last: bowFrames, Rate: sampleRate, Loop: false},
	}

	animator, err := anim.NewAnimator(skel.Len(), frames, clips)
	if err != nil {
		return nil, err
	}

	m := model.New(skel, animator)
	for i := 0; i < skel.Len(); i++ {
		m.AttachMesh(boneMesh(i))
	}
	return m, nil
}

// buildSkeleton returns a three-bone chain along +Y. Inverse binds
// are the inverses of the accumulated bind transforms.
func buildSkeleton() (*skeleton.Skeleton, error) {
	bones := make([]skeleton.Bone, 3)
	world := mgl32.Ident4()
	for i := range bones {
		if i > 0 {
			world = world.Mul4(mgl32.Translate3D(segment.X(), segment.Y(), segment.Z()))
		}
		bones[i] = skeleton.Bone{Parent: i - 1, InverseBind: world.Inv()}
	}
	return skeleton.New(bones)
}

// bindPose returns the local bind transforms as a pose buffer.
func bindPose() pose.Buffer {
	b := pose.NewBuffer(3)
	b[1].Translate = segment
	b[2].Translate = segment
	return b
}

// waveFrame poses the arm mid-wave; t runs one full cycle over [0,1).
func waveFrame(t float32) pose.Buffer {
	phase := 2 * gomath.Pi * float64(t)
	b := bindPose()
	b[1].Rotate = mgl32.QuatRotate(0.4*float32(gomath.Sin(phase)), mgl32.Vec3{0, 0, 1})
	b[2].Rotate = mgl32.QuatRotate(0.6*float32(gomath.Sin(phase+0.5)), mgl32.Vec3{0, 0, 1})
	return b
}

// bowFrame pitches the whole chain forward; t runs [0,1] over the clip.
func bowFrame(t float32) pose.Buffer {
	// ease-out so the bow decelerates into its hold
	ease := 1 - (1-t)*(1-t)
	b := bindPose()
	b[0].Rotate = mgl32.QuatRotate(0.9*ease, mgl32.Vec3{1, 0, 0})
	b[1].Rotate = mgl32.QuatRotate(0.3*ease, mgl32.Vec3{1, 0, 0})
	return b
}

// boneMesh builds a box covering one bind-pose bone segment, fully
// weighted to that bone.
func boneMesh(bone int) *model.Mesh {
	cy := float32(bone) + 0.5
	const hx, hy, hz = 0.12, 0.5, 0.12

	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
	}

	mesh := &model.Mesh{Scale: 1, Lit: true}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		for _, c := range f.corners {
			mesh.Vertices = append(mesh.Vertices, model.Vertex{
				Position: [3]float32{c[0], c[1] + cy, c[2]},
				Normal:   f.normal,
				Joints:   [4]float32{float32(bone), 0, 0, 0},
				Weights:  [4]float32{1, 0, 0, 0},
			})
		}
		mesh.Indices = append(mesh.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return mesh
}
