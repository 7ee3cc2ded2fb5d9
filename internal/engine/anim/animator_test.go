package anim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skelview/internal/engine/pose"
)

// markedFrames returns n single-bone keyframes whose X translation
// encodes the keyframe index, so blended output identifies which
// frames were sampled and with what weight.
func markedFrames(n int) []pose.Buffer {
	frames := make([]pose.Buffer, n)
	for i := range frames {
		frames[i] = pose.NewBuffer(1)
		frames[i][0].Translate = mgl32.Vec3{float32(i), 0, 0}
	}
	return frames
}

func mustAnimator(t *testing.T, n int, clips []Clip) *Animator {
	t.Helper()
	a, err := NewAnimator(1, markedFrames(n), clips)
	if err != nil {
		t.Fatalf("NewAnimator: %v", err)
	}
	return a
}

func TestAdvanceWithoutClip(t *testing.T) {
	a := mustAnimator(t, 6, []Clip{{Name: "x", First: 0, Last: 5, Rate: 30, Loop: true}})

	if a.Advance(0.1) {
		t.Error("Advance with no active clip should report no pose")
	}
	if a.Time() != 0 || a.Frame() != 0 {
		t.Errorf("no-op advance mutated state: time=%f frame=%d", a.Time(), a.Frame())
	}
}

func TestSetAnimationOutOfRangeClears(t *testing.T) {
	a := mustAnimator(t, 6, []Clip{{Name: "x", First: 0, Last: 5, Rate: 30, Loop: true}})

	a.SetAnimation(0)
	if !a.Active() {
		t.Fatal("expected active clip after SetAnimation(0)")
	}
	a.Advance(0.01)
	time, frame := a.Time(), a.Frame()

	for _, idx := range []int{1, 99, -1} {
		a.SetAnimation(idx)
		if a.Active() {
			t.Errorf("SetAnimation(%d) should clear the active clip", idx)
		}
		if a.Advance(0.5) {
			t.Errorf("Advance after SetAnimation(%d) should be a no-op", idx)
		}
	}
	if a.Time() != time || a.Frame() != frame {
		t.Errorf("cleared animator mutated playback state: time %f->%f frame %d->%d",
			time, a.Time(), frame, a.Frame())
	}
}

func TestSetAnimationResetsPlayback(t *testing.T) {
	a := mustAnimator(t, 22, []Clip{
		{Name: "a", First: 0, Last: 10, Rate: 30, Loop: true},
		{Name: "b", First: 10, Last: 12, Rate: 30, Loop: false},
	})

	a.SetAnimation(0)
	for i := 0; i < 5; i++ {
		a.Advance(0.05)
	}
	a.SetAnimation(1)
	if a.Time() != 0 {
		t.Errorf("time after clip switch = %f, want 0", a.Time())
	}
	if a.Frame() != 10 {
		t.Errorf("frame after clip switch = %d, want clip first frame 10", a.Frame())
	}
}

func TestNonLoopingFreeze(t *testing.T) {
	// first=0, last=10, span=10, 30 fps.
	a := mustAnimator(t, 11, []Clip{{Name: "stop", First: 0, Last: 10, Rate: 30, Loop: false}})
	a.SetAnimation(0)

	// Land the clock mid-frame-10: the estimate equals the span, so
	// this advance still runs and clamps the frame to the last one.
	if !a.Advance(0.35) {
		t.Fatal("first advance froze")
	}
	if !a.Advance(0.1) {
		t.Fatal("advance at span boundary froze early")
	}
	frozenTime, frozenFrame := a.Time(), a.Frame()
	if frozenFrame != 10 {
		t.Errorf("frame at clip end = %d, want clamp to last frame 10", frozenFrame)
	}

	// Clock is now well past the span; the estimate exceeds it
	// strictly, so playback freezes from here on.
	for i := 0; i < 20; i++ {
		if a.Advance(0.1) {
			t.Fatalf("advance %d after clip end should be a no-op", i)
		}
	}
	if a.Time() != frozenTime || a.Frame() != frozenFrame {
		t.Errorf("frozen clip mutated state: time %f->%f frame %d->%d",
			frozenTime, a.Time(), frozenFrame, a.Frame())
	}
}

func TestLoopingResetsToFirstFrame(t *testing.T) {
	a := mustAnimator(t, 6, []Clip{{Name: "loop", First: 0, Last: 5, Rate: 30, Loop: true}})
	a.SetAnimation(0)

	dt := float32(1.0 / 30.0)
	wrapped := false
	prev := 0
	for i := 0; i < 40; i++ {
		if !a.Advance(dt) {
			t.Fatalf("looping clip froze at advance %d", i)
		}
		frame := a.Frame()
		if frame >= 5 {
			t.Fatalf("advance %d: frame %d not corrected below span 5", i, frame)
		}
		if frame < prev {
			wrapped = true
			if frame != 0 {
				t.Fatalf("loop wrapped to frame %d, want first frame 0", frame)
			}
			if a.Time() != 0 {
				t.Fatalf("loop wrap left clock at %f, want 0", a.Time())
			}
		}
		prev = frame
	}
	if !wrapped {
		t.Error("clip never wrapped in 40 advances")
	}
}

func TestLookaheadWrapsRegardlessOfLoopFlag(t *testing.T) {
	for _, loop := range []bool{true, false} {
		a := mustAnimator(t, 6, []Clip{{Name: "w", First: 0, Last: 5, Rate: 30, Loop: loop}})
		a.SetAnimation(0)

		// First advance runs from time 0; second lands mid-way
		// between frames 4 and its lookahead, which wraps to 0.
		a.Advance(4.5 / 30.0)
		a.Advance(0)

		// frame=4, next wraps to 0, weight 0.5: x = (4+0)/2
		got := a.Pose()[0].Translate.X()
		if !mgl32.FloatEqualThreshold(got, 2.0, 1e-5) {
			t.Errorf("loop=%v: blended x = %f, want 2.0 (frame 4 mixed with wrapped frame 0)", loop, got)
		}
	}
}

func TestSpanUsesFrameSum(t *testing.T) {
	// First=2, Last=4: the playback boundary is 6, not 4, so frame 5
	// is sampled before the loop wraps. Changing the span arithmetic
	// breaks this sequence; see DESIGN.md before touching it.
	a := mustAnimator(t, 6, []Clip{{Name: "sum", First: 2, Last: 4, Rate: 1, Loop: true}})
	a.SetAnimation(0)

	want := []int{2, 3, 4, 5, 2}
	for i, w := range want {
		if !a.Advance(1.0) {
			t.Fatalf("advance %d froze", i)
		}
		if a.Frame() != w {
			t.Errorf("advance %d: frame %d, want %d", i, a.Frame(), w)
		}
	}
}

func TestIntegerBoundaryWeightCollapses(t *testing.T) {
	// Rate 4 with a dt of 0.75 puts the clock exactly on frame 3
	// (both are exact in binary): weight is 0 and the pose must
	// equal keyframe 3 with no blend residue.
	a := mustAnimator(t, 6, []Clip{{Name: "b", First: 0, Last: 5, Rate: 4, Loop: true}})
	a.SetAnimation(0)

	a.Advance(0.75)
	a.Advance(0)

	if a.Frame() != 3 {
		t.Fatalf("frame = %d, want 3", a.Frame())
	}
	if got := a.Pose()[0].Translate.X(); got != 3 {
		t.Errorf("pose x = %f, want exactly 3", got)
	}
}

func TestAdvanceClampsNegativeDelta(t *testing.T) {
	a := mustAnimator(t, 6, []Clip{{Name: "n", First: 0, Last: 5, Rate: 30, Loop: true}})
	a.SetAnimation(0)

	a.Advance(0.05)
	a.Advance(0)
	time, frame := a.Time(), a.Frame()

	for i := 0; i < 5; i++ {
		if !a.Advance(-1.0) {
			t.Fatalf("negative advance %d froze", i)
		}
		if a.Time() != time {
			t.Fatalf("negative advance %d rewound clock: %f -> %f", i, time, a.Time())
		}
		if a.Frame() != frame {
			t.Fatalf("negative advance %d moved frame: %d -> %d", i, frame, a.Frame())
		}
	}
}

func TestSetPoseNormalizes(t *testing.T) {
	a := mustAnimator(t, 6, []Clip{{Name: "x", First: 0, Last: 5, Rate: 30, Loop: true}})

	src := pose.NewBuffer(1)
	src[0].Rotate = mgl32.Quat{W: 0, V: mgl32.Vec3{0, 3, 0}}
	src[0].Translate = mgl32.Vec3{7, 0, 0}
	a.SetPose(src)

	got := a.Pose()[0]
	if got.Translate.X() != 7 {
		t.Errorf("translate x = %f, want 7", got.Translate.X())
	}
	if n := got.Rotate.Len(); !mgl32.FloatEqualThreshold(n, 1, 1e-5) {
		t.Errorf("rotation norm = %f, want 1", n)
	}
}

func TestNewAnimatorValidation(t *testing.T) {
	frames := markedFrames(6)

	cases := []struct {
		name  string
		bones int
		clips []Clip
	}{
		{"wrong bone count", 2, []Clip{{First: 0, Last: 5, Rate: 30}}},
		{"negative first", 1, []Clip{{First: -1, Last: 5, Rate: 30}}},
		{"last before first", 1, []Clip{{First: 4, Last: 2, Rate: 30}}},
		{"zero rate", 1, []Clip{{First: 0, Last: 5, Rate: 0}}},
		{"span exceeds store", 1, []Clip{{First: 3, Last: 5, Rate: 30}}},
		{"clamp frame outside store", 1, []Clip{{First: 0, Last: 6, Rate: 30}}},
	}
	for _, tc := range cases {
		if _, err := NewAnimator(tc.bones, frames, tc.clips); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}

	if _, err := NewAnimator(1, frames, []Clip{{First: 0, Last: 5, Rate: 30}}); err != nil {
		t.Errorf("valid clip rejected: %v", err)
	}
}
