// Package anim advances clip playback and produces blended pose buffers.
package anim

import (
	"fmt"
	"math"

	"github.com/Faultbox/skelview/internal/engine/pose"
)

// Animator owns the playback state for one model: the keyframe
// store shared by all clips, the active clip, the playback clock and
// the blended output pose. It is not safe for concurrent use; one
// Advance per model per frame, from the animation thread.
type Animator struct {
	clips  []Clip
	frames []pose.Buffer

	current *Clip
	time    float32
	frame   int

	pose pose.Buffer
}

// NewAnimator builds an animator over a shared keyframe store.
// Every keyframe must hold exactly boneCount poses and every clip
// must fit inside the store; malformed input is the loader's bug and
// is rejected here rather than read out of bounds later.
func NewAnimator(boneCount int, frames []pose.Buffer, clips []Clip) (*Animator, error) {
	for i, f := range frames {
		if len(f) != boneCount {
			return nil, fmt.Errorf("keyframe %d: %d poses, skeleton has %d bones", i, len(f), boneCount)
		}
	}
	for i, c := range clips {
		if c.First < 0 || c.Last < c.First {
			return nil, fmt.Errorf("clip %d (%s): bad frame range [%d, %d]", i, c.Name, c.First, c.Last)
		}
		if c.Rate <= 0 {
			return nil, fmt.Errorf("clip %d (%s): sample rate %v", i, c.Name, c.Rate)
		}
		// Playback samples indices up to span-1 and clamps to Last,
		// so both bounds must sit inside the store.
		if c.span() > len(frames) || c.Last >= len(frames) {
			return nil, fmt.Errorf("clip %d (%s): span %d exceeds %d keyframes", i, c.Name, c.span(), len(frames))
		}
	}
	return &Animator{
		clips:  clips,
		frames: frames,
		pose:   pose.NewBuffer(boneCount),
	}, nil
}

// Advance moves the playback clock by dt seconds and, if a clip is
// active, rewrites the pose buffer from the two keyframes bracketing
// the new time. It reports whether a pose was produced so the caller
// knows to recompose skinning matrices.
//
// A finished non-looping clip freezes: once the estimated frame
// passes the clip span the call returns without touching time, frame
// or pose. Looping clips snap back to their first frame instead.
func (a *Animator) Advance(dt float32) bool {
	clip := a.current
	if clip == nil {
		return false
	}

	// The playback clock never runs backwards.
	if dt < 0 {
		dt = 0
	}

	position := a.time * clip.Rate
	estimate := int(position)
	span := clip.span()

	if estimate > span && !clip.Loop {
		return false
	}

	a.time += dt
	a.frame = clip.First + estimate
	next := a.frame + 1

	if a.frame >= span {
		if clip.Loop {
			a.time = 0
			a.frame = clip.First
		} else {
			a.frame = clip.Last
		}
	}

	// The lookahead always wraps, loop flag or not, so the final
	// frame of a clamped clip still blends against something valid.
	if next >= span {
		next = clip.First
	}

	weight := position - float32(math.Floor(float64(position)))
	a.pose.Mix(a.frames[a.frame], a.frames[next], weight)
	return true
}

// SetAnimation selects the clip to play. Any index outside the clip
// list disables animation entirely; later Advance calls become
// no-ops until a valid clip is selected.
func (a *Animator) SetAnimation(index int) {
	if index < 0 || index >= len(a.clips) {
		a.current = nil
		return
	}
	a.current = &a.clips[index]
	a.time = 0
	a.frame = a.current.First
}

// SetPose overwrites the output pose directly, bypassing clip
// playback. Used for bind-pose resets and externally driven poses.
func (a *Animator) SetPose(frame pose.Buffer) {
	a.pose.Set(frame)
}

// Pose returns the live output pose buffer.
func (a *Animator) Pose() pose.Buffer { return a.pose }

// Active reports whether a clip is currently selected.
func (a *Animator) Active() bool { return a.current != nil }

// Frame returns the absolute keyframe index of the current frame.
func (a *Animator) Frame() int { return a.frame }

// Time returns the playback clock in seconds.
func (a *Animator) Time() float32 { return a.time }

// Clips returns the clip list, in selection-index order.
func (a *Animator) Clips() []Clip { return a.clips }
