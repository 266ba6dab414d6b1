// Package physics simulates one circular body against compiled level
// geometry: per-step locomotion (input, jump timers, gravity) followed
// by narrow-phase collision resolution against the level's polygons.
//
// All coordinates are screen space with y growing downward. Time is
// measured in 60 Hz ticks; a fixed-step caller passes dt = 1.
package physics

import (
	"github.com/jakecoffman/cp"
)

// Body is the moving circle's physics state. PrevPosition is the
// position before the current step's integration; the resolver needs it
// for its approach-side tests and its teleport correction.
type Body struct {
	Position     cp.Vector
	PrevPosition cp.Vector
	Velocity     cp.Vector
	Acceleration cp.Vector
	Radius       float64
}

// WallDirection values for ContactState. Left means the wall is on the
// body's left side.
const (
	WallNone  = 0
	WallLeft  = -1
	WallRight = 1
)

// ContactState is what the resolver learned about the body's last
// surface contact. Normal is a unit vector pointing away from the
// contacted surface, or zero while airborne. The timers count down in
// ticks since the last qualifying contact, which is what gives coyote
// time and coyote wall time for free.
type ContactState struct {
	Normal        cp.Vector
	GroundedTimer float64
	WallTimer     float64

	// WallDirection is which side of the body the wall contact was on.
	// It is meaningful only while WallTimer > 0; read it through
	// WallSide, which gates on the timer. It is deliberately a separate
	// field rather than a sign smuggled into the timer.
	WallDirection int

	HasWallJumped bool
}

// Airborne reports whether the body had no surface contact last step.
func (c *ContactState) Airborne() bool {
	return c.Normal.LengthSq() < epsilon*epsilon
}

// OnGround reports whether a ground contact is recent enough to jump
// from.
func (c *ContactState) OnGround() bool {
	return c.GroundedTimer > 0
}

// OnWall reports whether a wall contact is recent enough to wall-jump
// from.
func (c *ContactState) OnWall() bool {
	return c.WallTimer > 0
}

// WallSide returns WallDirection while the wall timer is live and
// WallNone otherwise. A stale direction with an expired timer is never
// exposed.
func (c *ContactState) WallSide() int {
	if c.WallTimer > 0 {
		return c.WallDirection
	}
	return WallNone
}

// Intent is one step's worth of input: a direction with magnitude <= 1
// and the jump button's press/release edges.
type Intent struct {
	Direction    cp.Vector
	JumpPressed  bool
	JumpReleased bool
}
