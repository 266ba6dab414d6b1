package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/cmoyates/platformer/level"
)

// Movement tuning. Velocities are pixels per tick, timers are ticks.
const (
	MaxSpeed   = 5.0
	AccelBlend = 0.2 // velocity blend rate while there is input
	DecelBlend = 0.4 // faster blend back to zero without input

	Gravity = 0.5

	JumpSpeed      = 9.0
	WallJumpSpeedX = 7.8
	WallJumpSpeedY = 4.5
	// Air control is halved after a wall jump until the next contact.
	wallJumpAccelScale = 0.5
	// Releasing jump while still rising cuts the remaining upward
	// velocity by this divisor, once.
	jumpCutDivisor = 3.0

	// normalDotLimit gates both surface-aligned input rotation and the
	// moving-off-a-wall test.
	normalDotLimit = 0.8

	MaxJumpBuffer   = 10.0
	MaxGroundedTime = 10.0
	MaxWallTime     = 10.0
)

// Controller owns the jump-buffer timer and drives one body from input
// intent and the previous step's contact state. The grounded / airborne
// / walled "states" are never stored; they fall out of the contact
// normal and timers each step.
type Controller struct {
	jumpBuffer float64
}

// JumpBufferTimer exposes the remaining jump-buffer window, mostly for
// debug overlays.
func (c *Controller) JumpBufferTimer() float64 {
	return c.jumpBuffer
}

// Move consumes one step of input, updates acceleration and velocity,
// executes buffered jumps, and integrates a tentative position for the
// resolver to correct. dt is in ticks.
func (c *Controller) Move(body *Body, contact *ContactState, in Intent, dt float64) {
	// A jump press always arms the buffer, even in mid-air; the jump
	// fires later, as soon as a contact timer is live.
	if in.JumpPressed {
		c.jumpBuffer = MaxJumpBuffer
	}
	if in.JumpReleased && body.Velocity.Y < 0 {
		body.Velocity.Y /= jumpCutDivisor
	}

	airborne := contact.Airborne()
	noInput := in.Direction.LengthSq() < epsilon*epsilon

	// Rotate the input onto the surface tangent so pushing along a
	// slope accelerates along it, unless the input points nearly
	// straight into or away from the surface.
	dir := in.Direction
	if !noInput && !airborne && math.Abs(dir.Dot(contact.Normal)) < normalDotLimit {
		tangent := cp.Vector{X: contact.Normal.Y, Y: -contact.Normal.X}
		if tangent.Dot(dir) < 0 {
			tangent = tangent.Neg()
		}
		dir = tangent
	}

	// On a wall and steering away from it: let go instead of sticking.
	movingOffWall := math.Abs(contact.Normal.X) >= normalDotLimit &&
		math.Abs(dir.X) >= normalDotLimit &&
		sameSign(dir.X, contact.Normal.X)

	blend := AccelBlend
	if noInput {
		blend = DecelBlend
	}
	accel := dir.Mult(MaxSpeed).Sub(body.Velocity).Mult(blend)
	if contact.HasWallJumped {
		accel = accel.Mult(wallJumpAccelScale)
	}
	if airborne {
		// Vertical motion in the air belongs to gravity alone.
		accel.Y = 0
	}
	if !movingOffWall {
		// Drop the acceleration component along the contact normal.
		accel = accel.Sub(contact.Normal.Mult(accel.Dot(contact.Normal)))
	}

	if movingOffWall || airborne {
		accel.Y = Gravity
	} else {
		// Press into the surface instead of straight down, so the body
		// tracks slopes and clings to walls.
		accel = accel.Add(contact.Normal.Mult(-Gravity))
	}

	if c.jumpBuffer > 0 {
		if contact.GroundedTimer > 0 {
			body.Velocity.Y = -JumpSpeed
			c.jumpBuffer = 0
			contact.GroundedTimer = 0
		} else if contact.WallTimer > 0 {
			body.Velocity.Y = -WallJumpSpeedY
			body.Velocity.X = -float64(contact.WallDirection) * WallJumpSpeedX
			c.jumpBuffer = 0
			contact.WallTimer = 0
			contact.HasWallJumped = true
		}
	}

	body.Acceleration = accel
	body.PrevPosition = body.Position
	body.Velocity = body.Velocity.Add(accel.Mult(dt))
	body.Position = body.Position.Add(body.Velocity.Mult(dt))
}

// TickTimers decays the jump buffer and contact timers at the end of a
// step. Timers never go negative and nothing here ever increases one.
// WallDirection is left as-is on purpose: consumers read it through
// ContactState.WallSide, which gates on the timer.
func (c *Controller) TickTimers(contact *ContactState, dt float64) {
	c.jumpBuffer = decay(c.jumpBuffer, dt)
	contact.GroundedTimer = decay(contact.GroundedTimer, dt)
	contact.WallTimer = decay(contact.WallTimer, dt)
}

// Step runs one full simulation step: locomotion, collision resolution,
// then timer decay.
func (c *Controller) Step(lvl *level.Level, body *Body, contact *ContactState, in Intent, dt float64) {
	c.Move(body, contact, in, dt)
	Resolve(lvl, body, contact)
	c.TickTimers(contact, dt)
}

func decay(timer, dt float64) float64 {
	timer -= dt
	if timer < 0 {
		return 0
	}
	return timer
}

func sameSign(a, b float64) bool {
	return (a > 0) == (b > 0)
}
