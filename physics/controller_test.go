package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/cmoyates/platformer/level"
)

func groundedContact() *ContactState {
	return &ContactState{
		Normal:        cp.Vector{Y: -1},
		GroundedTimer: MaxGroundedTime,
	}
}

func TestMoveGroundJump(t *testing.T) {
	var c Controller
	body := &Body{Radius: 12}
	contact := groundedContact()

	c.Move(body, contact, Intent{JumpPressed: true}, 1)

	// JumpSpeed upward, minus the one tick of pressing into the floor.
	if math.Abs(body.Velocity.Y - -(JumpSpeed-Gravity)) > 1e-9 {
		t.Errorf("Velocity.Y = %g, want %g", body.Velocity.Y, -(JumpSpeed - Gravity))
	}
	if contact.GroundedTimer != 0 {
		t.Errorf("GroundedTimer = %g, want 0 (consumed by jump)", contact.GroundedTimer)
	}
	if c.JumpBufferTimer() != 0 {
		t.Errorf("jump buffer = %g, want 0 (consumed by jump)", c.JumpBufferTimer())
	}
}

func TestMoveWallJump(t *testing.T) {
	var c Controller
	body := &Body{Radius: 12}
	// Wall on the right: normal points left, away from the surface.
	contact := &ContactState{
		Normal:        cp.Vector{X: -1},
		WallTimer:     MaxWallTime,
		WallDirection: WallRight,
	}

	c.Move(body, contact, Intent{JumpPressed: true}, 1)

	// Launched away from the wall, plus one tick of clinging into it.
	if math.Abs(body.Velocity.X - -(WallJumpSpeedX-Gravity)) > 1e-9 {
		t.Errorf("Velocity.X = %g, want %g", body.Velocity.X, -(WallJumpSpeedX - Gravity))
	}
	if math.Abs(body.Velocity.Y - -WallJumpSpeedY) > 1e-9 {
		t.Errorf("Velocity.Y = %g, want %g", body.Velocity.Y, -WallJumpSpeedY)
	}
	if !contact.HasWallJumped {
		t.Errorf("HasWallJumped = false, want true")
	}
	if contact.WallTimer != 0 {
		t.Errorf("WallTimer = %g, want 0 (consumed by jump)", contact.WallTimer)
	}
}

func TestMoveGroundJumpWinsOverWall(t *testing.T) {
	var c Controller
	body := &Body{Radius: 12}
	contact := groundedContact()
	contact.WallTimer = MaxWallTime
	contact.WallDirection = WallRight

	c.Move(body, contact, Intent{JumpPressed: true}, 1)

	if contact.HasWallJumped {
		t.Errorf("HasWallJumped = true, want ground jump to take priority")
	}
	if body.Velocity.X != 0 {
		t.Errorf("Velocity.X = %g, want 0 for a straight ground jump", body.Velocity.X)
	}
}

func TestMoveJumpCut(t *testing.T) {
	var c Controller
	body := &Body{Velocity: cp.Vector{Y: -JumpSpeed}, Radius: 12}
	contact := &ContactState{} // airborne

	c.Move(body, contact, Intent{JumpReleased: true}, 1)

	// -9 cut to -3, then one tick of gravity.
	want := -JumpSpeed/jumpCutDivisor + Gravity
	if math.Abs(body.Velocity.Y-want) > 1e-9 {
		t.Errorf("Velocity.Y = %g, want %g", body.Velocity.Y, want)
	}
}

func TestMoveJumpCutOnlyWhileRising(t *testing.T) {
	var c Controller
	body := &Body{Velocity: cp.Vector{Y: 2}, Radius: 12}
	contact := &ContactState{}

	c.Move(body, contact, Intent{JumpReleased: true}, 1)

	if math.Abs(body.Velocity.Y-(2+Gravity)) > 1e-9 {
		t.Errorf("Velocity.Y = %g, want release to be a no-op while falling", body.Velocity.Y)
	}
}

func TestMoveAccelAndDecelBlend(t *testing.T) {
	t.Run("accelerate from rest", func(t *testing.T) {
		var c Controller
		body := &Body{Radius: 12}
		c.Move(body, groundedContact(), Intent{Direction: cp.Vector{X: 1}}, 1)
		want := MaxSpeed * AccelBlend
		if math.Abs(body.Velocity.X-want) > 1e-9 {
			t.Errorf("Velocity.X = %g, want %g", body.Velocity.X, want)
		}
	})

	t.Run("decelerate without input", func(t *testing.T) {
		var c Controller
		body := &Body{Velocity: cp.Vector{X: 4}, Radius: 12}
		c.Move(body, groundedContact(), Intent{}, 1)
		want := 4 * (1 - DecelBlend)
		if math.Abs(body.Velocity.X-want) > 1e-9 {
			t.Errorf("Velocity.X = %g, want %g", body.Velocity.X, want)
		}
	})
}

func TestMoveWallJumpHalvesAirControl(t *testing.T) {
	run := func(hasWallJumped bool) float64 {
		var c Controller
		body := &Body{Radius: 12}
		contact := &ContactState{HasWallJumped: hasWallJumped}
		c.Move(body, contact, Intent{Direction: cp.Vector{X: 1}}, 1)
		return body.Velocity.X
	}

	normal := run(false)
	reduced := run(true)
	if math.Abs(reduced-normal/2) > 1e-9 {
		t.Errorf("air control with HasWallJumped = %g, want half of %g", reduced, normal)
	}
}

func TestMoveSlopeAlignsInput(t *testing.T) {
	var c Controller
	body := &Body{Radius: 12}
	// 45 degree slope rising to the right; normal points up-left.
	n := cp.Vector{X: -1, Y: -1}.Normalize()
	contact := &ContactState{Normal: n, GroundedTimer: MaxGroundedTime}

	c.Move(body, contact, Intent{Direction: cp.Vector{X: 1}}, 1)

	// Input is rotated onto the uphill tangent, so the only velocity
	// component along the normal is the gravity cling.
	if d := body.Velocity.Dot(n); math.Abs(d - -Gravity) > 1e-9 {
		t.Errorf("velocity.Dot(normal) = %g, want %g", d, -Gravity)
	}
	if body.Velocity.X <= 0 || body.Velocity.Y >= 0 {
		t.Errorf("Velocity = %v, want uphill motion (+x, -y)", body.Velocity)
	}
}

func TestMoveCoyoteJump(t *testing.T) {
	var c Controller
	body := &Body{Velocity: cp.Vector{Y: 1}, Radius: 12}
	// Walked off a ledge: no contact normal anymore, but the grounded
	// timer has a few ticks left.
	contact := &ContactState{GroundedTimer: 4}

	c.Move(body, contact, Intent{JumpPressed: true}, 1)

	if body.Velocity.Y >= 0 {
		t.Errorf("Velocity.Y = %g, want an upward jump from coyote time", body.Velocity.Y)
	}
}

func TestTickTimersDecayAndFloor(t *testing.T) {
	var c Controller
	c.jumpBuffer = 0.5
	contact := &ContactState{GroundedTimer: 3, WallTimer: 1, WallDirection: WallLeft}

	c.TickTimers(contact, 1)
	if contact.GroundedTimer != 2 || contact.WallTimer != 0 {
		t.Errorf("timers = (%g,%g), want (2,0)", contact.GroundedTimer, contact.WallTimer)
	}
	if c.JumpBufferTimer() != 0 {
		t.Errorf("jump buffer = %g, want floored at 0", c.JumpBufferTimer())
	}

	c.TickTimers(contact, 1)
	if contact.GroundedTimer != 1 || contact.WallTimer != 0 {
		t.Errorf("timers = (%g,%g), want (1,0)", contact.GroundedTimer, contact.WallTimer)
	}
	// The direction itself survives expiry; only WallSide hides it.
	if contact.WallDirection != WallLeft {
		t.Errorf("WallDirection = %d, want %d", contact.WallDirection, WallLeft)
	}
}

func TestStepBufferedJumpOnLanding(t *testing.T) {
	lvl, err := level.Compile(level.TileGrid{{1, 1, 1, 1, 1}}, 32)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var c Controller
	body := &Body{
		Position:     cp.Vector{X: 80, Y: -30},
		PrevPosition: cp.Vector{X: 80, Y: -30},
		Radius:       12,
	}
	contact := &ContactState{}

	jumped := false
	for step := 0; step < 20; step++ {
		in := Intent{JumpPressed: step == 0}
		c.Step(lvl, body, contact, in, 1)
		if body.Velocity.Y < -1 {
			jumped = true
			break
		}
	}

	if !jumped {
		t.Fatalf("buffered jump never fired after landing; body at %v", body.Position)
	}
	if body.Position.Y > -body.Radius+1e-6 {
		t.Errorf("Position.Y = %g, want body launched above the floor", body.Position.Y)
	}
}

func TestStepFreeFallStaysFinite(t *testing.T) {
	lvl, err := level.Compile(level.TileGrid{{1}}, 32)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var c Controller
	body := &Body{
		Position:     cp.Vector{X: 500, Y: 500},
		PrevPosition: cp.Vector{X: 500, Y: 500},
		Radius:       12,
	}
	contact := &ContactState{}

	// Nothing within reach: the resolver must report a clean airborne
	// state, not a garbage normal that corrupts the next Move.
	for step := 0; step < 2; step++ {
		c.Step(lvl, body, contact, Intent{}, 1)
		if !contact.Airborne() {
			t.Fatalf("step %d: Airborne = false in open space", step)
		}
		for _, v := range []float64{
			body.Position.X, body.Position.Y,
			body.Velocity.X, body.Velocity.Y,
			contact.Normal.X, contact.Normal.Y,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("step %d: non-finite state: pos %v vel %v normal %v",
					step, body.Position, body.Velocity, contact.Normal)
			}
		}
	}

	// Two ticks of pure gravity.
	if math.Abs(body.Velocity.Y-2*Gravity) > 1e-9 {
		t.Errorf("Velocity.Y = %g, want %g", body.Velocity.Y, 2*Gravity)
	}
	if math.Abs(body.Position.Y-(500+3*Gravity)) > 1e-9 {
		t.Errorf("Position.Y = %g, want %g", body.Position.Y, 500+3*Gravity)
	}
}
