// Package obj holds the game-side objects that sit between raw input /
// rendering and the physics simulation.
package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/cmoyates/platformer/common"
	"github.com/cmoyates/platformer/physics"
)

const gamepadDeadzone = 0.25

// Input polls the keyboard and first connected gamepad once per tick
// and exposes the edges and axes the simulation cares about.
type Input struct {
	// MoveX/MoveY are the movement axes in [-1, 1]. Y is screen-down
	// positive, same as world space.
	MoveX float64
	MoveY float64
	// JumpPressed/JumpReleased are single-frame edges.
	JumpPressed  bool
	JumpReleased bool
	// PausePressed is true on the frame the pause key was pressed.
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the devices. Call exactly once per game tick so the
// just-pressed edges line up with simulation steps.
func (i *Input) Update() {
	var moveX, moveY float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		moveY += 1
	}

	var gpJumpJustPressed, gpJumpJustReleased, gpPauseJustPressed bool
	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Abs(leftX) > gamepadDeadzone {
			moveX = common.Clamp(leftX, -1, 1)
		}
		if math.Abs(leftY) > gamepadDeadzone {
			moveY = common.Clamp(leftY, -1, 1)
		}

		gpJumpJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpJumpJustReleased = inpututil.IsStandardGamepadButtonJustReleased(gid, ebiten.StandardGamepadButtonRightBottom)
		gpPauseJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
	}

	i.MoveX = moveX
	i.MoveY = moveY
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || gpJumpJustPressed
	i.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace) || gpJumpJustReleased
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || gpPauseJustPressed
}

// Intent converts the polled state into one simulation step's input.
// The direction magnitude is capped at 1 so diagonals are not faster.
func (i *Input) Intent() physics.Intent {
	dir := cp.Vector{X: i.MoveX, Y: i.MoveY}
	if dir.LengthSq() > 1 {
		dir = dir.Normalize()
	}
	return physics.Intent{
		Direction:    dir,
		JumpPressed:  i.JumpPressed,
		JumpReleased: i.JumpReleased,
	}
}
