package obj

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/cmoyates/platformer/common"
	"github.com/cmoyates/platformer/level"
	"github.com/cmoyates/platformer/physics"
)

const (
	playerRadius = 12

	// How far below the level's lowest geometry the body may fall before
	// it respawns, in units.
	fallMarginUnits = 8
)

// Player is the controllable circle: one physics body plus the
// controller that drives it.
type Player struct {
	Body    physics.Body
	Contact physics.ContactState

	controller physics.Controller
	input      *Input
	lvl        *level.Level

	// wasAirborne tracks the contact edge for the landing log line.
	wasAirborne bool
}

func NewPlayer(lvl *level.Level, input *Input) *Player {
	p := &Player{input: input}
	p.SetLevel(lvl)
	return p
}

// SetLevel swaps the level the player collides with and respawns.
// Used at startup and on hot reload.
func (p *Player) SetLevel(lvl *level.Level) {
	p.lvl = lvl
	p.Respawn()
}

// Respawn resets the body to the level's spawn point with all motion
// and contact state cleared.
func (p *Player) Respawn() {
	p.Body = physics.Body{
		Position:     p.lvl.Spawn,
		PrevPosition: p.lvl.Spawn,
		Radius:       playerRadius,
	}
	p.Contact = physics.ContactState{}
	p.wasAirborne = true
}

// Update advances the simulation one tick.
func (p *Player) Update(dt float64) {
	p.controller.Step(p.lvl, &p.Body, &p.Contact, p.input.Intent(), dt)

	if p.wasAirborne && p.Contact.OnGround() {
		fmt.Println("player landed")
	}
	p.wasAirborne = p.Contact.Airborne()

	if p.Body.Position.Y > float64(p.lvl.Height)*p.lvl.Unit+fallMarginUnits*p.lvl.Unit {
		fmt.Println("player fell out of the world, respawning")
		p.Respawn()
	}
}

// JumpBufferTimer exposes the controller's buffer for the debug overlay.
func (p *Player) JumpBufferTimer() float64 {
	return p.controller.JumpBufferTimer()
}

// Draw renders the body as a circle outline plus its contact normal.
func (p *Player) Draw(screen *ebiten.Image) {
	pos := p.Body.Position
	vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(p.Body.Radius), 2, color.White, true)

	if !p.Contact.Airborne() {
		tip := pos.Add(p.Contact.Normal.Mult(p.Body.Radius + common.TileSize/2))
		vector.StrokeLine(screen,
			float32(pos.X), float32(pos.Y),
			float32(tip.X), float32(tip.Y),
			1, colornames.Lime, true)
	}
}

const velocityDrawScale = 4

// DrawVelocity renders the current velocity vector, for the debug view.
func (p *Player) DrawVelocity(screen *ebiten.Image) {
	pos := p.Body.Position
	tip := pos.Add(p.Body.Velocity.Mult(velocityDrawScale))
	vector.StrokeLine(screen,
		float32(pos.X), float32(pos.Y),
		float32(tip.X), float32(tip.Y),
		1, colornames.Orange, true)
}
