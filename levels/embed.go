// Package levels embeds the levels that ship with the game.
package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/cmoyates/platformer/level"
)

//go:embed *.yaml
var FS embed.FS

// DefaultName is the level loaded when no -level flag is given.
const DefaultName = "arena.yaml"

// Load compiles an embedded level by file name.
func Load(name string) (*level.Level, error) {
	data, err := fs.ReadFile(FS, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded level: %w", err)
	}
	return level.Parse(data)
}
