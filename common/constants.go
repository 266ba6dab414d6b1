package common

const (
	// TileSize is the default edge length of one grid cell in world pixels.
	// Level files may override it with their own unit size.
	TileSize = 32

	// BaseWidth/BaseHeight are the fixed logical resolution of the game view.
	BaseWidth  = 1280
	BaseHeight = 720
)
