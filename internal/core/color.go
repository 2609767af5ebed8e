package core

// Color is a foreground color for a screen cell. The front end maps each
// value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGrass
	ColorWall
	ColorBeer
	ColorCard
	ColorAvatar
	ColorOski
	ColorTitle
	ColorMuted
	ColorDanger
)
