package world

import (
	"errors"
	"fmt"
)

// Default generation constants.
const (
	DefaultWidth     = 70
	DefaultHeight    = 45
	DefaultHUDHeight = 5
)

// Params configures generation. Every value feeds the pseudorandom sequence,
// so a world is reproducible only from the same seed and the same Params.
type Params struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	HUDHeight int `json:"hud_height"` // Rows reserved for the HUD, used only by renderers

	MinRooms    int `json:"min_rooms"`     // Inclusive
	MaxRooms    int `json:"max_rooms"`     // Inclusive
	MinRoomSize int `json:"min_room_size"` // Inclusive
	MaxRoomSize int `json:"max_room_size"` // Exclusive
	Border      int `json:"border"`        // Minimum distance between a room and the grid edge
	RoomRetries int `json:"room_retries"`  // Rejected placements allowed per room

	MinBeer      int `json:"min_beer"`
	MaxBeer      int `json:"max_beer"` // Inclusive
	Cards        int `json:"cards"`
	ItemAttempts int `json:"item_attempts"` // Samples per item before it is dropped

	NPCRetries    int `json:"npc_retries"`
	AvatarRetries int `json:"avatar_retries"`
}

// DefaultParams returns the stock 70x45 world.
func DefaultParams() Params {
	return Params{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		HUDHeight:     DefaultHUDHeight,
		MinRooms:      10,
		MaxRooms:      12,
		MinRoomSize:   6,
		MaxRoomSize:   14,
		Border:        2,
		RoomRetries:   1000,
		MinBeer:       1,
		MaxBeer:       3,
		Cards:         1,
		ItemAttempts:  100,
		NPCRetries:    10000,
		AvatarRetries: 10000,
	}
}

// ErrInvalidParams is returned by Validate.
var ErrInvalidParams = errors.New("world: invalid generation parameters")

// Validate checks that a room of the largest size can fit inside the border
// and that every range is well formed.
func (p Params) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
	}

	switch {
	case p.Width <= 0 || p.Height <= 0:
		return invalid("grid must be positive, got %dx%d", p.Width, p.Height)
	case p.HUDHeight < 0:
		return invalid("hud height must not be negative")
	case p.MinRooms < 1 || p.MaxRooms < p.MinRooms:
		return invalid("room count range [%d,%d]", p.MinRooms, p.MaxRooms)
	case p.MinRoomSize < 2 || p.MaxRoomSize <= p.MinRoomSize:
		return invalid("room size range [%d,%d)", p.MinRoomSize, p.MaxRoomSize)
	case p.Border < 0:
		return invalid("border must not be negative")
	case p.RoomRetries < 1 || p.NPCRetries < 1 || p.AvatarRetries < 1:
		return invalid("retry budgets must be at least 1")
	case p.MinBeer < 0 || p.MaxBeer < p.MinBeer || p.Cards < 0:
		return invalid("item counts beer [%d,%d] cards %d", p.MinBeer, p.MaxBeer, p.Cards)
	case p.ItemAttempts < 1:
		return invalid("item attempts must be at least 1")
	}

	largest := p.MaxRoomSize - 1
	if largest+2*p.Border >= p.Width || largest+2*p.Border >= p.Height {
		return invalid("room of size %d cannot fit a %dx%d grid with border %d",
			largest, p.Width, p.Height, p.Border)
	}
	return nil
}
