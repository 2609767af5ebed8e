package config

import (
	_ "embed"

	"github.com/vovakirdan/oski/internal/save"
	"github.com/vovakirdan/oski/internal/storage"
	"github.com/vovakirdan/oski/internal/world"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// Default returns the hard-coded configuration.
func Default() Config {
	p := world.DefaultParams()
	return Config{
		World: WorldConfig{
			Width:     p.Width,
			Height:    p.Height,
			HUDHeight: p.HUDHeight,
			Rooms: RoomsConfig{
				MinCount:   p.MinRooms,
				MaxCount:   p.MaxRooms,
				MinSize:    p.MinRoomSize,
				MaxSize:    p.MaxRoomSize,
				Border:     p.Border,
				MaxRetries: p.RoomRetries,
			},
			Items: ItemsConfig{
				MinBeer:     p.MinBeer,
				MaxBeer:     p.MaxBeer,
				Cards:       p.Cards,
				MaxAttempts: p.ItemAttempts,
			},
			NPC:    RetryConfig{MaxRetries: p.NPCRetries},
			Avatar: RetryConfig{MaxRetries: p.AvatarRetries},
		},
		Save:    SaveConfig{Path: save.DefaultPath},
		Storage: StorageConfig{DB: storage.DefaultPath},
	}
}
