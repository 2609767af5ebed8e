// Package config provides YAML-based configuration for world generation,
// the save slot and the session history database.
package config

import (
	"fmt"

	"github.com/vovakirdan/oski/internal/world"
)

// Config is the complete configuration.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Save    SaveConfig    `yaml:"save"`
	Storage StorageConfig `yaml:"storage"`
}

// WorldConfig defines the generation parameters.
type WorldConfig struct {
	Width     int         `yaml:"width"`
	Height    int         `yaml:"height"`
	HUDHeight int         `yaml:"hud_height"`
	Rooms     RoomsConfig `yaml:"rooms"`
	Items     ItemsConfig `yaml:"items"`
	NPC       RetryConfig `yaml:"npc"`
	Avatar    RetryConfig `yaml:"avatar"`
}

// RoomsConfig defines room count, size and placement.
type RoomsConfig struct {
	MinCount   int `yaml:"min_count"`
	MaxCount   int `yaml:"max_count"` // Inclusive
	MinSize    int `yaml:"min_size"`
	MaxSize    int `yaml:"max_size"` // Exclusive
	Border     int `yaml:"border"`
	MaxRetries int `yaml:"max_retries"`
}

// ItemsConfig defines collectible counts.
type ItemsConfig struct {
	MinBeer     int `yaml:"min_beer"`
	MaxBeer     int `yaml:"max_beer"`
	Cards       int `yaml:"cards"`
	MaxAttempts int `yaml:"max_attempts"`
}

// RetryConfig bounds a reseed-on-rejection placement loop.
type RetryConfig struct {
	MaxRetries int `yaml:"max_retries"`
}

// SaveConfig locates the save slot.
type SaveConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig locates the history database.
type StorageConfig struct {
	DB string `yaml:"db"`
}

// Params converts the world section into generator parameters.
func (c Config) Params() world.Params {
	w := c.World
	return world.Params{
		Width:         w.Width,
		Height:        w.Height,
		HUDHeight:     w.HUDHeight,
		MinRooms:      w.Rooms.MinCount,
		MaxRooms:      w.Rooms.MaxCount,
		MinRoomSize:   w.Rooms.MinSize,
		MaxRoomSize:   w.Rooms.MaxSize,
		Border:        w.Rooms.Border,
		RoomRetries:   w.Rooms.MaxRetries,
		MinBeer:       w.Items.MinBeer,
		MaxBeer:       w.Items.MaxBeer,
		Cards:         w.Items.Cards,
		ItemAttempts:  w.Items.MaxAttempts,
		NPCRetries:    w.NPC.MaxRetries,
		AvatarRetries: w.Avatar.MaxRetries,
	}
}

// Validate rejects configurations that can never generate a world.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Save.Path == "" {
		return fmt.Errorf("config: save.path must not be empty")
	}
	if c.Storage.DB == "" {
		return fmt.Errorf("config: storage.db must not be empty")
	}
	return nil
}
