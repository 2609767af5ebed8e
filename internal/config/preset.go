package config

import (
	"fmt"
	"strings"
)

// Preset is a named world size.
type Preset string

const (
	PresetCozy      Preset = "cozy"
	PresetStandard  Preset = "standard"
	PresetSprawling Preset = "sprawling"
)

// Presets lists the accepted presets in display order.
var Presets = []Preset{PresetCozy, PresetStandard, PresetSprawling}

// ParsePreset accepts a preset name, case-insensitively.
func ParsePreset(name string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q (want cozy, standard or sprawling)", name)
}

// ApplyPreset resizes the world section. Standard leaves the loaded values alone.
func ApplyPreset(cfg *Config, preset Preset) {
	w := &cfg.World
	switch preset {
	case PresetCozy:
		w.Width, w.Height = 50, 32
		w.Rooms.MinCount, w.Rooms.MaxCount = 6, 8
		w.Items.MaxBeer = 2
	case PresetSprawling:
		w.Width, w.Height = 100, 60
		w.Rooms.MinCount, w.Rooms.MaxCount = 16, 20
		w.Items.MaxBeer = 5
	}
	if w.Items.MinBeer > w.Items.MaxBeer {
		w.Items.MinBeer = w.Items.MaxBeer
	}
}
