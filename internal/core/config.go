package core

// RuntimeConfig contains settings passed from the CLI to the front end.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	Seed     int64  // Seed for a new game; negative means "prompt for one"
	Username string // Owner of the session, used for per-user save files over SSH
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    -1,
	}
}
