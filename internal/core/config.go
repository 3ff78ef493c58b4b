package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Won      bool // Finished by solving rather than by running out of strikes
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
