package bench

// Config holds the measurement tunables.
type Config struct {
	LoopCount          int    // loop trip count per execution
	VectorInstructions int    // operation instances per iteration, vector classes
	GPInstructions     int    // operation instances per iteration, reg64
	RegionSize         int    // bytes in each scratch region
	RegionAlign        int    // alignment of each scratch region
	SideFile           string // last generated block, empty to disable
}

func DefaultConfig() Config {
	return Config{
		LoopCount:          16384 * 8,
		VectorInstructions: 36,
		GPInstructions:     64,
		RegionSize:         4096 * 1024,
		RegionAlign:        2048 * 1024,
		SideFile:           "out.bin",
	}
}

// Instructions returns the per-iteration instance count for rc.
func (c Config) Instructions(rc *RegisterClass) int {
	if rc.IsVector() {
		return c.VectorInstructions
	}
	return c.GPInstructions
}
