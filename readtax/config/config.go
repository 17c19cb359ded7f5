// Package config holds the read-only classification parameters shared by
// every layer of the pipeline, built once from CLI flags and passed by
// reference. There are no package-level singletons.
package config

// Mode selects the alignment strategy used by the search layer.
type Mode uint8

const (
	// MEM enumerates maximal exact matches.
	MEM Mode = iota
	// Greedy seed-and-extends with a mismatch budget.
	Greedy
)

func (m Mode) String() string {
	if m == MEM {
		return "mem"
	}
	return "greedy"
}

// Config is immutable after construction and shared by reference across
// the translator, searchers, classifier and pipeline.
type Config struct {
	Mode Mode

	SeedLength        int // Greedy only, >= 7
	MinFragmentLength int // >= 1, default 11 aa
	MinScore          int // Greedy only, > 0, default 65
	Mismatches        int // Greedy only, >= 0, default 3

	UseEvalue  bool
	MinEvalue  float64 // Greedy only

	InputIsProtein bool
	SegEnabled     bool

	NumThreads int
}

// Default returns a Config matching the documented CLI defaults.
func Default() *Config {
	return &Config{
		Mode:              Greedy,
		SeedLength:        7,
		MinFragmentLength: 11,
		MinScore:          65,
		Mismatches:        3,
		SegEnabled:        true,
		NumThreads:        1,
	}
}
