package generator

import "time"

// Config drives the synthetic data generator.
type Config struct {
	NumUsers         int
	CyclesPerUser    int
	SymptomsPerCycle int
	// CycleVariability is the maximum number of days a cycle may drift from
	// the user's average length.
	CycleVariability int
	Password         string
	// Until anchors the most recent generated cycle; zero means now.
	Until time.Time
	Seed  int64
}

// DefaultConfig returns baseline settings for local load testing.
func DefaultConfig() Config {
	return Config{
		NumUsers:         1000,
		CyclesPerUser:    6,
		SymptomsPerCycle: 4,
		CycleVariability: 3,
		Password:         "arivai-demo-pass",
		Seed:             42,
	}
}
