// internal/bench/scenario.go
//
// Benchmark scenario files. A scenario pins everything that makes a run
// reproducible: which puzzle to start on, how many rounds to rotate through,
// and how many turns the player gets per round.

package bench

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes one benchmark run.
type Scenario struct {
	Name        string `yaml:"name"`
	PuzzleIndex int    `yaml:"puzzleIndex"`
	Rounds      int    `yaml:"rounds"`
	MaxTurns    int    `yaml:"maxTurns"`
	Model       string `yaml:"model"`
}

// LoadScenario reads and validates a YAML scenario file, applying defaults
// for unset counts (1 round, 3 turns).
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	sc.applyDefaults()
	return sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Name == "" {
		sc.Name = "unnamed"
	}
	if sc.Rounds <= 0 {
		sc.Rounds = 1
	}
	if sc.MaxTurns <= 0 {
		sc.MaxTurns = 3
	}
}
