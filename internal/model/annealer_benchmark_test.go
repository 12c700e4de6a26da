package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The search is stochastic, so feasibility of a known-feasible instance is
// checked as a success rate over many seeds rather than per seed.
func TestKnownFeasibleInstanceSolvesAcrossSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip("multi-seed benchmark skipped in short mode")
	}

	instance := feasibleInstance()
	annealer := NewAnnealer()

	solved := 0
	for seed := range 100 {
		config := DefaultConfig()
		config.Seed = int64(seed)

		result, err := annealer.Solve(instance, config)
		assert.Nil(t, err)

		if result.Status == StatusSat {
			assert.True(t, result.Cost.Feasible())
			solved++
		}
	}

	assert.GreaterOrEqual(t, solved, 95)
}
