package model

import "math/rand"

// CostEvaluator scores assignments against the six constraint families:
// room capacity, student clashes, per-day limits, turnaround gaps, last-slot
// bans for large exams and invigilator capacity. Evaluation is deterministic
// and supports exact incremental re-scoring after a single-exam reassignment
// in time proportional to that exam's students and clash neighbours.
type CostEvaluator interface {
	// Evaluate recomputes the assignment's full breakdown from scratch and
	// rebinds the evaluator's occupancy tallies to it.
	Evaluate(assignment Assignment) CostBreakdown

	// Delta returns the exact cost change of placing the exam at
	// (room, slot) without mutating the assignment or the tallies. The
	// evaluator must be bound to the assignment's current state.
	Delta(assignment Assignment, exam, room, slot int) CostBreakdown

	// Apply performs the reassignment on the assignment and the tallies and
	// returns the delta breakdown. Applying the previous placement afterwards
	// restores the earlier state exactly.
	Apply(assignment *Assignment, exam, room, slot int) CostBreakdown

	// RandomConflicted returns a uniformly random exam currently involved in
	// a student clash; ok is false when the bound assignment is clash-free.
	RandomConflicted(rng *rand.Rand) (exam int, ok bool)
}

func NewCostEvaluator(instance Instance, config Config) CostEvaluator {
	return newTallyEvaluator(instance, config)
}
