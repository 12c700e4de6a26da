package model

import "math/rand"

type MoveKind int

const (
	// MoveReassign relocates one exam to a new (room, slot) placement.
	MoveReassign MoveKind = iota
	// MoveSwap exchanges the placements of two distinct exams.
	MoveSwap
)

// Move is a single local perturbation of an assignment. Every move keeps the
// assignment total and carries enough information to build its inverse.
type Move struct {
	Kind      MoveKind
	Exam      int
	Room      int // reassign target
	Slot      int // reassign target
	OtherExam int // swap partner
}

// MoveGenerator proposes neighbouring assignments for the annealing loop.
type MoveGenerator interface {
	Propose(assignment Assignment, rng *rand.Rand) Move
}

// NewMoveGenerator mixes reassign and swap moves by Config.SwapProbability.
// Reassign targets come from each exam's precomputed candidate placements
// (rooms that fit, slots not banned for large exams); exam selection is
// biased toward currently clashing exams with Config.HotExamBias.
func NewMoveGenerator(instance Instance, config Config, evaluator CostEvaluator) MoveGenerator {
	return &biasedMoveGenerator{
		instance:   instance,
		config:     config,
		evaluator:  evaluator,
		candidates: buildCandidates(instance, config),
	}
}

type biasedMoveGenerator struct {
	instance   Instance
	config     Config
	evaluator  CostEvaluator
	candidates [][]Placement
}

func (generator *biasedMoveGenerator) Propose(assignment Assignment, rng *rand.Rand) Move {
	instance := generator.instance

	if instance.Exams >= 2 && rng.Float64() < generator.config.SwapProbability {
		exam := rng.Intn(instance.Exams)
		other := rng.Intn(instance.Exams - 1)
		if other >= exam {
			other++
		}
		return Move{Kind: MoveSwap, Exam: exam, OtherExam: other}
	}

	exam := rng.Intn(instance.Exams)
	if rng.Float64() < generator.config.HotExamBias {
		if hot, ok := generator.evaluator.RandomConflicted(rng); ok {
			exam = hot
		}
	}

	candidates := generator.candidates[exam]
	if len(candidates) == 0 {
		// No feasible placement exists at all; roam freely so the exam is
		// still movable and the assignment stays total.
		return Move{Kind: MoveReassign, Exam: exam, Room: rng.Intn(instance.Rooms), Slot: rng.Intn(instance.Slots)}
	}

	choice := candidates[rng.Intn(len(candidates))]
	if room, slot := assignment.Placement(exam); choice.Room == room && choice.Slot == slot && len(candidates) > 1 {
		// Re-draw against a shrunken range so the move always goes somewhere
		next := candidates[rng.Intn(len(candidates)-1)]
		if next == choice {
			next = candidates[len(candidates)-1]
		}
		choice = next
	}
	return Move{Kind: MoveReassign, Exam: exam, Room: choice.Room, Slot: choice.Slot}
}
