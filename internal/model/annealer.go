package model

import (
	"math"
	"math/rand"
	"time"
)

// Annealer drives the construct -> evaluate -> perturb -> accept/reject ->
// cool loop until the cost reaches zero or a budget runs out.
type Annealer interface {
	// Solve runs one single-threaded annealing search over the instance. It
	// always returns a Result with a total assignment; StatusHeuristicUnsat
	// reports budget exhaustion with residual violations and is never a
	// proof of infeasibility.
	Solve(instance Instance, config Config) (Result, error)
}

func NewAnnealer() Annealer {
	return &metropolisAnnealer{}
}

type metropolisAnnealer struct{}

// searchState carries everything the loop mutates between iterations. It is
// discarded once the Result is assembled.
type searchState struct {
	current     Assignment
	cost        CostBreakdown
	best        Assignment
	bestCost    CostBreakdown
	temperature float64
	iteration   int
	rng         *rand.Rand
}

func (annealer *metropolisAnnealer) Solve(instance Instance, config Config) (Result, error) {
	if err := config.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()

	//** Trivial instances short-circuit before any search machinery
	if instance.Exams == 0 {
		return newResult(StatusSat, NewAssignment(0), CostBreakdown{}, 0, start, config), nil
	}
	if instance.Rooms == 0 || instance.Slots == 0 {
		// Nothing can be placed anywhere; report the degenerate assignment
		// as heuristically unsatisfiable without entering the loop.
		return newResult(StatusHeuristicUnsat, NewAssignment(instance.Exams), CostBreakdown{}, 0, start, config), nil
	}

	//** INIT
	state := &searchState{
		rng:         rand.New(rand.NewSource(config.Seed)),
		temperature: config.InitialTemperature,
	}
	evaluator := NewCostEvaluator(instance, config)
	generator := NewMoveGenerator(instance, config, evaluator)

	state.current = constructInitial(instance, config, buildCandidates(instance, config), state.rng)
	state.cost = evaluator.Evaluate(state.current)
	state.best = state.current.Clone()
	state.bestCost = state.cost

	budget := config.IterationBudget
	if budget <= 0 {
		budget = math.MaxInt
	}
	var deadline time.Time
	if config.TimeBudget > 0 {
		deadline = start.Add(config.TimeBudget)
	}

	//** SEARCHING
	sinceImprovement := 0
	for state.bestCost.Total > 0 && state.iteration < budget {
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		state.iteration++

		move := generator.Propose(state.current, state.rng)
		delta, inverse := applyMove(evaluator, &state.current, move)

		if annealer.accept(delta.Total, state) {
			state.cost = state.cost.Add(delta)
			if state.cost.Total < state.bestCost.Total {
				state.best = state.current.Clone()
				state.bestCost = state.cost
				sinceImprovement = -1
			}
		} else {
			applyMove(evaluator, &state.current, inverse)
		}

		if state.temperature *= config.CoolingRate; state.temperature < config.TemperatureFloor {
			state.temperature = config.TemperatureFloor
		}

		if sinceImprovement++; config.StagnationWindow > 0 && sinceImprovement >= config.StagnationWindow {
			state.temperature = config.InitialTemperature
			sinceImprovement = 0
		}
	}

	status := StatusHeuristicUnsat
	if state.bestCost.Total == 0 {
		status = StatusSat
	}
	return newResult(status, state.best, state.bestCost, state.iteration, start, config), nil
}

// accept implements the Metropolis criterion: improvements always pass,
// worsenings pass with probability exp(-delta/T). The temperature is floor
// clamped so the exponent never underflows into NaN territory.
func (annealer *metropolisAnnealer) accept(delta int, state *searchState) bool {
	if delta <= 0 {
		return true
	}
	return state.rng.Float64() < math.Exp(-float64(delta)/state.temperature)
}

// applyMove performs the move through the evaluator, keeping the tallies and
// the assignment in lockstep, and returns the exact delta together with the
// inverse move that undoes it. A swap is two chained reassignments.
func applyMove(evaluator CostEvaluator, assignment *Assignment, move Move) (CostBreakdown, Move) {
	switch move.Kind {
	case MoveSwap:
		room1, slot1 := assignment.Placement(move.Exam)
		room2, slot2 := assignment.Placement(move.OtherExam)
		delta := evaluator.Apply(assignment, move.Exam, room2, slot2)
		delta = delta.Add(evaluator.Apply(assignment, move.OtherExam, room1, slot1))
		return delta, move
	default:
		room, slot := assignment.Placement(move.Exam)
		delta := evaluator.Apply(assignment, move.Exam, move.Room, move.Slot)
		return delta, Move{Kind: MoveReassign, Exam: move.Exam, Room: room, Slot: slot}
	}
}
