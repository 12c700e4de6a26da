package model

import (
	"slices"
	"time"
)

type Status int

const (
	// StatusSat means the best assignment violates no constraint family.
	StatusSat Status = iota
	// StatusHeuristicUnsat means every budget ran out while the best cost was
	// still positive. It is a search outcome, not an infeasibility proof.
	StatusHeuristicUnsat
)

func (status Status) String() string {
	if status == StatusSat {
		return "sat"
	}
	return "heuristic-unsat"
}

// Result packages the terminal state of one solve call. Pure data assembly;
// no decision logic lives here.
type Result struct {
	Status      Status
	Assignment  Assignment
	Cost        CostBreakdown
	Iterations  int
	RuntimeMS   float64
	SlotsPerDay int
}

// ExamPlacement is one schedule row with the day decomposition derived from
// the slot index.
type ExamPlacement struct {
	Exam      int
	Room      int
	Slot      int
	Day       int
	SlotInDay int
}

// Schedule derives the per-exam rows, sorted by slot, then room, then exam.
func (result Result) Schedule() []ExamPlacement {
	rows := make([]ExamPlacement, 0, result.Assignment.Len())
	for exam := range result.Assignment.Len() {
		room, slot := result.Assignment.Placement(exam)
		rows = append(rows, ExamPlacement{
			Exam:      exam,
			Room:      room,
			Slot:      slot,
			Day:       slot / result.SlotsPerDay,
			SlotInDay: slot % result.SlotsPerDay,
		})
	}

	compare := func(a, b ExamPlacement) int {
		if a.Slot != b.Slot {
			return a.Slot - b.Slot
		}
		if a.Room != b.Room {
			return a.Room - b.Room
		}
		return a.Exam - b.Exam
	}
	slices.SortFunc(rows, compare)

	return rows
}

func newResult(status Status, assignment Assignment, cost CostBreakdown, iterations int, start time.Time, config Config) Result {
	return Result{
		Status:      status,
		Assignment:  assignment,
		Cost:        cost,
		Iterations:  iterations,
		RuntimeMS:   float64(time.Since(start).Microseconds()) / 1000.0,
		SlotsPerDay: config.SlotsPerDay,
	}
}
