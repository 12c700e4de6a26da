package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// referenceBreakdown recomputes the breakdown naively and independently of
// the tally evaluator, as the ground truth for differential tests.
func referenceBreakdown(instance Instance, config Config, assignment Assignment) CostBreakdown {
	breakdown := CostBreakdown{}

	loads := make(map[[2]int]int)
	roomsUsed := make(map[int]map[int]bool)
	for exam := range instance.Exams {
		room, slot := assignment.Placement(exam)
		loads[[2]int{room, slot}] += instance.ExamSize(exam)
		if roomsUsed[slot] == nil {
			roomsUsed[slot] = make(map[int]bool)
		}
		roomsUsed[slot][room] = true
	}
	for cell, load := range loads {
		if load > instance.RoomCapacities[cell[0]] {
			breakdown.RoomCapacity += load - instance.RoomCapacities[cell[0]]
		}
	}

	shares := func(exam1, exam2 int) bool {
		for _, student1 := range instance.StudentsOf(exam1) {
			for _, student2 := range instance.StudentsOf(exam2) {
				if student1 == student2 {
					return true
				}
			}
		}
		return false
	}
	for exam1 := range instance.Exams {
		for exam2 := exam1 + 1; exam2 < instance.Exams; exam2++ {
			if shares(exam1, exam2) && assignment.Slots[exam1] == assignment.Slots[exam2] {
				breakdown.StudentClash++
			}
		}
	}

	for student := range instance.Students {
		perDay := make(map[int]int)
		for _, exam := range instance.ExamsOf(student) {
			perDay[config.day(assignment.Slots[exam])]++
		}
		for _, count := range perDay {
			if count > config.MaxPerDay {
				breakdown.DayLimit += count - config.MaxPerDay
			}
		}

		exams := instance.ExamsOf(student)
		gap := config.turnaroundGap()
		for i := range len(exams) - 1 {
			for j := i + 1; j < len(exams); j++ {
				slot1, slot2 := assignment.Slots[exams[i]], assignment.Slots[exams[j]]
				if slot1 > slot2 {
					slot1, slot2 = slot2, slot1
				}
				if slot1 != slot2 && config.day(slot1) == config.day(slot2) && slot2-slot1 < gap {
					breakdown.Turnaround++
				}
			}
		}
	}

	for exam := range instance.Exams {
		if instance.ExamSize(exam) >= config.LargeExamThreshold && config.lastSlot(assignment.Slots[exam]) {
			breakdown.LastSlot++
		}
	}

	for _, rooms := range roomsUsed {
		if len(rooms) > config.InvigilatorCapacityPerSlot {
			breakdown.Invigilator += len(rooms) - config.InvigilatorCapacityPerSlot
		}
	}

	return config.Weights.weighted(breakdown)
}

func randomInstance(rng *rand.Rand) Instance {
	students := 3 + rng.Intn(8)
	exams := 2 + rng.Intn(7)
	slots := 2 + rng.Intn(9)
	rooms := 1 + rng.Intn(4)

	capacities := make([]int, rooms)
	for room := range capacities {
		capacities[room] = 1 + rng.Intn(6)
	}

	pairs := make([][2]int, 0)
	for range 2 * exams {
		pairs = append(pairs, [2]int{rng.Intn(exams), rng.Intn(students)})
	}

	return NewInstance(students, exams, slots, rooms, capacities, pairs)
}

func randomAssignment(instance Instance, rng *rand.Rand) Assignment {
	assignment := NewAssignment(instance.Exams)
	for exam := range instance.Exams {
		assignment.Place(exam, rng.Intn(instance.Rooms), rng.Intn(instance.Slots))
	}
	return assignment
}

func subtract(after, before CostBreakdown) CostBreakdown {
	return CostBreakdown{
		RoomCapacity: after.RoomCapacity - before.RoomCapacity,
		StudentClash: after.StudentClash - before.StudentClash,
		DayLimit:     after.DayLimit - before.DayLimit,
		Turnaround:   after.Turnaround - before.Turnaround,
		LastSlot:     after.LastSlot - before.LastSlot,
		Invigilator:  after.Invigilator - before.Invigilator,
		Total:        after.Total - before.Total,
	}
}

func TestEvaluateMatchesReference(t *testing.T) {
	// Arrange
	rng := rand.New(rand.NewSource(7))
	config := DefaultConfig()
	config.LargeExamThreshold = 3
	config.InvigilatorCapacityPerSlot = 2

	for range 50 {
		instance := randomInstance(rng)
		assignment := randomAssignment(instance, rng)
		evaluator := NewCostEvaluator(instance, config)

		// Act
		breakdown := evaluator.Evaluate(assignment)
		expected := referenceBreakdown(instance, config, assignment)

		// Assert
		assert.Equal(t, expected, breakdown)
		assert.GreaterOrEqual(t, breakdown.Total, 0)
	}
}

func TestZeroCostMeansNoViolations(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	config := DefaultConfig()

	for range 100 {
		instance := randomInstance(rng)
		assignment := randomAssignment(instance, rng)
		breakdown := NewCostEvaluator(instance, config).Evaluate(assignment)

		violations := breakdown.RoomCapacity + breakdown.StudentClash + breakdown.DayLimit +
			breakdown.Turnaround + breakdown.LastSlot + breakdown.Invigilator
		if breakdown.Feasible() {
			assert.Zero(t, violations)
		} else {
			assert.Positive(t, violations)
		}
	}
}

func TestDeltaMatchesFullRecomputation(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	config := DefaultConfig()
	config.LargeExamThreshold = 3
	config.InvigilatorCapacityPerSlot = 2

	for range 20 {
		instance := randomInstance(rng)
		assignment := randomAssignment(instance, rng)
		evaluator := NewCostEvaluator(instance, config)

		cost := evaluator.Evaluate(assignment)
		for range 60 {
			exam := rng.Intn(instance.Exams)
			room, slot := rng.Intn(instance.Rooms), rng.Intn(instance.Slots)

			before := referenceBreakdown(instance, config, assignment)
			delta := evaluator.Delta(assignment, exam, room, slot)

			applied := evaluator.Apply(&assignment, exam, room, slot)
			after := referenceBreakdown(instance, config, assignment)

			assert.Equal(t, subtract(after, before), delta)
			assert.Equal(t, delta, applied)

			cost = cost.Add(delta)
			assert.Equal(t, after, cost)
		}
	}
}

func TestApplyInverseRestoresCost(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	config := DefaultConfig()

	instance := randomInstance(rng)
	assignment := randomAssignment(instance, rng)
	evaluator := NewCostEvaluator(instance, config)
	cost := evaluator.Evaluate(assignment)

	for range 40 {
		exam := rng.Intn(instance.Exams)
		oldRoom, oldSlot := assignment.Placement(exam)

		delta := evaluator.Apply(&assignment, exam, rng.Intn(instance.Rooms), rng.Intn(instance.Slots))
		reverted := evaluator.Apply(&assignment, exam, oldRoom, oldSlot)

		assert.Equal(t, CostBreakdown{}, delta.Add(reverted))
		assert.Equal(t, cost, referenceBreakdown(instance, config, assignment))
	}
}

func TestRandomConflicted(t *testing.T) {
	t.Run("clash-free assignment yields nothing", func(t *testing.T) {
		instance := NewInstance(2, 2, 2, 1, []int{5}, [][2]int{{0, 0}, {1, 1}})
		evaluator := NewCostEvaluator(instance, DefaultConfig())
		assignment := NewAssignment(2)
		assignment.Place(0, 0, 0)
		assignment.Place(1, 0, 1)
		evaluator.Evaluate(assignment)

		_, ok := evaluator.RandomConflicted(rand.New(rand.NewSource(1)))
		assert.False(t, ok)
	})

	t.Run("clashing exams are sampled", func(t *testing.T) {
		instance := NewInstance(1, 2, 2, 1, []int{5}, [][2]int{{0, 0}, {1, 0}})
		evaluator := NewCostEvaluator(instance, DefaultConfig())
		assignment := NewAssignment(2)
		assignment.Place(0, 0, 1)
		assignment.Place(1, 0, 1)
		evaluator.Evaluate(assignment)

		exam, ok := evaluator.RandomConflicted(rand.New(rand.NewSource(1)))
		assert.True(t, ok)
		assert.Contains(t, []int{0, 1}, exam)
	})
}
