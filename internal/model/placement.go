package model

import (
	"math/rand"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// Placement is one (room, slot) pair an exam can occupy.
type Placement struct {
	Room int
	Slot int
}

// buildCandidates precomputes each exam's admissible placements: rooms whose
// capacity fits the exam and, for large exams, slots outside the day-closing
// ban. An exam that fits nowhere gets an empty list; it is still placed so
// the assignment stays total, its violations keep the cost positive.
func buildCandidates(instance Instance, config Config) [][]Placement {
	candidates := make([][]Placement, instance.Exams)
	for exam := range instance.Exams {
		size := instance.ExamSize(exam)
		for room := range instance.Rooms {
			if size > instance.RoomCapacities[room] {
				continue
			}
			for slot := range instance.Slots {
				if size >= config.LargeExamThreshold && config.lastSlot(slot) {
					continue
				}
				candidates[exam] = append(candidates[exam], Placement{Room: room, Slot: slot})
			}
		}
	}
	return candidates
}

// constructInitial builds the initial total assignment: every exam draws a
// random candidate placement, then the exams sharing each slot are matched to
// distinct fitting rooms via largest bipartite matching to spread the load.
// Violations are ignored here; the search repairs them.
func constructInitial(instance Instance, config Config, candidates [][]Placement, rng *rand.Rand) Assignment {
	assignment := NewAssignment(instance.Exams)
	for exam := range instance.Exams {
		if len(candidates[exam]) == 0 {
			assignment.Place(exam, 0, 0)
			continue
		}
		placement := candidates[exam][rng.Intn(len(candidates[exam]))]
		assignment.Place(exam, placement.Room, placement.Slot)
	}

	examsBySlot := make([][]int, instance.Slots)
	for exam := range instance.Exams {
		slot := assignment.Slots[exam]
		examsBySlot[slot] = append(examsBySlot[slot], exam)
	}

	for slot, exams := range examsBySlot {
		if len(exams) < 2 {
			continue
		}

		rooms := lo.Filter(lo.Range(instance.Rooms), func(room, _ int) bool {
			return lo.SomeBy(exams, func(exam int) bool {
				return instance.ExamSize(exam) <= instance.RoomCapacities[room]
			})
		})

		fits := func(examAny any, roomAny any) (bool, error) {
			exam, room := examAny.(int), roomAny.(int)
			return instance.ExamSize(exam) <= instance.RoomCapacities[room], nil
		}

		examsAny := lo.Map(exams, func(exam int, _ int) any { return exam })
		roomsAny := lo.Map(rooms, func(room int, _ int) any { return room })

		graph, err := bipartitegraph.NewBipartiteGraph(examsAny, roomsAny, fits)
		if err != nil {
			continue
		}

		for _, edge := range graph.LargestMatching() {
			examIndex, roomIndex := edge.Node1, edge.Node2-len(exams)
			assignment.Place(exams[examIndex], rooms[roomIndex], slot)
		}
	}

	return assignment
}
