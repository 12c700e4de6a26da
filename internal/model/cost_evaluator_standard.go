package model

import "math/rand"

// tallyEvaluator keeps occupancy tallies synchronised with one bound
// assignment so single-exam deltas never touch the full instance.
type tallyEvaluator struct {
	instance Instance
	config   Config
	gap      int // effective same-day turnaround separation
	days     int

	load       [][]int // [room][slot] seated students
	examsIn    [][]int // [room][slot] exams placed there
	roomsInUse []int   // [slot] distinct rooms holding at least one exam
	dayCount   [][]int // [student][day] exams that day
	clashing   []int   // [exam] clash neighbours sharing its slot

	// Exams with clashing[exam] > 0, kept as a swap-removal set for uniform
	// sampling by the move generator's hot-exam bias.
	conflicted    []int
	conflictIndex []int
}

func newTallyEvaluator(instance Instance, config Config) *tallyEvaluator {
	days := (instance.Slots + config.SlotsPerDay - 1) / config.SlotsPerDay
	if days == 0 {
		days = 1
	}

	evaluator := &tallyEvaluator{
		instance:      instance,
		config:        config,
		gap:           config.turnaroundGap(),
		days:          days,
		load:          make([][]int, instance.Rooms),
		examsIn:       make([][]int, instance.Rooms),
		roomsInUse:    make([]int, instance.Slots),
		dayCount:      make([][]int, instance.Students),
		clashing:      make([]int, instance.Exams),
		conflicted:    make([]int, 0, instance.Exams),
		conflictIndex: make([]int, instance.Exams),
	}
	for room := range evaluator.load {
		evaluator.load[room] = make([]int, instance.Slots)
		evaluator.examsIn[room] = make([]int, instance.Slots)
	}
	for student := range evaluator.dayCount {
		evaluator.dayCount[student] = make([]int, days)
	}
	return evaluator
}

func (evaluator *tallyEvaluator) Evaluate(assignment Assignment) CostBreakdown {
	evaluator.reset()

	instance, config := evaluator.instance, evaluator.config

	//** Rebuild tallies
	for exam := range instance.Exams {
		room, slot := assignment.Placement(exam)
		evaluator.load[room][slot] += instance.ExamSize(exam)
		if evaluator.examsIn[room][slot]++; evaluator.examsIn[room][slot] == 1 {
			evaluator.roomsInUse[slot]++
		}
	}
	for student := range instance.Students {
		for _, exam := range instance.ExamsOf(student) {
			evaluator.dayCount[student][config.day(assignment.Slots[exam])]++
		}
	}

	//** Score the six families
	breakdown := CostBreakdown{}

	for room := range instance.Rooms {
		for slot := range instance.Slots {
			breakdown.RoomCapacity += overflow(evaluator.load[room][slot], instance.RoomCapacities[room])
		}
	}

	for _, pair := range instance.ClashPairs() {
		if assignment.Slots[pair[0]] == assignment.Slots[pair[1]] {
			breakdown.StudentClash++
			evaluator.bumpClash(pair[0], 1)
			evaluator.bumpClash(pair[1], 1)
		}
	}

	for student := range instance.Students {
		for day := range evaluator.days {
			breakdown.DayLimit += overflow(evaluator.dayCount[student][day], config.MaxPerDay)
		}
		exams := instance.ExamsOf(student)
		for i := range len(exams) - 1 {
			for j := i + 1; j < len(exams); j++ {
				if evaluator.turnaroundViolated(assignment.Slots[exams[i]], assignment.Slots[exams[j]]) {
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

	for slot := range instance.Slots {
		breakdown.Invigilator += overflow(evaluator.roomsInUse[slot], config.InvigilatorCapacityPerSlot)
	}

	return config.Weights.weighted(breakdown)
}

func (evaluator *tallyEvaluator) Delta(assignment Assignment, exam, room, slot int) CostBreakdown {
	instance, config := evaluator.instance, evaluator.config
	oldRoom, oldSlot := assignment.Placement(exam)
	if oldRoom == room && oldSlot == slot {
		return CostBreakdown{}
	}

	delta := CostBreakdown{}
	size := instance.ExamSize(exam)

	//** Room capacity: only the vacated and entered cells change
	delta.RoomCapacity += overflow(evaluator.load[oldRoom][oldSlot]-size, instance.RoomCapacities[oldRoom]) -
		overflow(evaluator.load[oldRoom][oldSlot], instance.RoomCapacities[oldRoom])
	delta.RoomCapacity += overflow(evaluator.load[room][slot]+size, instance.RoomCapacities[room]) -
		overflow(evaluator.load[room][slot], instance.RoomCapacities[room])

	if oldSlot != slot {
		//** Student clashes: only pairs involving the moved exam change
		for _, neighbor := range instance.ClashNeighbors(exam) {
			if assignment.Slots[neighbor] == oldSlot {
				delta.StudentClash--
			}
			if assignment.Slots[neighbor] == slot {
				delta.StudentClash++
			}
		}

		//** Per-day limits for the exam's students
		oldDay, day := config.day(oldSlot), config.day(slot)
		if oldDay != day {
			for _, student := range instance.StudentsOf(exam) {
				counts := evaluator.dayCount[student]
				delta.DayLimit += overflow(counts[oldDay]-1, config.MaxPerDay) - overflow(counts[oldDay], config.MaxPerDay)
				delta.DayLimit += overflow(counts[day]+1, config.MaxPerDay) - overflow(counts[day], config.MaxPerDay)
			}
		}

		//** Turnaround pairs involving the moved exam
		for _, student := range instance.StudentsOf(exam) {
			for _, other := range instance.ExamsOf(student) {
				if other == exam {
					continue
				}
				otherSlot := assignment.Slots[other]
				if evaluator.turnaroundViolated(oldSlot, otherSlot) {
					delta.Turnaround--
				}
				if evaluator.turnaroundViolated(slot, otherSlot) {
					delta.Turnaround++
				}
			}
		}

		//** Last-slot ban
		if size >= config.LargeExamThreshold {
			if config.lastSlot(oldSlot) {
				delta.LastSlot--
			}
			if config.lastSlot(slot) {
				delta.LastSlot++
			}
		}
	}

	//** Invigilator capacity: room-in-use transitions of the touched cells
	leaving, entering := 0, 0
	if evaluator.examsIn[oldRoom][oldSlot] == 1 {
		leaving = -1
	}
	if evaluator.examsIn[room][slot] == 0 {
		entering = 1
	}
	if oldSlot == slot {
		inUse := evaluator.roomsInUse[slot]
		delta.Invigilator += overflow(inUse+leaving+entering, config.InvigilatorCapacityPerSlot) -
			overflow(inUse, config.InvigilatorCapacityPerSlot)
	} else {
		delta.Invigilator += overflow(evaluator.roomsInUse[oldSlot]+leaving, config.InvigilatorCapacityPerSlot) -
			overflow(evaluator.roomsInUse[oldSlot], config.InvigilatorCapacityPerSlot)
		delta.Invigilator += overflow(evaluator.roomsInUse[slot]+entering, config.InvigilatorCapacityPerSlot) -
			overflow(evaluator.roomsInUse[slot], config.InvigilatorCapacityPerSlot)
	}

	return config.Weights.weighted(delta)
}

func (evaluator *tallyEvaluator) Apply(assignment *Assignment, exam, room, slot int) CostBreakdown {
	delta := evaluator.Delta(*assignment, exam, room, slot)

	instance, config := evaluator.instance, evaluator.config
	oldRoom, oldSlot := assignment.Placement(exam)
	if oldRoom == room && oldSlot == slot {
		return delta
	}
	size := instance.ExamSize(exam)

	evaluator.load[oldRoom][oldSlot] -= size
	if evaluator.examsIn[oldRoom][oldSlot]--; evaluator.examsIn[oldRoom][oldSlot] == 0 {
		evaluator.roomsInUse[oldSlot]--
	}
	evaluator.load[room][slot] += size
	if evaluator.examsIn[room][slot]++; evaluator.examsIn[room][slot] == 1 {
		evaluator.roomsInUse[slot]++
	}

	if oldSlot != slot {
		oldDay, day := config.day(oldSlot), config.day(slot)
		if oldDay != day {
			for _, student := range instance.StudentsOf(exam) {
				evaluator.dayCount[student][oldDay]--
				evaluator.dayCount[student][day]++
			}
		}

		for _, neighbor := range instance.ClashNeighbors(exam) {
			if assignment.Slots[neighbor] == oldSlot {
				evaluator.bumpClash(neighbor, -1)
				evaluator.bumpClash(exam, -1)
			}
			if assignment.Slots[neighbor] == slot {
				evaluator.bumpClash(neighbor, 1)
				evaluator.bumpClash(exam, 1)
			}
		}
	}

	assignment.Place(exam, room, slot)
	return delta
}

func (evaluator *tallyEvaluator) RandomConflicted(rng *rand.Rand) (int, bool) {
	if len(evaluator.conflicted) == 0 {
		return 0, false
	}
	return evaluator.conflicted[rng.Intn(len(evaluator.conflicted))], true
}

func (evaluator *tallyEvaluator) reset() {
	for room := range evaluator.load {
		clear(evaluator.load[room])
		clear(evaluator.examsIn[room])
	}
	clear(evaluator.roomsInUse)
	for student := range evaluator.dayCount {
		clear(evaluator.dayCount[student])
	}
	clear(evaluator.clashing)
	evaluator.conflicted = evaluator.conflicted[:0]
	for exam := range evaluator.conflictIndex {
		evaluator.conflictIndex[exam] = -1
	}
}

// bumpClash adjusts an exam's same-slot clash tally and keeps the conflicted
// swap-removal set consistent with it.
func (evaluator *tallyEvaluator) bumpClash(exam, delta int) {
	before := evaluator.clashing[exam]
	evaluator.clashing[exam] = before + delta

	if before == 0 && evaluator.clashing[exam] > 0 {
		evaluator.conflictIndex[exam] = len(evaluator.conflicted)
		evaluator.conflicted = append(evaluator.conflicted, exam)
	} else if before > 0 && evaluator.clashing[exam] == 0 {
		index := evaluator.conflictIndex[exam]
		last := evaluator.conflicted[len(evaluator.conflicted)-1]
		evaluator.conflicted[index] = last
		evaluator.conflictIndex[last] = index
		evaluator.conflicted = evaluator.conflicted[:len(evaluator.conflicted)-1]
		evaluator.conflictIndex[exam] = -1
	}
}

// turnaroundViolated reports whether two distinct same-day slots sit closer
// than the effective minimum gap. Equal slots are a clash, not a turnaround
// violation.
func (evaluator *tallyEvaluator) turnaroundViolated(slot1, slot2 int) bool {
	if slot1 == slot2 || evaluator.config.day(slot1) != evaluator.config.day(slot2) {
		return false
	}
	distance := slot2 - slot1
	if distance < 0 {
		distance = -distance
	}
	return distance < evaluator.gap
}

func overflow(used, capacity int) int {
	if used > capacity {
		return used - capacity
	}
	return 0
}
