package model

// Assignment is a total exam -> (room, slot) mapping. Every exam always has
// exactly one placement, even while the assignment is infeasible; accepted
// moves mutate it in place.
type Assignment struct {
	Rooms []int
	Slots []int
}

func NewAssignment(exams int) Assignment {
	return Assignment{
		Rooms: make([]int, exams),
		Slots: make([]int, exams),
	}
}

func (assignment Assignment) Len() int {
	return len(assignment.Rooms)
}

func (assignment Assignment) Placement(exam int) (room, slot int) {
	return assignment.Rooms[exam], assignment.Slots[exam]
}

func (assignment *Assignment) Place(exam, room, slot int) {
	assignment.Rooms[exam] = room
	assignment.Slots[exam] = slot
}

// Clone returns an independent copy, used for best-so-far elitism.
func (assignment Assignment) Clone() Assignment {
	clone := NewAssignment(assignment.Len())
	copy(clone.Rooms, assignment.Rooms)
	copy(clone.Slots, assignment.Slots)
	return clone
}
