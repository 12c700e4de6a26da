package model

// Weights scale each constraint family's violation count into the scalar
// objective. A weight of zero disables its family's contribution without
// removing it from the breakdown.
type Weights struct {
	RoomCapacity int
	StudentClash int
	DayLimit     int
	Turnaround   int
	LastSlot     int
	Invigilator  int
}

// CostBreakdown carries the per-family violation counts of an assignment and
// their weighted total. Deltas between two assignments use the same type with
// possibly negative fields.
type CostBreakdown struct {
	RoomCapacity int
	StudentClash int
	DayLimit     int
	Turnaround   int
	LastSlot     int
	Invigilator  int
	Total        int
}

func (cost CostBreakdown) Add(delta CostBreakdown) CostBreakdown {
	return CostBreakdown{
		RoomCapacity: cost.RoomCapacity + delta.RoomCapacity,
		StudentClash: cost.StudentClash + delta.StudentClash,
		DayLimit:     cost.DayLimit + delta.DayLimit,
		Turnaround:   cost.Turnaround + delta.Turnaround,
		LastSlot:     cost.LastSlot + delta.LastSlot,
		Invigilator:  cost.Invigilator + delta.Invigilator,
		Total:        cost.Total + delta.Total,
	}
}

// Feasible reports whether the assignment violates none of the six families.
func (cost CostBreakdown) Feasible() bool {
	return cost.Total == 0
}

func (weights Weights) weighted(cost CostBreakdown) CostBreakdown {
	cost.Total = weights.RoomCapacity*cost.RoomCapacity +
		weights.StudentClash*cost.StudentClash +
		weights.DayLimit*cost.DayLimit +
		weights.Turnaround*cost.Turnaround +
		weights.LastSlot*cost.LastSlot +
		weights.Invigilator*cost.Invigilator
	return cost
}
