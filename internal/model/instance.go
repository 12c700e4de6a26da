package model

import (
	"slices"

	"github.com/samber/lo"
)

// Instance holds the validated problem data of one timetabling run. It is
// built once through NewInstance and read-only afterwards, so concurrent
// solves over the same instance are safe.
type Instance struct {
	Students int
	Exams    int
	Slots    int
	Rooms    int

	RoomCapacities []int

	studentsByExam [][]int
	examsByStudent [][]int
	examSizes      []int
	clashPairs     [][2]int
	clashNeighbors [][]int
}

// NewInstance derives the incidence structures every solver component relies
// on: per-exam student sets, per-student exam sets, exam sizes and the clash
// graph (exam pairs sharing at least one student). Pairs referencing ids out
// of range are dropped, mirroring the upstream validation contract.
func NewInstance(students, exams, slots, rooms int, roomCapacities []int, examStudents [][2]int) Instance {
	instance := Instance{
		Students:       students,
		Exams:          exams,
		Slots:          slots,
		Rooms:          rooms,
		RoomCapacities: roomCapacities,
	}

	studentSets := make([]map[int]bool, exams)
	for exam := range studentSets {
		studentSets[exam] = make(map[int]bool)
	}
	examSets := make([]map[int]bool, students)
	for student := range examSets {
		examSets[student] = make(map[int]bool)
	}

	for _, pair := range examStudents {
		exam, student := pair[0], pair[1]
		if exam < 0 || exam >= exams || student < 0 || student >= students {
			continue
		}
		studentSets[exam][student] = true
		examSets[student][exam] = true
	}

	instance.studentsByExam = lo.Map(studentSets, func(set map[int]bool, _ int) []int { return sortedMembers(set) })
	instance.examsByStudent = lo.Map(examSets, func(set map[int]bool, _ int) []int { return sortedMembers(set) })
	instance.examSizes = lo.Map(instance.studentsByExam, func(enrolled []int, _ int) int { return len(enrolled) })

	//** Build the clash graph
	sharing := make(map[[2]int]bool)
	for _, taken := range instance.examsByStudent {
		for i := range len(taken) - 1 {
			for j := i + 1; j < len(taken); j++ {
				sharing[[2]int{taken[i], taken[j]}] = true
			}
		}
	}

	instance.clashPairs = lo.Keys(sharing)
	slices.SortFunc(instance.clashPairs, func(a, b [2]int) int {
		if a[0] != b[0] {
			return a[0] - b[0]
		}
		return a[1] - b[1]
	})

	instance.clashNeighbors = make([][]int, exams)
	for _, pair := range instance.clashPairs {
		instance.clashNeighbors[pair[0]] = append(instance.clashNeighbors[pair[0]], pair[1])
		instance.clashNeighbors[pair[1]] = append(instance.clashNeighbors[pair[1]], pair[0])
	}

	return instance
}

// ExamSize returns the number of distinct students enrolled in the exam.
func (instance Instance) ExamSize(exam int) int {
	return instance.examSizes[exam]
}

// StudentsOf returns the sorted students enrolled in the exam.
func (instance Instance) StudentsOf(exam int) []int {
	return instance.studentsByExam[exam]
}

// ExamsOf returns the sorted exams taken by the student.
func (instance Instance) ExamsOf(student int) []int {
	return instance.examsByStudent[student]
}

// ClashPairs returns every exam pair sharing at least one student, each pair
// sorted and listed once.
func (instance Instance) ClashPairs() [][2]int {
	return instance.clashPairs
}

// ClashNeighbors returns the exams sharing at least one student with the exam.
func (instance Instance) ClashNeighbors(exam int) []int {
	return instance.clashNeighbors[exam]
}

func sortedMembers(set map[int]bool) []int {
	members := lo.Keys(set)
	slices.Sort(members)
	return members
}
