package model

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

// instanceInput is the raw JSON shape of an instance file.
type instanceInput struct {
	NumberOfStudents int     `mapstructure:"numberOfStudents"`
	NumberOfExams    int     `mapstructure:"numberOfExams"`
	NumberOfSlots    int     `mapstructure:"numberOfSlots"`
	NumberOfRooms    int     `mapstructure:"numberOfRooms"`
	RoomCapacities   []int   `mapstructure:"roomCapacities"`
	ExamStudents     [][]int `mapstructure:"examStudents"`
}

// InputFromJSON reads an instance from its JSON representation.
func InputFromJSON(file string) (Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Instance{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Instance{}, err
	}

	var input instanceInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return Instance{}, err
	}

	pairs := lo.Map(input.ExamStudents, func(pair []int, _ int) [2]int {
		if len(pair) != 2 {
			return [2]int{-1, -1}
		}
		return [2]int{pair[0], pair[1]}
	})

	return NewInstance(
		input.NumberOfStudents,
		input.NumberOfExams,
		input.NumberOfSlots,
		input.NumberOfRooms,
		input.RoomCapacities,
		pairs,
	), nil
}

var pairPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+)\s*$`)

// InstanceFromText reads an instance from the plain text exchange format:
// four "<name>: <value>" header lines, one "Room <r> capacity: <value>" line
// per room, then one "<exam> <student>" enrollment pair per line.
func InstanceFromText(file string) (Instance, error) {
	handle, err := os.Open(file)
	if err != nil {
		return Instance{}, err
	}
	defer handle.Close()

	scanner := bufio.NewScanner(handle)
	readAttribute := func(name string) (int, error) {
		if !scanner.Scan() {
			return 0, fmt.Errorf("unexpected end of file while reading the %q attribute", name)
		}
		pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `:\s*(\d+)\s*$`)
		match := pattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			return 0, fmt.Errorf("could not parse line %q; expected the %q attribute", scanner.Text(), name)
		}
		return strconv.Atoi(match[1])
	}

	students, err := readAttribute("Number of students")
	if err != nil {
		return Instance{}, err
	}
	exams, err := readAttribute("Number of exams")
	if err != nil {
		return Instance{}, err
	}
	slots, err := readAttribute("Number of slots")
	if err != nil {
		return Instance{}, err
	}
	rooms, err := readAttribute("Number of rooms")
	if err != nil {
		return Instance{}, err
	}

	capacities := make([]int, 0, rooms)
	for room := range rooms {
		capacity, err := readAttribute(fmt.Sprintf("Room %v capacity", room))
		if err != nil {
			return Instance{}, err
		}
		capacities = append(capacities, capacity)
	}

	pairs := make([][2]int, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		match := pairPattern.FindStringSubmatch(line)
		if match == nil {
			return Instance{}, fmt.Errorf("failed to parse enrollment line: %q", line)
		}
		exam := lo.Must(strconv.Atoi(match[1]))
		student := lo.Must(strconv.Atoi(match[2]))
		pairs = append(pairs, [2]int{exam, student})
	}
	if err := scanner.Err(); err != nil {
		return Instance{}, err
	}

	return NewInstance(students, exams, slots, rooms, capacities, pairs), nil
}
