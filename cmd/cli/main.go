package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/TimZ21/symbolic-cw1/internal/model"
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the instance file (.json or the plain text exchange format)")
	outFilePathPtr := flag.String("out", "", "Path to the file where the schedule will be written as JSON; if empty, it'll be written into the Standard Output")
	seedPtr := flag.Int64("seed", model.DefaultConfig().Seed, "Seed of the search's random source; identical seeds reproduce identical runs")
	iterationsPtr := flag.Int("iterations", model.DefaultConfig().IterationBudget, "Iteration budget; non-positive disables it (a time budget must then be set)")
	timeBudgetPtr := flag.Duration("time-budget", model.DefaultConfig().TimeBudget, "Wall clock budget (e.g. 30s); zero disables it")
	initialTempPtr := flag.Float64("initial-temp", model.DefaultConfig().InitialTemperature, "Initial annealing temperature")
	coolingPtr := flag.Float64("cooling", model.DefaultConfig().CoolingRate, "Geometric cooling rate, must lie in (0, 1)")
	swapPtr := flag.Float64("swap", model.DefaultConfig().SwapProbability, "Probability of proposing a swap move instead of a reassignment")
	slotsPerDayPtr := flag.Int("slots-per-day", model.DefaultConfig().SlotsPerDay, "Number of slots per timetable day")
	flag.Parse()

	filePath := *filePathPtr
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Extract instance
	var instance model.Instance
	var err error
	if strings.HasSuffix(filePath, ".json") {
		instance, err = model.InputFromJSON(filePath)
	} else {
		instance, err = model.InstanceFromText(filePath)
	}
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Assemble configuration
	config := model.DefaultConfig()
	config.Seed = *seedPtr
	config.IterationBudget = *iterationsPtr
	config.TimeBudget = *timeBudgetPtr
	config.InitialTemperature = *initialTempPtr
	config.CoolingRate = *coolingPtr
	config.SwapProbability = *swapPtr
	config.SlotsPerDay = *slotsPerDayPtr

	// Run the search
	annealer := model.NewAnnealer()
	result, err := annealer.Solve(instance, config)
	if err != nil {
		log.Fatalf("an error occurred before the search started: %v", err)
	}

	fmt.Printf("runtime_ms: %.3f\n", result.RuntimeMS)

	if result.Status != model.StatusSat {
		fmt.Println("unsat")
		fmt.Fprintf(os.Stderr, "budget exhausted after %v iterations; best residual cost %v "+
			"(capacity %v, clash %v, day-limit %v, turnaround %v, last-slot %v, invigilator %v)\n",
			result.Iterations, result.Cost.Total,
			result.Cost.RoomCapacity, result.Cost.StudentClash, result.Cost.DayLimit,
			result.Cost.Turnaround, result.Cost.LastSlot, result.Cost.Invigilator)
		os.Exit(20)
	}

	fmt.Println("sat")
	schedule := result.Schedule()
	for _, row := range schedule {
		fmt.Printf("exam %v: room %v, slot %v\n", row.Exam, row.Room, row.Slot)
	}

	if *outFilePathPtr != "" {
		scheduleJson, err := json.Marshal(schedule)
		if err != nil {
			log.Fatalf("an error occurred while building output json: %v", err)
		}
		if err := os.WriteFile(*outFilePathPtr, scheduleJson, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	os.Exit(10)
}
