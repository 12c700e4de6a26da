package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/TimZ21/symbolic-cw1/internal/model"

	"github.com/samber/lo"
)

type TestMetadata struct {
	Name     string
	Students int
	Exams    int
	Slots    int
	Rooms    int
}

type BenchmarkResult struct {
	Test           TestMetadata
	Runs           int
	Solved         int
	MeanIterations float64
	MeanRuntimeMS  float64
}

func main() {
	directoryPtr := flag.String("dir", "", "Directory holding the instance files to benchmark")
	runsPtr := flag.Int("runs", 100, "Seeded runs per instance")
	iterationsPtr := flag.Int("iterations", model.DefaultConfig().IterationBudget, "Iteration budget per run")
	outPtr := flag.String("out", "benchmark_results.csv", "Path of the CSV report")
	flag.Parse()

	if *directoryPtr == "" {
		log.Fatal("an instance directory must be specified")
	}

	tests := getTests(*directoryPtr)
	results := make([]BenchmarkResult, 0, len(tests))

	annealer := model.NewAnnealer()
	for _, test := range tests {
		fmt.Printf("Benchmarking instance \"%v\" over %v runs\n", test.Name, *runsPtr)
		results = append(results, measure(annealer, test, *runsPtr, *iterationsPtr))
	}

	toCsv(results, *outPtr)
}

func getTests(directory string) []TestMetadata {
	files, err := os.ReadDir(directory)
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	}

	tests := make([]TestMetadata, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filename := directory + "/" + file.Name()

		instance, err := parseInstance(filename)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:     filename,
			Students: instance.Students,
			Exams:    instance.Exams,
			Slots:    instance.Slots,
			Rooms:    instance.Rooms,
		})
	}

	return tests
}

func parseInstance(filename string) (model.Instance, error) {
	if strings.HasSuffix(filename, ".json") {
		return model.InputFromJSON(filename)
	}
	return model.InstanceFromText(filename)
}

func measure(annealer model.Annealer, test TestMetadata, runs, iterations int) BenchmarkResult {
	instance := lo.Must(parseInstance(test.Name))

	solved := 0
	totalIterations, totalRuntime := 0, 0.0
	for seed := range runs {
		config := model.DefaultConfig()
		config.Seed = int64(seed)
		config.IterationBudget = iterations

		result, err := annealer.Solve(instance, config)
		if err != nil {
			log.Fatalf("an error occurred while solving \"%v\": %v", test.Name, err)
		}

		if result.Status == model.StatusSat {
			solved++
		}
		totalIterations += result.Iterations
		totalRuntime += result.RuntimeMS
	}

	return BenchmarkResult{
		Test:           test,
		Runs:           runs,
		Solved:         solved,
		MeanIterations: float64(totalIterations) / float64(runs),
		MeanRuntimeMS:  totalRuntime / float64(runs),
	}
}

func toCsv(results []BenchmarkResult, out string) {
	file, err := os.Create(out)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Test", "Students", "Exams", "Slots", "Rooms", "Runs", "Solved", "Mean Iterations", "Mean Runtime(ms)"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Students),
			fmt.Sprintf("%d", result.Test.Exams),
			fmt.Sprintf("%d", result.Test.Slots),
			fmt.Sprintf("%d", result.Test.Rooms),
			fmt.Sprintf("%d", result.Runs),
			fmt.Sprintf("%d", result.Solved),
			fmt.Sprintf("%.1f", result.MeanIterations),
			fmt.Sprintf("%.3f", result.MeanRuntimeMS),
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
