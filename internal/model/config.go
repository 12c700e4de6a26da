package model

import (
	"fmt"
	"time"
)

// ConfigurationError reports a config field the search cannot start with.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (err ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v: %v", err.Field, err.Reason)
}

// Config gathers every knob of one solve call; nothing is read from globals,
// so concurrent solves with different configs are safe.
type Config struct {
	// Day structure and constraint parameters
	SlotsPerDay                int
	MaxPerDay                  int
	MinGap                     int
	TurnaroundGap              int
	LargeExamThreshold         int
	InvigilatorCapacityPerSlot int
	Weights                    Weights

	// Annealing schedule
	InitialTemperature float64
	CoolingRate        float64
	TemperatureFloor   float64
	StagnationWindow   int

	// Budgets; at least one must be positive. A non-positive value disables
	// that budget.
	IterationBudget int
	TimeBudget      time.Duration

	// Move mix
	SwapProbability float64
	HotExamBias     float64

	Seed int64
}

func DefaultConfig() Config {
	return Config{
		SlotsPerDay:                4,
		MaxPerDay:                  2,
		MinGap:                     2,
		TurnaroundGap:              1,
		LargeExamThreshold:         10,
		InvigilatorCapacityPerSlot: 10,
		Weights: Weights{
			RoomCapacity: 10,
			StudentClash: 10,
			DayLimit:     8,
			Turnaround:   6,
			LastSlot:     12,
			Invigilator:  8,
		},

		InitialTemperature: 3.0,
		CoolingRate:        0.9995,
		TemperatureFloor:   1e-6,
		StagnationWindow:   5000,

		IterationBudget: 20000,
		TimeBudget:      0,

		SwapProbability: 0.25,
		HotExamBias:     0.5,

		Seed: 42,
	}
}

func (config Config) Validate() error {
	if config.SlotsPerDay <= 0 {
		return ConfigurationError{"SlotsPerDay", fmt.Sprintf("must be positive, got %v", config.SlotsPerDay)}
	}
	if config.MaxPerDay <= 0 {
		return ConfigurationError{"MaxPerDay", fmt.Sprintf("must be positive, got %v", config.MaxPerDay)}
	}
	if config.MinGap < 0 {
		return ConfigurationError{"MinGap", fmt.Sprintf("must be non-negative, got %v", config.MinGap)}
	}
	if config.TurnaroundGap < 0 {
		return ConfigurationError{"TurnaroundGap", fmt.Sprintf("must be non-negative, got %v", config.TurnaroundGap)}
	}
	if config.LargeExamThreshold <= 0 {
		return ConfigurationError{"LargeExamThreshold", fmt.Sprintf("must be positive, got %v", config.LargeExamThreshold)}
	}
	if config.InvigilatorCapacityPerSlot <= 0 {
		return ConfigurationError{"InvigilatorCapacityPerSlot", fmt.Sprintf("must be positive, got %v", config.InvigilatorCapacityPerSlot)}
	}
	if err := config.Weights.validate(); err != nil {
		return err
	}
	if config.InitialTemperature <= 0 {
		return ConfigurationError{"InitialTemperature", fmt.Sprintf("must be positive, got %v", config.InitialTemperature)}
	}
	if config.CoolingRate <= 0 || config.CoolingRate >= 1 {
		return ConfigurationError{"CoolingRate", fmt.Sprintf("must lie in (0, 1), got %v", config.CoolingRate)}
	}
	if config.TemperatureFloor <= 0 {
		return ConfigurationError{"TemperatureFloor", fmt.Sprintf("must be positive, got %v", config.TemperatureFloor)}
	}
	if config.StagnationWindow < 0 {
		return ConfigurationError{"StagnationWindow", fmt.Sprintf("must be non-negative, got %v", config.StagnationWindow)}
	}
	if config.IterationBudget <= 0 && config.TimeBudget <= 0 {
		return ConfigurationError{"IterationBudget", "either IterationBudget or TimeBudget must be positive"}
	}
	if config.SwapProbability < 0 || config.SwapProbability > 1 {
		return ConfigurationError{"SwapProbability", fmt.Sprintf("must lie in [0, 1], got %v", config.SwapProbability)}
	}
	if config.HotExamBias < 0 || config.HotExamBias > 1 {
		return ConfigurationError{"HotExamBias", fmt.Sprintf("must lie in [0, 1], got %v", config.HotExamBias)}
	}
	return nil
}

// turnaroundGap is the effective minimum same-day slot separation. MinGap and
// TurnaroundGap stay separate knobs so either can be tightened independently;
// the evaluator enforces the tighter of the two.
func (config Config) turnaroundGap() int {
	if config.TurnaroundGap > config.MinGap {
		return config.TurnaroundGap
	}
	return config.MinGap
}

// lastSlot reports whether the slot closes its day. Only slots at position
// SlotsPerDay-1 within their day count; a truncated final day has no banned
// slot.
func (config Config) lastSlot(slot int) bool {
	return slot%config.SlotsPerDay == config.SlotsPerDay-1
}

func (config Config) day(slot int) int {
	return slot / config.SlotsPerDay
}

func (weights Weights) validate() error {
	fields := map[string]int{
		"Weights.RoomCapacity": weights.RoomCapacity,
		"Weights.StudentClash": weights.StudentClash,
		"Weights.DayLimit":     weights.DayLimit,
		"Weights.Turnaround":   weights.Turnaround,
		"Weights.LastSlot":     weights.LastSlot,
		"Weights.Invigilator":  weights.Invigilator,
	}
	for _, field := range []string{"Weights.RoomCapacity", "Weights.StudentClash", "Weights.DayLimit", "Weights.Turnaround", "Weights.LastSlot", "Weights.Invigilator"} {
		if fields[field] < 0 {
			return ConfigurationError{field, fmt.Sprintf("must be non-negative, got %v", fields[field])}
		}
	}
	return nil
}
