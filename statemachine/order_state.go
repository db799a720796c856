package statemachine

import (
	"errors"
	"strings"

	"pizza-tracker/models"
)

// Transition defines a valid stage change and what triggers it
type Transition struct {
	From    models.Stage `json:"from"`
	To      models.Stage `json:"to"`
	Trigger string       `json:"trigger"`
}

// stages is the fixed pipeline every order walks through, in order
var stages = []models.Stage{
	models.StagePlaced,
	models.StageInMaking,
	models.StageReady,
	models.StagePicked,
}

// validTransitions is the authoritative state machine definition
var validTransitions = func() []Transition {
	ts := make([]Transition, 0, len(stages)-1)
	for i := 0; i < len(stages)-1; i++ {
		ts = append(ts, Transition{From: stages[i], To: stages[i+1], Trigger: "advance"})
	}
	return ts
}()

var stageIndex = func() map[models.Stage]int {
	m := make(map[models.Stage]int, len(stages))
	for i, s := range stages {
		m[s] = i
	}
	return m
}()

// Stages returns the pipeline in order
func Stages() []models.Stage {
	out := make([]models.Stage, len(stages))
	copy(out, stages)
	return out
}

// Next returns the stage after current. Picked and unknown stages map to themselves.
func Next(current models.Stage) models.Stage {
	i, ok := stageIndex[current]
	if !ok || i == len(stages)-1 {
		return current
	}
	return stages[i+1]
}

// IsTerminal reports whether no transition leaves the stage
func IsTerminal(s models.Stage) bool {
	return len(ValidTransitionsFrom(s)) == 0
}

// Known reports whether s is one of the pipeline stages
func Known(s models.Stage) bool {
	_, ok := stageIndex[s]
	return ok
}

// ValidTransitionsFrom returns all valid next stages from a given stage
func ValidTransitionsFrom(s models.Stage) []models.Stage {
	var nexts []models.Stage
	for _, t := range validTransitions {
		if t.From == s {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks if an order may move from one stage to another
func CanTransition(from, to models.Stage) error {
	for _, t := range validTransitions {
		if t.From == from && t.To == to {
			return nil
		}
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed. Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(s models.Stage) string {
	nexts := ValidTransitionsFrom(s)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, n := range nexts {
		names[i] = string(n)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
