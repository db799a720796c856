package handlers

import (
	"pizza-tracker/models"
	"pizza-tracker/statemachine"
	"pizza-tracker/tracker"
)

// OrderRow is one line of the summary table
type OrderRow struct {
	ID          int          `json:"id"`
	Stage       models.Stage `json:"stage"`
	StageLabel  string       `json:"stage_label"`
	TimeSpent   float64      `json:"time_spent"`
	TimeDisplay string       `json:"time_display"`
	CanCancel   bool         `json:"can_cancel"`
	CanAdvance  bool         `json:"can_advance"`
}

// canShowCancel hides the cancel action on ready orders only.
// Cancel itself still accepts every stage.
func canShowCancel(s models.Stage) bool {
	return s != models.StageReady
}

func tableRows(orders []models.Order) []OrderRow {
	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, OrderRow{
			ID:          o.ID,
			Stage:       o.Stage,
			StageLabel:  o.Stage.Label(),
			TimeSpent:   o.TimeSpent,
			TimeDisplay: tracker.FormatTimeSpent(o.TimeSpent),
			CanCancel:   canShowCancel(o.Stage),
			CanAdvance:  !statemachine.IsTerminal(o.Stage),
		})
	}
	return rows
}

func summaryJSON(summary map[models.Stage]int) map[string]int {
	out := make(map[string]int, len(summary))
	for s, n := range summary {
		out[string(s)] = n
	}
	return out
}
