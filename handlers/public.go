package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-tracker/models"
	"pizza-tracker/statemachine"
)

// GetStateMachineInfo returns the full stage pipeline for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	stages := statemachine.Stages()
	labels := make([]gin.H, 0, len(stages))
	for _, s := range stages {
		labels = append(labels, gin.H{"stage": s, "label": s.Label()})
	}

	var terminal []models.Stage
	for _, s := range stages {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"stages":          labels,
		"initial_state":   models.StagePlaced,
		"terminal_states": terminal,
		"description":     "Pizza Order Lifecycle State Machine",
	})
}

// GetOptions lists what the order form accepts
func GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"type": models.PizzaTypes(),
		"size": models.Sizes(),
		"base": models.Bases(),
	})
}
