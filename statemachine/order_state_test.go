package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-tracker/models"
)

func TestNext_WalksPipelineInOrder(t *testing.T) {
	s := models.StagePlaced
	var seen []models.Stage
	for i := 0; i < 4; i++ {
		s = Next(s)
		seen = append(seen, s)
	}
	assert.Equal(t, []models.Stage{
		models.StageInMaking,
		models.StageReady,
		models.StagePicked,
		models.StagePicked,
	}, seen)
}

func TestNext_UnknownStageUnchanged(t *testing.T) {
	assert.Equal(t, models.Stage("Burnt"), Next(models.Stage("Burnt")))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StagePicked))
	assert.False(t, IsTerminal(models.StagePlaced))
	assert.False(t, IsTerminal(models.StageReady))
}

func TestCanTransition(t *testing.T) {
	require.NoError(t, CanTransition(models.StagePlaced, models.StageInMaking))
	require.NoError(t, CanTransition(models.StageReady, models.StagePicked))

	err := CanTransition(models.StagePlaced, models.StageReady)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InMaking")

	err = CanTransition(models.StagePicked, models.StagePlaced)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal state")
}

func TestGetAllTransitions_ReturnsCopy(t *testing.T) {
	ts := GetAllTransitions()
	require.Len(t, ts, 3)
	ts[0].To = models.StagePicked
	assert.Equal(t, models.StageInMaking, GetAllTransitions()[0].To)
}

func TestStageLabels(t *testing.T) {
	assert.Equal(t, "Order in Making", models.StageInMaking.Label())
	assert.Equal(t, "Order Picked", models.StagePicked.Label())
}
