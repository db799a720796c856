package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizza-tracker/history"
	"pizza-tracker/tracker"
)

// Handler carries what every route needs
type Handler struct {
	Tracker *tracker.Tracker
	History *history.Recorder
	Logger  *zap.Logger

	// StrictLookups makes advance/cancel on an unknown id answer 404
	// instead of a silent no-op
	StrictLookups bool
}

func New(t *tracker.Tracker, h *history.Recorder, logger *zap.Logger, strict bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Tracker: t, History: h, Logger: logger, StrictLookups: strict}
}

func orderIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
