// Package history keeps an audit trail of order lifecycle changes.
package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pizza-tracker/models"
	"pizza-tracker/tracker"
)

type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger}
}

// Handle is a tracker.Listener. Ticks are not recorded.
func (r *Recorder) Handle(e tracker.Event) {
	row, ok := rowFor(e)
	if !ok {
		return
	}
	if err := r.Record(context.Background(), &row); err != nil {
		r.logger.Error("record stage history",
			zap.Int("order_id", row.OrderID),
			zap.String("event", string(row.Event)),
			zap.Error(err),
		)
	}
}

func rowFor(e tracker.Event) (models.StageHistory, bool) {
	if e.Order == nil {
		return models.StageHistory{}, false
	}
	row := models.StageHistory{
		OrderID:   e.Order.ID,
		TimeSpent: e.Order.TimeSpent,
		CreatedAt: e.At,
	}
	switch e.Type {
	case tracker.EventPlaced:
		row.Event = models.HistoryPlaced
		row.ToStage = e.Order.Stage
	case tracker.EventAdvanced:
		row.Event = models.HistoryAdvanced
		row.FromStage = e.FromStage
		row.ToStage = e.Order.Stage
	case tracker.EventCancelled:
		row.Event = models.HistoryCancelled
		row.FromStage = e.FromStage
	default:
		return models.StageHistory{}, false
	}
	return row, true
}

func (r *Recorder) Record(ctx context.Context, row *models.StageHistory) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert stage history: %w", err)
	}
	return nil
}

// ForOrder returns every row recorded under the id, oldest first.
// Ids can be reused, so rows from an earlier order with the same id are included.
func (r *Recorder) ForOrder(ctx context.Context, orderID int) ([]models.StageHistory, error) {
	var rows []models.StageHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query stage history: %w", err)
	}
	return rows, nil
}
