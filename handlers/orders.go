package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizza-tracker/models"
)

// PlaceOrderRequest overrides the pending form field by field.
// Missing fields fall back to whatever the form currently holds.
type PlaceOrderRequest struct {
	Type models.PizzaType `json:"type" binding:"omitempty,enum"`
	Size models.Size      `json:"size" binding:"omitempty,enum"`
	Base models.Base      `json:"base" binding:"omitempty,enum"`
}

func (r PlaceOrderRequest) apply(f models.OrderForm) models.OrderForm {
	if r.Type != "" {
		f.Type = r.Type
	}
	if r.Size != "" {
		f.Size = r.Size
	}
	if r.Base != "" {
		f.Base = r.Base
	}
	return f
}

// ListOrders returns every tracked order with a per-stage count
func (h *Handler) ListOrders(c *gin.Context) {
	orders := h.Tracker.Orders()
	c.JSON(http.StatusOK, gin.H{
		"count":         len(orders),
		"orders":        orders,
		"order_summary": summaryJSON(h.Tracker.Summary()),
	})
}

// OrdersTable returns the rows of the summary table, time already formatted
func (h *Handler) OrdersTable(c *gin.Context) {
	rows := tableRows(h.Tracker.Orders())
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "rows": rows})
}

// GetOrder returns a single order
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id must be an integer"})
		return
	}
	order, found := h.Tracker.Order(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"stage_label":  order.Stage.Label(),
		"time_display": tableRows([]models.Order{order})[0].TimeDisplay,
	})
}

// GetOrderHistory returns the audit trail recorded under an id
func (h *Handler) GetOrderHistory(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id must be an integer"})
		return
	}
	rows, err := h.History.ForOrder(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("load order history", zap.Int("order_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": id, "count": len(rows), "history": rows})
}

// PlaceOrder appends a new order built from the pending form and the request body
func (h *Handler) PlaceOrder(c *gin.Context) {
	form := h.Tracker.Form()

	if c.Request.ContentLength != 0 {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		form = req.apply(form)
	}

	order := h.Tracker.Place(form)
	h.Logger.Info("order placed",
		zap.Int("order_id", order.ID),
		zap.String("type", string(order.Type)),
		zap.String("size", string(order.Size)),
		zap.String("base", string(order.Base)),
	)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// AdvanceOrder moves an order to its next stage
func (h *Handler) AdvanceOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id must be an integer"})
		return
	}

	order, found := h.Tracker.AdvanceStage(id)
	if !found {
		h.missing(c, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Order stage updated",
		"found":       true,
		"order":       order,
		"stage_label": order.Stage.Label(),
	})
}

// CancelOrder removes an order from the board, whatever its stage
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order id must be an integer"})
		return
	}

	order, found := h.Tracker.Cancel(id)
	if !found {
		h.missing(c, id)
		return
	}
	h.Logger.Info("order cancelled", zap.Int("order_id", id), zap.String("stage", string(order.Stage)))
	c.JSON(http.StatusOK, gin.H{
		"message":  "Order cancelled successfully",
		"found":    true,
		"order_id": order.ID,
	})
}

// missing answers a mutation on an unknown id. By default nothing happens and
// the caller gets the unchanged board back.
func (h *Handler) missing(c *gin.Context, id int) {
	if h.StrictLookups {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found", "order_id": id})
		return
	}
	orders := h.Tracker.Orders()
	c.JSON(http.StatusOK, gin.H{
		"message":  "No matching order, nothing changed",
		"found":    false,
		"order_id": id,
		"count":    len(orders),
		"orders":   orders,
	})
}
