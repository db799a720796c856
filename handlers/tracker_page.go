package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-tracker/models"
)

const trackerPath = "/tracker"

// TrackerPage renders the order form, the order cards and the summary table
func (h *Handler) TrackerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "tracker.tmpl", gin.H{
		"Form":  h.Tracker.Form(),
		"Rows":  tableRows(h.Tracker.Orders()),
		"Types": models.PizzaTypes(),
		"Sizes": models.Sizes(),
		"Bases": models.Bases(),
	})
}

// SubmitOrderForm keeps the submitted selection as the pending form and places an order with it
func (h *Handler) SubmitOrderForm(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "invalid order: %s", err.Error())
		return
	}
	h.Tracker.SetForm(form)
	h.Tracker.Place(form)
	c.Redirect(http.StatusSeeOther, trackerPath)
}

func (h *Handler) SubmitAdvance(c *gin.Context) {
	if id, ok := orderIDParam(c); ok {
		h.Tracker.AdvanceStage(id)
	}
	c.Redirect(http.StatusSeeOther, trackerPath)
}

func (h *Handler) SubmitCancel(c *gin.Context) {
	if id, ok := orderIDParam(c); ok {
		h.Tracker.Cancel(id)
	}
	c.Redirect(http.StatusSeeOther, trackerPath)
}
