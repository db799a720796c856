package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-tracker/models"
)

// GetForm returns the pending order form
func (h *Handler) GetForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": h.Tracker.Form()})
}

// UpdateForm replaces the pending order form
func (h *Handler) UpdateForm(c *gin.Context) {
	var form models.OrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Tracker.SetForm(form)
	c.JSON(http.StatusOK, gin.H{"message": "Order form updated", "form": form})
}
