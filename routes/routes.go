package routes

import (
	"pizza-tracker/handlers"
	"pizza-tracker/live"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, hub *live.Hub) error {
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	// ── Public info ───────────────────────────────────────────────
	info := r.Group("/api")
	{
		info.GET("/state-machine", handlers.GetStateMachineInfo)
		info.GET("/options", handlers.GetOptions)
	}

	// ── Orders ────────────────────────────────────────────────────
	orders := r.Group("/api/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.PlaceOrder)
		orders.GET("/table", h.OrdersTable)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/:id/history", h.GetOrderHistory)
		orders.PUT("/:id/advance", h.AdvanceOrder)
		orders.PUT("/:id/cancel", h.CancelOrder)
	}

	// ── Pending order form ────────────────────────────────────────
	form := r.Group("/api/form")
	{
		form.GET("", h.GetForm)
		form.PUT("", h.UpdateForm)
	}

	// ── Browser page + live updates ───────────────────────────────
	page := r.Group("/tracker")
	{
		page.GET("", h.TrackerPage)
		page.POST("/orders", h.SubmitOrderForm)
		page.POST("/orders/:id/advance", h.SubmitAdvance)
		page.POST("/orders/:id/cancel", h.SubmitCancel)
	}
	r.GET("/ws", gin.WrapF(hub.HandleWS))

	return nil
}
