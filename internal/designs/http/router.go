package http

import "github.com/gin-gonic/gin"

// Register attaches building design routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.DELETE("", h.deleteAll)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/compare/:otherId", h.compare)
	rg.GET("/:id/history", h.history)
	rg.POST("/:id/undo", h.undo)
	rg.POST("/:id/redo", h.redo)
}
