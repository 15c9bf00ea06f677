package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsense/energy-backend/internal/designs/domain"
	"github.com/buildsense/energy-backend/internal/designs/service"
	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/logging"
)

type Handler struct {
	svc *service.DesignService
}

func New(svc *service.DesignService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("buildingId"))
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("list_designs", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch building designs"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get_design", err, "Failed to fetch building design")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	d, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create_design", err, "Failed to create building design")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) update(c *gin.Context) {
	var req domain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, "update_design", err, "Failed to update building design")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Building design updated successfully", "design": d})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete_design", err, "Failed to delete building design")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Building design deleted successfully"})
}

func (h *Handler) deleteAll(c *gin.Context) {
	n, err := h.svc.DeleteAll(c.Request.Context())
	if err != nil {
		h.fail(c, "clear_designs", err, "Failed to clear building designs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All building designs cleared successfully", "deleted": n})
}

func (h *Handler) compare(c *gin.Context) {
	changes, err := h.svc.Compare(c.Request.Context(), c.Param("id"), c.Param("otherId"))
	if err != nil {
		h.fail(c, "compare_designs", err, "Failed to compare building designs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": c.Param("id"), "to": c.Param("otherId"), "differences": changes})
}

func (h *Handler) history(c *gin.Context) {
	states, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "design_history", err, "Failed to fetch design history")
		return
	}
	c.JSON(http.StatusOK, states)
}

func (h *Handler) undo(c *gin.Context) {
	d, err := h.svc.Undo(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "undo_design", err, "Failed to undo design change")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) redo(c *gin.Context) {
	d, err := h.svc.Redo(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "redo_design", err, "Failed to redo design change")
		return
	}
	c.JSON(http.StatusOK, d)
}

// fail maps service errors onto status codes. Unexpected errors are logged
// and reported with the generic message.
func (h *Handler) fail(c *gin.Context, op string, err error, generic string) {
	switch {
	case energy.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Building design not found"})
	case errors.Is(err, domain.ErrNothingToUndo), errors.Is(err, domain.ErrNothingToRedo):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}
