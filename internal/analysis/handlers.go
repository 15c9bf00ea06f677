package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsense/energy-backend/internal/designs/domain"
	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/logging"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the analysis routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/buildings", h.buildings)
	rg.GET("/buildings/:id/cities/:city", h.building)
	rg.GET("/buildings/:id/profile", h.profile)
	rg.GET("/rankings", h.rankings)
}

func (h *Handler) buildings(c *gin.Context) {
	ctx := c.Request.Context()
	logging.FromContext(ctx).LogInfo("analyze_buildings", "fetching analysis for buildings across all cities")

	results, err := h.svc.AnalyzeBuildings(ctx, ParseIDs(c.Query("ids")))
	if err != nil {
		h.fail(c, "analyze_buildings", err, "Failed to analyze buildings")
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) building(c *gin.Context) {
	r, err := h.svc.AnalyzeDesign(c.Request.Context(), c.Param("id"), c.Param("city"))
	if err != nil {
		h.fail(c, "analyze_building", err, "Failed to analyze building")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) profile(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}
	season := c.DefaultQuery("season", string(energy.Summer))

	p, err := h.svc.DailyProfile(c.Request.Context(), c.Param("id"), city, season)
	if err != nil {
		h.fail(c, "daily_profile", err, "Failed to build daily profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) rankings(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	ca, err := h.svc.Rankings(c.Request.Context(), ParseIDs(c.Query("ids")), city)
	if err != nil {
		h.fail(c, "rankings", err, "Failed to rank buildings")
		return
	}
	c.JSON(http.StatusOK, ca)
}

func (h *Handler) fail(c *gin.Context, op string, err error, generic string) {
	switch {
	case errors.Is(err, ErrNoDesigns):
		c.JSON(http.StatusNotFound, gin.H{"error": "No building designs found"})
	case errors.Is(err, ErrNoCities):
		c.JSON(http.StatusNotFound, gin.H{"error": "No city data found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Building design not found"})
	case errors.Is(err, energy.ErrUnknownCity):
		c.JSON(http.StatusNotFound, gin.H{"error": "City data not found"})
	case errors.Is(err, energy.ErrUnknownSeason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidCityData):
		logging.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic, "details": err.Error()})
	case energy.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).LogError(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic, "details": err.Error()})
	}
}
