package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildsense/energy-backend/internal/analysis"
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

// Register attaches the report routes to the analysis router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate-pdf", h.generate)
	rg.GET("/pdfs", h.list)
	rg.GET("/pdfs/:filename", h.download)
}

type generateReq struct {
	BuildingIDs []string `json:"buildingIds"`
	City        string   `json:"city"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req.BuildingIDs, req.City)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, res)
	case errors.Is(err, ErrNoBuildingIDs), errors.Is(err, ErrCityRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, energy.ErrUnknownCity):
		c.JSON(http.StatusNotFound, gin.H{"error": "City data not found"})
	case errors.Is(err, ErrNoDesigns), errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No building designs found"})
	case energy.IsValidation(err) && !errors.Is(err, analysis.ErrInvalidCityData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).LogError("generate_pdf", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
	}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("list_pdfs", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get PDFs"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) download(c *gin.Context) {
	name := c.Param("filename")
	body, size, err := h.svc.Open(c.Request.Context(), name)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidFilename):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF not found"})
		return
	default:
		logging.FromContext(c.Request.Context()).LogError("download_pdf", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to download PDF"})
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, size, "application/pdf", body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, name),
	})
}
