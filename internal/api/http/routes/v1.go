package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/buildsense/energy-backend/internal/analysis"
	"github.com/buildsense/energy-backend/internal/cities"
	designhttp "github.com/buildsense/energy-backend/internal/designs/http"
	"github.com/buildsense/energy-backend/internal/reports"
)

type V1Deps struct {
	Designs  *designhttp.Handler
	Cities   cities.Store
	Analysis *analysis.Handler
	Reports  *reports.Handler
}

// RegisterV1 mounts every versioned API route under /api/v1.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	dep.Designs.Register(api.Group("/building-designs"))
	cities.Register(api.Group("/cities"), dep.Cities)

	analysisGroup := api.Group("/analysis")
	dep.Analysis.Register(analysisGroup)
	dep.Reports.Register(analysisGroup)
}
