package cities

import (
	"errors"
	"net/http"

	"github.com/buildsense/energy-backend/internal/energy"
	"github.com/buildsense/energy-backend/internal/logging"
	"github.com/gin-gonic/gin"
)

// Register attaches the read-only city routes to the given router group.
func Register(rg *gin.RouterGroup, store Store) {
	rg.GET("", func(c *gin.Context) {
		items, err := store.List(c.Request.Context())
		if err != nil {
			logging.FromContext(c.Request.Context()).LogError("list_cities", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch city data"})
			return
		}
		c.JSON(http.StatusOK, items)
	})

	rg.GET("/:name", func(c *gin.Context) {
		city, err := store.GetByName(c.Request.Context(), c.Param("name"))
		if errors.Is(err, energy.ErrUnknownCity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "City data not found"})
			return
		}
		if err != nil {
			logging.FromContext(c.Request.Context()).LogError("get_city", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch city data"})
			return
		}
		c.JSON(http.StatusOK, city)
	})
}
