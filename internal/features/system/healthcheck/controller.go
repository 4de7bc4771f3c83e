package healthcheck

import (
	"context"
	"net/http"
	"time"

	"tasktracker/internal/cache"
	"tasktracker/internal/storage"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 3 * time.Second

type HealthController struct{}

func (c *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.GetHealth)
}

// GetHealth
// @Summary Service health
// @Description Probe database and cache connectivity
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthController) GetHealth(ctx *gin.Context) {
	if err := probeDatabase(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": "database"})
		return
	}

	if err := probeCache(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "component": "cache"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func probeDatabase() error {
	var result int

	return storage.GetDb().Raw("SELECT 1").Scan(&result).Error
}

func probeCache() error {
	client := cache.GetCache()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	return client.Do(ctx, client.B().Ping().Build()).Error()
}
