package router

import (
	"github.com/gin-gonic/gin"

	"posyandu/internal/handler"
	"posyandu/internal/middleware"
)

// Setup wires the worker's HTTP surface.
func Setup(
	secret string,
	processH *handler.ProcessHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.Default()

	r.GET("/health", healthH.Health)

	authed := r.Group("/", middleware.WorkerSecret(secret))
	authed.POST("/process", processH.Process)
	authed.GET("/documents/:id/export", exportH.Export)

	return r
}
