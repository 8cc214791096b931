package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fieldlog/config"
	"fieldlog/database"
	"fieldlog/middleware"
	"fieldlog/storage"
)

// NewRouter builds the HTTP surface. Everything under /api requires a bearer
// token; stored photos are served read-only under /uploads.
func NewRouter(cfg *config.Config, db *database.DB, photos *storage.PhotoStore, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", HealthCheck)
	r.Static("/uploads", cfg.Storage.UploadDir)

	api := r.Group("/api", middleware.Auth([]byte(cfg.Auth.Secret)))

	api.GET("/dashboard", Dashboard(db))

	api.POST("/projects", CreateProject(db))
	api.GET("/projects", ListProjects(db))
	api.GET("/projects/:id", GetProject(db))
	api.PUT("/projects/:id", UpdateProject(db))
	api.DELETE("/projects/:id", DeleteProject(db))

	api.POST("/projects/:id/logs", CreateLog(db, photos, cfg.Storage.MaxUploadBytes, logger))
	api.GET("/projects/:id/export", ExportProject(db))
	api.GET("/logs/:id", GetLog(db))
	api.DELETE("/logs/:id", DeleteLog(db))

	return r
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
