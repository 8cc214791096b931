package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldlog/database"
	"fieldlog/middleware"
	"fieldlog/models"
)

func Dashboard(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		stats, err := db.DashboardStats(ctx, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
			return
		}

		c.JSON(http.StatusOK, models.DashboardResponse{
			ProjectCount:   stats.ProjectCount,
			LogCount:       stats.LogCount,
			PhotoCount:     stats.PhotoCount,
			RecentProjects: stats.RecentProjects,
		})
	}
}
