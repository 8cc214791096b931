package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fieldlog/database"
	"fieldlog/export"
	"fieldlog/middleware"
)

// ExportProject streams the project's full log history as a CSV attachment,
// oldest log first.
func ExportProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
			return
		}

		ctx := c.Request.Context()
		project, err := db.GetOwnedProject(ctx, middleware.UserID(c), projectID)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		logs, err := db.ListLogs(ctx, projectID, "", "", true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list logs"})
			return
		}

		csv := export.BuildCSV(project.Name, logs)

		filename := fmt.Sprintf("FieldLog_%s_%s.csv",
			strings.ReplaceAll(project.Name, " ", "_"),
			time.Now().Format("20060102150405"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", []byte(csv))
	}
}
