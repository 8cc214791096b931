package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fieldlog/database"
	"fieldlog/jsonfield"
	"fieldlog/middleware"
	"fieldlog/models"
)

const dateLayout = "2006-01-02"

func CreateProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		ctx := c.Request.Context()
		project, err := db.CreateProject(ctx, middleware.UserID(c), name, optional(req.Location))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func ListProjects(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projects, err := db.ListProjects(ctx, middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// GetProject returns the project together with per-log summary rows, newest
// log first, optionally bounded by from/to date query params.
func GetProject(db *database.DB) gin.HandlerFunc {
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

		from, to := c.Query("from"), c.Query("to")
		logs, err := db.ListLogs(ctx, projectID, from, to, false)
		if err != nil {
			var parseErr *time.ParseError
			if errors.As(err, &parseErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date filters must be YYYY-MM-DD"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list logs"})
			return
		}

		rows := make([]models.LogSummaryRow, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, models.LogSummaryRow{
				LogID:              l.ID,
				LogDate:            l.LogDate.Format(dateLayout),
				WeatherSummary:     jsonfield.SummarizeWeather(l.WeatherJSON),
				SubcontractorCount: jsonfield.CountArrayItems(l.SubcontractorsJSON),
				IssueCount:         jsonfield.CountArrayItems(l.IssuesJSON),
				SafetyCount:        jsonfield.CountArrayItems(l.SafetyJSON),
				PhotoCount:         jsonfield.CountArrayItems(l.PhotoURLsJSON),
			})
		}

		c.JSON(http.StatusOK, models.ProjectDetailResponse{
			Project: *project,
			From:    from,
			To:      to,
			Logs:    rows,
		})
	}
}

func UpdateProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
			return
		}

		var req models.UpdateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		ctx := c.Request.Context()
		project, err := db.UpdateProject(ctx, middleware.UserID(c), projectID, name, optional(req.Location))
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.JSON(http.StatusOK, project)
	}
}

func DeleteProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
			return
		}

		ctx := c.Request.Context()
		if err := db.DeleteProject(ctx, middleware.UserID(c), projectID); err != nil {
			respondLookupError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
	}
}

// Helper functions

// respondLookupError maps chokepoint failures: missing and not-owned are one
// indistinct 404, anything else is a 500.
func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
