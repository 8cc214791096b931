package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fieldlog/database"
	"fieldlog/jsonfield"
	"fieldlog/middleware"
	"fieldlog/models"
	"fieldlog/storage"
)

// CreateLog accepts a multipart form with the free-form JSON fields and any
// attached photo files. Every JSON field is normalized before insert; a bad
// field rejects the whole request, so stored columns are always valid JSON of
// the right shape.
func CreateLog(db *database.DB, photos *storage.PhotoStore, maxUploadBytes int64, logger zerolog.Logger) gin.HandlerFunc {
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

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

		var req models.CreateLogRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logDate, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}

		log := models.DailyLog{
			ProjectID:     projectID,
			CreatedByID:   middleware.UserID(c),
			LogDate:       logDate,
			PhotoURLsJSON: "[]",
			Notes:         optional(req.Notes),
		}

		fields := []struct {
			input       string
			expectArray bool
			name        string
			dst         *string
		}{
			{req.Events, true, "events", &log.EventsJSON},
			{req.Weather, false, "weather", &log.WeatherJSON},
			{req.Subcontractors, true, "subcontractors", &log.SubcontractorsJSON},
			{req.Issues, true, "issues", &log.IssuesJSON},
			{req.Safety, true, "safety", &log.SafetyJSON},
			{req.Labor, true, "labor", &log.LaborJSON},
			{req.Equipment, true, "equipment", &log.EquipmentJSON},
			{req.Deliveries, true, "deliveries", &log.DeliveriesJSON},
			{req.Inspections, true, "inspections", &log.InspectionsJSON},
		}
		for _, f := range fields {
			normalized, err := jsonfield.Normalize(f.input, f.expectArray, f.name)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			*f.dst = normalized
		}

		if err := db.InsertDailyLog(ctx, &log); err != nil {
			if errors.Is(err, database.ErrDuplicateLogDate) {
				c.JSON(http.StatusConflict, gin.H{
					"error": fmt.Sprintf("a daily log already exists for %s", req.Date),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create log"})
			return
		}

		form, _ := c.MultipartForm()
		if form != nil && len(form.File["photos"]) > 0 {
			urls, err := photos.SavePhotos(projectID, log.ID, form.File["photos"])
			if err != nil {
				logger.Error().Err(err).Str("log_id", log.ID.String()).Msg("photo save failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photos"})
				return
			}
			if len(urls) > 0 {
				urlsJSON, err := json.MarshalIndent(urls, "", "  ")
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photos"})
					return
				}
				log.PhotoURLsJSON = string(urlsJSON)
				if err := db.SetPhotoURLs(ctx, log.ID, log.PhotoURLsJSON); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store photos"})
					return
				}
			}
		}

		c.JSON(http.StatusCreated, buildLogView(&log, project))
	}
}

func GetLog(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
			return
		}

		ctx := c.Request.Context()
		log, project, err := db.GetOwnedLog(ctx, middleware.UserID(c), logID)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.JSON(http.StatusOK, buildLogView(log, project))
	}
}

func DeleteLog(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
			return
		}

		ctx := c.Request.Context()
		projectID, err := db.DeleteOwnedLog(ctx, middleware.UserID(c), logID)
		if err != nil {
			respondLookupError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "log deleted", "project_id": projectID})
	}
}

// buildLogView decodes every stored JSON column into its typed form. Decoding
// is lenient: a corrupt column renders as empty rather than failing the view.
func buildLogView(log *models.DailyLog, project *models.Project) models.LogView {
	return models.LogView{
		LogID:          log.ID,
		ProjectID:      log.ProjectID,
		ProjectName:    project.Name,
		LogDate:        log.LogDate.Format(dateLayout),
		WeatherBadge:   jsonfield.SummarizeWeather(log.WeatherJSON),
		Weather:        models.DecodeWeather(log.WeatherJSON),
		Events:         models.DecodeList[models.EventItem](log.EventsJSON),
		Subcontractors: models.DecodeList[models.SubcontractorItem](log.SubcontractorsJSON),
		Issues:         models.DecodeList[models.IssueItem](log.IssuesJSON),
		Safety:         models.DecodeList[models.SafetyItem](log.SafetyJSON),
		Labor:          models.DecodeList[models.LaborItem](log.LaborJSON),
		Equipment:      models.DecodeList[models.EquipmentItem](log.EquipmentJSON),
		Deliveries:     models.DecodeList[models.DeliveryItem](log.DeliveriesJSON),
		Inspections:    models.DecodeList[models.InspectionItem](log.InspectionsJSON),
		PhotoURLs:      models.DecodeList[string](log.PhotoURLsJSON),
		Notes:          log.Notes,
	}
}
