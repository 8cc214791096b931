package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a top-level unit of work owned by exactly one user.
// All daily logs belong to a project; ownership of a log is always
// resolved through its project, never trusted from the log row itself.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProjectRequest is the payload for creating a new project.
type CreateProjectRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Location string `json:"location" binding:"max=300"`
}

// UpdateProjectRequest is the payload for editing a project's name/location.
type UpdateProjectRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Location string `json:"location" binding:"max=300"`
}

// ProjectsResponse is the standard response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}

// LogSummaryRow is one row of a project's log listing: per-log counts and a
// one-line weather badge derived from the stored JSON columns.
type LogSummaryRow struct {
	LogID              uuid.UUID `json:"log_id"`
	LogDate            string    `json:"log_date"`
	WeatherSummary     string    `json:"weather_summary"`
	SubcontractorCount int       `json:"subcontractor_count"`
	IssueCount         int       `json:"issue_count"`
	SafetyCount        int       `json:"safety_count"`
	PhotoCount         int       `json:"photo_count"`
}

// ProjectDetailResponse is the project view: the project itself plus its log
// summary rows, optionally filtered to an inclusive date range.
type ProjectDetailResponse struct {
	Project Project         `json:"project"`
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Logs    []LogSummaryRow `json:"logs"`
}

// DashboardResponse aggregates the caller's activity across all their projects.
type DashboardResponse struct {
	ProjectCount   int       `json:"project_count"`
	LogCount       int       `json:"log_count"`
	PhotoCount     int       `json:"photo_count"`
	RecentProjects []Project `json:"recent_projects"`
}
