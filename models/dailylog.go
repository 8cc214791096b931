package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DailyLog is one calendar-day record within a project. The sub-documents
// (events, weather, subcontractors, ...) are stored as opaque JSON text
// columns; they are validated and canonicalized on the write path and decoded
// leniently on the read path.
type DailyLog struct {
	ID                 uuid.UUID `json:"id"`
	ProjectID          uuid.UUID `json:"project_id"`
	CreatedByID        string    `json:"created_by_id"`
	LogDate            time.Time `json:"log_date"`
	EventsJSON         string    `json:"-"`
	WeatherJSON        string    `json:"-"`
	SubcontractorsJSON string    `json:"-"`
	PhotoURLsJSON      string    `json:"-"`
	IssuesJSON         string    `json:"-"`
	SafetyJSON         string    `json:"-"`
	LaborJSON          string    `json:"-"`
	EquipmentJSON      string    `json:"-"`
	DeliveriesJSON     string    `json:"-"`
	InspectionsJSON    string    `json:"-"`
	Notes              *string   `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateLogRequest is the multipart form payload for creating a daily log.
// The JSON fields are free-form text; they are normalized before insert.
// Photo files ride along as separate "photos" file parts.
type CreateLogRequest struct {
	Date           string `form:"date" binding:"required,datetime=2006-01-02"`
	Events         string `form:"events"`
	Weather        string `form:"weather"`
	Subcontractors string `form:"subcontractors"`
	Issues         string `form:"issues"`
	Safety         string `form:"safety"`
	Labor          string `form:"labor"`
	Equipment      string `form:"equipment"`
	Deliveries     string `form:"deliveries"`
	Inspections    string `form:"inspections"`
	Notes          string `form:"notes"`
}

// Typed sub-document shapes. The JSON keys below are the wire contract for
// every stored field; reads are case-insensitive (encoding/json default).

type EventItem struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

type SubcontractorItem struct {
	Company  string `json:"company"`
	Trade    string `json:"trade"`
	Workers  int    `json:"workers"`
	WorkDone string `json:"workDone"`
	Percent  int    `json:"percent"`
}

type IssueItem struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type SafetyItem struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	ReportedTo  string `json:"reportedTo"`
}

type LaborItem struct {
	Trade   string  `json:"trade"`
	Workers int     `json:"workers"`
	Hours   float64 `json:"hours"`
	Notes   string  `json:"notes"`
}

type EquipmentItem struct {
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
	Condition string  `json:"condition"`
	Notes     string  `json:"notes"`
}

type DeliveryItem struct {
	Vendor   string `json:"vendor"`
	Material string `json:"material"`
	Qty      string `json:"qty"`
	Time     string `json:"time"`
}

type InspectionItem struct {
	Type      string `json:"type"`
	Inspector string `json:"inspector"`
	Result    string `json:"result"`
}

type Weather struct {
	TempC   *float64 `json:"tempC,omitempty"`
	WindKph *float64 `json:"windKph,omitempty"`
	Precip  string   `json:"precip,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// LogView is the fully parsed daily log returned by the view endpoint.
type LogView struct {
	LogID          uuid.UUID           `json:"log_id"`
	ProjectID      uuid.UUID           `json:"project_id"`
	ProjectName    string              `json:"project_name"`
	LogDate        string              `json:"log_date"`
	WeatherBadge   string              `json:"weather_badge"`
	Weather        Weather             `json:"weather"`
	Events         []EventItem         `json:"events"`
	Subcontractors []SubcontractorItem `json:"subcontractors"`
	Issues         []IssueItem         `json:"issues"`
	Safety         []SafetyItem        `json:"safety"`
	Labor          []LaborItem         `json:"labor"`
	Equipment      []EquipmentItem     `json:"equipment"`
	Deliveries     []DeliveryItem      `json:"deliveries"`
	Inspections    []InspectionItem    `json:"inspections"`
	PhotoURLs      []string            `json:"photo_urls"`
	Notes          *string             `json:"notes,omitempty"`
}

// DecodeList parses a stored JSON array column into typed items. Corrupt or
// wrong-shaped content yields an empty slice: display always succeeds, even
// over data that bypassed the normalization path.
func DecodeList[T any](raw string) []T {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []T{}
	}
	return items
}

// DecodeWeather parses the stored weather column, degrading to the zero value
// on any parse failure.
func DecodeWeather(raw string) Weather {
	var w Weather
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return Weather{}
	}
	return w
}
