// Package export renders a project's daily logs as a CSV document.
package export

import (
	"strconv"
	"strings"

	"fieldlog/jsonfield"
	"fieldlog/models"
)

const header = "Project,Date,Weather,EventsCount,SubcontractorsCount,IssuesCount,SafetyCount,PhotosCount,LaborCount,EquipmentCount,DeliveriesCount,InspectionsCount,Notes"

const dateLayout = "2006-01-02"

// BuildCSV renders one row per log in the order given (callers pass logs in
// ascending date order). String cells are double-quoted with internal quotes
// doubled; the weather summary additionally has its commas replaced with
// semicolons before quoting so the cell never splits.
func BuildCSV(projectName string, logs []models.DailyLog) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")

	for _, l := range logs {
		weather := strings.ReplaceAll(jsonfield.SummarizeWeather(l.WeatherJSON), ",", ";")

		notes := ""
		if l.Notes != nil {
			notes = *l.Notes
		}

		writeQuoted(&sb, projectName)
		sb.WriteString(",")
		sb.WriteString(l.LogDate.Format(dateLayout))
		sb.WriteString(",")
		writeQuoted(&sb, weather)
		sb.WriteString(",")
		writeCount(&sb, l.EventsJSON)
		writeCount(&sb, l.SubcontractorsJSON)
		writeCount(&sb, l.IssuesJSON)
		writeCount(&sb, l.SafetyJSON)
		writeCount(&sb, l.PhotoURLsJSON)
		writeCount(&sb, l.LaborJSON)
		writeCount(&sb, l.EquipmentJSON)
		writeCount(&sb, l.DeliveriesJSON)
		writeCount(&sb, l.InspectionsJSON)
		writeQuoted(&sb, notes)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteString(`"`)
	sb.WriteString(strings.ReplaceAll(s, `"`, `""`))
	sb.WriteString(`"`)
}

func writeCount(sb *strings.Builder, rawJSON string) {
	sb.WriteString(strconv.Itoa(jsonfield.CountArrayItems(rawJSON)))
	sb.WriteString(",")
}
