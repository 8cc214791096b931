package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"fieldlog/models"
)

const logColumns = `id, project_id, created_by, log_date,
		events_json, weather_json, subcontractors_json, photo_urls_json,
		issues_json, safety_json, labor_json, equipment_json,
		deliveries_json, inspections_json, notes, created_at`

const uniqueViolation = "23505"

// InsertDailyLog inserts one daily log row. A conflict on the
// (project_id, log_date) unique constraint comes back as ErrDuplicateLogDate.
// The generated id and creation timestamp are written back into log.
func (db *DB) InsertDailyLog(ctx context.Context, log *models.DailyLog) error {
	query := `
		INSERT INTO daily_logs (
			project_id, created_by, log_date,
			events_json, weather_json, subcontractors_json, photo_urls_json,
			issues_json, safety_json, labor_json, equipment_json,
			deliveries_json, inspections_json, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	err := db.Pool.QueryRow(ctx, query,
		log.ProjectID, log.CreatedByID, log.LogDate,
		log.EventsJSON, log.WeatherJSON, log.SubcontractorsJSON, log.PhotoURLsJSON,
		log.IssuesJSON, log.SafetyJSON, log.LaborJSON, log.EquipmentJSON,
		log.DeliveriesJSON, log.InspectionsJSON, log.Notes,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateLogDate
		}
		return fmt.Errorf("failed to insert daily log: %w", err)
	}

	db.logger.Info().
		Str("log_id", log.ID.String()).
		Str("project_id", log.ProjectID.String()).
		Str("log_date", log.LogDate.Format(dateLayout)).
		Msg("created daily log")
	return nil
}

// GetOwnedLog is the authorization chokepoint for log access: ownership is
// resolved through the parent project, never from the log row itself. Returns
// the log with its project attached, or ErrNotFound.
func (db *DB) GetOwnedLog(ctx context.Context, ownerID string, logID uuid.UUID) (*models.DailyLog, *models.Project, error) {
	query := `
		SELECT
			l.id, l.project_id, l.created_by, l.log_date,
			l.events_json, l.weather_json, l.subcontractors_json, l.photo_urls_json,
			l.issues_json, l.safety_json, l.labor_json, l.equipment_json,
			l.deliveries_json, l.inspections_json, l.notes, l.created_at,
			p.id, p.name, p.location, p.owner_id, p.created_at
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		WHERE l.id = $1 AND p.owner_id = $2
	`

	var log models.DailyLog
	var project models.Project
	err := db.Pool.QueryRow(ctx, query, logID, ownerID).Scan(
		&log.ID, &log.ProjectID, &log.CreatedByID, &log.LogDate,
		&log.EventsJSON, &log.WeatherJSON, &log.SubcontractorsJSON, &log.PhotoURLsJSON,
		&log.IssuesJSON, &log.SafetyJSON, &log.LaborJSON, &log.EquipmentJSON,
		&log.DeliveriesJSON, &log.InspectionsJSON, &log.Notes, &log.CreatedAt,
		&project.ID, &project.Name, &project.Location, &project.OwnerID, &project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get daily log: %w", err)
	}

	return &log, &project, nil
}

// ListLogs returns a project's logs, optionally bounded to an inclusive date
// range. Callers are expected to have checked project ownership already.
func (db *DB) ListLogs(ctx context.Context, projectID uuid.UUID, from, to string, ascending bool) ([]models.DailyLog, error) {
	qb := NewQueryBuilder()
	qb.AddCondition(columnProjectID, projectID)
	if err := qb.AddDateRange(columnLogDate, from, to); err != nil {
		return nil, err
	}

	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM daily_logs
		%s
		ORDER BY %s %s
	`, logColumns, qb.WhereClause(), columnLogDate, direction)

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	defer rows.Close()

	logs := []models.DailyLog{}
	for rows.Next() {
		var log models.DailyLog
		err := rows.Scan(
			&log.ID, &log.ProjectID, &log.CreatedByID, &log.LogDate,
			&log.EventsJSON, &log.WeatherJSON, &log.SubcontractorsJSON, &log.PhotoURLsJSON,
			&log.IssuesJSON, &log.SafetyJSON, &log.LaborJSON, &log.EquipmentJSON,
			&log.DeliveriesJSON, &log.InspectionsJSON, &log.Notes, &log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily logs: %w", err)
	}

	return logs, nil
}

// SetPhotoURLs writes the photo URL JSON array onto an existing log. This is
// the only mutation a log receives after creation.
func (db *DB) SetPhotoURLs(ctx context.Context, logID uuid.UUID, photoURLsJSON string) error {
	result, err := db.Pool.Exec(ctx,
		`UPDATE daily_logs SET photo_urls_json = $2 WHERE id = $1`,
		logID, photoURLsJSON)
	if err != nil {
		return fmt.Errorf("failed to update photo urls: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOwnedLog removes a log after re-checking ownership through the parent
// project in the same statement. Returns the parent project id.
func (db *DB) DeleteOwnedLog(ctx context.Context, ownerID string, logID uuid.UUID) (uuid.UUID, error) {
	query := `
		DELETE FROM daily_logs l
		USING projects p
		WHERE l.id = $1 AND p.id = l.project_id AND p.owner_id = $2
		RETURNING l.project_id
	`

	var projectID uuid.UUID
	err := db.Pool.QueryRow(ctx, query, logID, ownerID).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to delete daily log: %w", err)
	}

	db.logger.Info().Str("log_id", logID.String()).Msg("deleted daily log")
	return projectID, nil
}
