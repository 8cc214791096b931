package database

import (
	"context"
	"fmt"

	"fieldlog/jsonfield"
	"fieldlog/models"
)

const recentProjectLimit = 5

// DashboardStats aggregates a user's activity: project and log counts, a
// photo total summed out of the stored photo URL arrays, and the most
// recently created projects.
type DashboardStats struct {
	ProjectCount   int
	LogCount       int
	PhotoCount     int
	RecentProjects []models.Project
}

func (db *DB) DashboardStats(ctx context.Context, ownerID string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM projects WHERE owner_id = $1`, ownerID).
		Scan(&stats.ProjectCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		WHERE p.owner_id = $1
	`, ownerID).Scan(&stats.LogCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count daily logs: %w", err)
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT l.photo_urls_json
		FROM daily_logs l
		JOIN projects p ON p.id = l.project_id
		WHERE p.owner_id = $1
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load photo columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var photoJSON string
		if err := rows.Scan(&photoJSON); err != nil {
			return nil, fmt.Errorf("failed to scan photo column: %w", err)
		}
		stats.PhotoCount += jsonfield.CountArrayItems(photoJSON)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photo columns: %w", err)
	}

	recentRows, err := db.Pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerID, recentProjectLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}
	defer recentRows.Close()

	stats.RecentProjects, err = scanProjects(recentRows)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
