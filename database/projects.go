package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fieldlog/models"
)

const projectColumns = "id, name, location, owner_id, created_at"

func (db *DB) CreateProject(ctx context.Context, ownerID, name string, location *string) (*models.Project, error) {
	query := `
		INSERT INTO projects (name, location, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, name, location, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	db.logger.Info().
		Str("project_id", project.ID.String()).
		Str("owner_id", ownerID).
		Msg("created project")
	return project, nil
}

// GetOwnedProject is the authorization chokepoint for project access: it
// returns the project only when it exists and belongs to ownerID, and
// ErrNotFound otherwise. Handlers must not load projects by id any other way.
func (db *DB) GetOwnedProject(ctx context.Context, ownerID string, projectID uuid.UUID) (*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1 AND owner_id = $2
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (db *DB) ListProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (db *DB) UpdateProject(ctx context.Context, ownerID string, projectID uuid.UUID, name string, location *string) (*models.Project, error) {
	query := `
		UPDATE projects
		SET name = $3, location = $4
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + projectColumns

	project, err := scanProject(db.Pool.QueryRow(ctx, query, projectID, ownerID, name, location))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes an owned project; its daily logs go with it via
// ON DELETE CASCADE.
func (db *DB) DeleteProject(ctx context.Context, ownerID string, projectID uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1 AND owner_id = $2`

	result, err := db.Pool.Exec(ctx, query, projectID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	db.logger.Info().Str("project_id", projectID.String()).Msg("deleted project")
	return nil
}

// Helper functions

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Location,
		&project.OwnerID,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
