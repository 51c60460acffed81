package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/folio/internal/domain/project"
	"github.com/rpggio/folio/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, name, description, category, profile_owner, tags, links, last_modified`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, userID string, proj *project.Project) error {
	tags, links, err := encodeProjectLists(proj)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		userID,
		proj.Name,
		proj.Description,
		proj.Category,
		proj.ProfileOwner,
		tags,
		links,
		proj.LastModified.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ? AND id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// Update replaces the stored fields of an existing project
func (r *ProjectRepository) Update(ctx context.Context, userID string, proj *project.Project) error {
	tags, links, err := encodeProjectLists(proj)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = ?, description = ?, category = ?, profile_owner = ?,
		    tags = ?, links = ?, last_modified = ?
		WHERE user_id = ? AND id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Description,
		proj.Category,
		proj.ProfileOwner,
		tags,
		links,
		proj.LastModified.UTC(),
		userID,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireRow(result)
}

// Delete deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(result)
}

// List returns a user's projects, most recently modified first
func (r *ProjectRepository) List(ctx context.Context, userID string) ([]project.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = ?
		ORDER BY last_modified DESC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var tags, links string
	if err := row.Scan(
		&proj.ID,
		&proj.UserID,
		&proj.Name,
		&proj.Description,
		&proj.Category,
		&proj.ProfileOwner,
		&tags,
		&links,
		&proj.LastModified,
	); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(tags, &proj.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags of project %s: %w", proj.ID, err)
	}
	if err := decodeJSONColumn(links, &proj.Links); err != nil {
		return nil, fmt.Errorf("decoding links of project %s: %w", proj.ID, err)
	}
	return &proj, nil
}

func encodeProjectLists(proj *project.Project) (string, string, error) {
	tags, err := encodeJSONColumn(proj.Tags)
	if err != nil {
		return "", "", fmt.Errorf("encoding tags: %w", err)
	}
	links, err := encodeJSONColumn(proj.Links)
	if err != nil {
		return "", "", fmt.Errorf("encoding links: %w", err)
	}
	return tags, links, nil
}

// encodeJSONColumn stores nil slices as an empty JSON array.
func encodeJSONColumn[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeJSONColumn(data string, out any) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), out)
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
