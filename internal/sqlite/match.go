package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/folio/internal/domain/match"
	"github.com/rpggio/folio/internal/repository"
)

// MatchRepository implements match.Repository for SQLite
type MatchRepository struct {
	db *DB
}

// NewMatchRepository creates a new MatchRepository
func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const matchColumns = `id, user_id, timestamp, requirements, recommendations, selected_project_ids,
	client_name, proposal, sender_type, sender_name, status, revision, updated_at`

// Create creates a new match record
func (r *MatchRepository) Create(ctx context.Context, userID string, rec *match.Record) error {
	recs, selected, err := encodeMatchLists(rec)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		userID,
		rec.Timestamp.UTC(),
		rec.Requirements,
		recs,
		selected,
		rec.ClientName,
		rec.Proposal,
		rec.SenderType,
		rec.SenderName,
		rec.Status,
		rec.Revision,
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create match record: %w", err)
	}
	return nil
}

// Get retrieves a match record by ID
func (r *MatchRepository) Get(ctx context.Context, userID, id string) (*match.Record, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user_id = ? AND id = ?`

	rec, err := scanMatch(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match record: %w", err)
	}
	return rec, nil
}

// Update updates a match record with optimistic concurrency control
func (r *MatchRepository) Update(ctx context.Context, userID string, rec *match.Record, expectedRevision int64) error {
	recs, selected, err := encodeMatchLists(rec)
	if err != nil {
		return err
	}

	query := `
		UPDATE matches
		SET timestamp = ?, requirements = ?, recommendations = ?, selected_project_ids = ?,
		    client_name = ?, proposal = ?, sender_type = ?, sender_name = ?,
		    status = ?, revision = ?, updated_at = ?
		WHERE user_id = ? AND id = ? AND revision = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		rec.Timestamp.UTC(),
		rec.Requirements,
		recs,
		selected,
		rec.ClientName,
		rec.Proposal,
		rec.SenderType,
		rec.SenderName,
		rec.Status,
		rec.Revision,
		rec.UpdatedAt.UTC(),
		userID,
		rec.ID,
		expectedRevision,
	)
	if err != nil {
		return fmt.Errorf("failed to update match record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM matches WHERE user_id = ? AND id = ?)`
	if err := r.db.QueryRowContext(ctx, checkQuery, userID, rec.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check match record existence: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	// Record exists at a different revision
	return repository.ErrConflict
}

// Delete deletes a match record
func (r *MatchRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete match record: %w", err)
	}
	return requireRow(result)
}

// List returns a user's match records, newest first
func (r *MatchRepository) List(ctx context.Context, userID string) ([]match.Record, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = ?
		ORDER BY timestamp DESC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match records: %w", err)
	}
	defer rows.Close()

	records := []match.Record{}
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return records, nil
}

func scanMatch(row rowScanner) (*match.Record, error) {
	var rec match.Record
	var recs, selected string
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Timestamp,
		&rec.Requirements,
		&recs,
		&selected,
		&rec.ClientName,
		&rec.Proposal,
		&rec.SenderType,
		&rec.SenderName,
		&rec.Status,
		&rec.Revision,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(recs, &rec.Recommendations); err != nil {
		return nil, fmt.Errorf("decoding recommendations of match %s: %w", rec.ID, err)
	}
	if err := decodeJSONColumn(selected, &rec.SelectedProjectIDs); err != nil {
		return nil, fmt.Errorf("decoding selection of match %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func encodeMatchLists(rec *match.Record) (string, string, error) {
	recs, err := encodeJSONColumn(rec.Recommendations)
	if err != nil {
		return "", "", fmt.Errorf("encoding recommendations: %w", err)
	}
	selected, err := encodeJSONColumn(rec.SelectedProjectIDs)
	if err != nil {
		return "", "", fmt.Errorf("encoding selection: %w", err)
	}
	return recs, selected, nil
}
