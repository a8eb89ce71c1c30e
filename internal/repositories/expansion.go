package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
)

const expansionColumns = "id, sequence, text_file_id, entry_index, content, seed, created_at, updated_at, deleted_at"

// ExpansionRepository implements models.Repository[*models.Expansion] for generated variants.
type ExpansionRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Expansion] = (*ExpansionRepository)(nil)

// NewExpansionRepository creates a new ExpansionRepository with the given database connection
func NewExpansionRepository(db *sql.DB) *ExpansionRepository {
	return &ExpansionRepository{db: db}
}

// Create inserts a new expansion with generated ID and sequence
func (r *ExpansionRepository) Create(e *models.Expansion) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "expansions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	e.SetID(id)
	e.SetSequence(sequence)

	query := `
		INSERT INTO expansions (id, sequence, text_file_id, entry_index, content, seed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	// sqlite stores signed integers; the seed round-trips through int64 bit for bit
	_, err = r.db.Exec(query,
		id,
		sequence,
		e.TextFileID(),
		e.EntryIndex(),
		e.Content(),
		int64(e.Seed()),
		e.CreatedAt(),
		e.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expansion: %w", err)
	}

	return nil
}

// Get retrieves an expansion by ID, excluding soft-deleted rows
func (r *ExpansionRepository) Get(id string) (*models.Expansion, error) {
	query := "SELECT " + expansionColumns + " FROM expansions WHERE id = ? AND deleted_at IS NULL"
	return r.scan(r.db.QueryRow(query, id))
}

// Update rewrites the content of an existing expansion
func (r *ExpansionRepository) Update(e *models.Expansion) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	result, err := r.db.Exec(
		"UPDATE expansions SET content = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL",
		e.Content(), now, e.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update expansion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrExpansionNotFound, e.ID())
	}

	e.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes an expansion by ID
func (r *ExpansionRepository) Delete(id string) error {
	found, err := softDelete(r.db, "expansions", id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expansion: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %s", shared.ErrExpansionNotFound, id)
	}
	return nil
}

// DeleteByTextFile soft-deletes every live expansion of a text file and returns how many were removed
func (r *ExpansionRepository) DeleteByTextFile(textFileID string) (int, error) {
	result, err := r.db.Exec(
		"UPDATE expansions SET deleted_at = ? WHERE text_file_id = ? AND deleted_at IS NULL",
		time.Now(), textFileID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expansions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(rows), nil
}

// List retrieves live expansions in creation order, optionally filtered by "text_file_id"
func (r *ExpansionRepository) List(criteria map[string]any) ([]*models.Expansion, error) {
	query := "SELECT " + expansionColumns + " FROM expansions WHERE deleted_at IS NULL"
	args := []any{}

	if id, ok := criteria["text_file_id"].(string); ok && id != "" {
		query += " AND text_file_id = ?"
		args = append(args, id)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expansions: %w", err)
	}
	defer rows.Close()

	var out []*models.Expansion
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return out, nil
}

func (r *ExpansionRepository) scan(row scanner) (*models.Expansion, error) {
	var (
		id         string
		sequence   int
		textFileID string
		entryIndex int
		content    string
		seed       int64
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	err := row.Scan(&id, &sequence, &textFileID, &entryIndex, &content, &seed, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrExpansionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expansion: %w", err)
	}

	e := models.NewExpansion(sequence, textFileID, entryIndex, content, uint64(seed))
	e.SetID(id)
	e.SetCreatedAt(createdAt)
	e.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		e.SetDeletedAt(&deletedAt.Time)
	}

	return e, nil
}
