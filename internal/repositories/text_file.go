package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/shared"
)

const textFileColumns = "id, sequence, profile, kind, content, created_at, updated_at, deleted_at"

// TextFileRepository implements models.Repository[*models.TextFile] for profile template text.
type TextFileRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.TextFile] = (*TextFileRepository)(nil)

// NewTextFileRepository creates a new TextFileRepository with the given database connection
func NewTextFileRepository(db *sql.DB) *TextFileRepository {
	return &TextFileRepository{db: db}
}

// Create inserts a new text file with generated ID and sequence
func (r *TextFileRepository) Create(file *models.TextFile) error {
	if err := file.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "text_files")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	file.SetID(id)
	file.SetSequence(sequence)

	query := `
		INSERT INTO text_files (id, sequence, profile, kind, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		file.Profile(),
		string(file.Kind()),
		file.Content(),
		file.CreatedAt(),
		file.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert text file: %w", err)
	}

	return nil
}

// Get retrieves a text file by ID, excluding soft-deleted rows
func (r *TextFileRepository) Get(id string) (*models.TextFile, error) {
	query := "SELECT " + textFileColumns + " FROM text_files WHERE id = ? AND deleted_at IS NULL"
	return r.scan(r.db.QueryRow(query, id))
}

// GetByProfile retrieves the live text file of kind for profile
func (r *TextFileRepository) GetByProfile(profile string, kind models.Kind) (*models.TextFile, error) {
	query := "SELECT " + textFileColumns + " FROM text_files WHERE profile = ? AND kind = ? AND deleted_at IS NULL"
	return r.scan(r.db.QueryRow(query, profile, string(kind)))
}

// Update writes the content of an existing text file
func (r *TextFileRepository) Update(file *models.TextFile) error {
	if err := file.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	query := `
		UPDATE text_files
		SET content = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, file.Content(), now, file.ID())
	if err != nil {
		return fmt.Errorf("failed to update text file: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTextFileNotFound, file.ID())
	}

	file.SetUpdatedAt(now)
	return nil
}

// Upsert stores content for (profile, kind), creating the text file when it does not exist yet.
func (r *TextFileRepository) Upsert(profile string, kind models.Kind, content string) (*models.TextFile, error) {
	existing, err := r.GetByProfile(profile, kind)
	switch {
	case err == nil:
		existing.SetContent(content)
		if err := r.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	case errors.Is(err, shared.ErrTextFileNotFound):
		file := models.NewTextFile(0, profile, kind, content)
		if err := r.Create(file); err != nil {
			return nil, err
		}
		return file, nil
	default:
		return nil, err
	}
}

// Delete soft-deletes a text file by ID
func (r *TextFileRepository) Delete(id string) error {
	found, err := softDelete(r.db, "text_files", id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete text file: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: %s", shared.ErrTextFileNotFound, id)
	}
	return nil
}

// List retrieves live text files, optionally filtered by "profile" and "kind" criteria
func (r *TextFileRepository) List(criteria map[string]any) ([]*models.TextFile, error) {
	query := "SELECT " + textFileColumns + " FROM text_files WHERE deleted_at IS NULL"
	args := []any{}

	if profile, ok := criteria["profile"].(string); ok && profile != "" {
		query += " AND profile = ?"
		args = append(args, profile)
	}

	switch kind := criteria["kind"].(type) {
	case models.Kind:
		query += " AND kind = ?"
		args = append(args, string(kind))
	case string:
		if kind != "" {
			query += " AND kind = ?"
			args = append(args, kind)
		}
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query text files: %w", err)
	}
	defer rows.Close()

	var files []*models.TextFile
	for rows.Next() {
		file, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return files, nil
}

// ListProfiles returns the distinct profile names that own at least one live text file
func (r *TextFileRepository) ListProfiles() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT profile FROM text_files WHERE deleted_at IS NULL ORDER BY profile ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *TextFileRepository) scan(row scanner) (*models.TextFile, error) {
	var (
		id        string
		sequence  int
		profile   string
		kind      string
		content   string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &profile, &kind, &content, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrTextFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan text file: %w", err)
	}

	file := models.NewTextFile(sequence, profile, models.Kind(kind), content)
	file.SetID(id)
	file.SetCreatedAt(createdAt)
	file.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		file.SetDeletedAt(&deletedAt.Time)
	}

	return file, nil
}
