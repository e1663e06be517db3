package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a requested template or version does
// not exist.
var ErrNotFound = errors.New("prompt version not found")

// VersionRepository reads and writes saved prompt versions.
type VersionRepository struct {
	db *bun.DB
}

// VersionSearchRow is a similarity search hit: a stored version plus
// its cosine distance to the query embedding.
type VersionSearchRow struct {
	PromptVersion `bun:",extend"`
	Distance      float64 `bun:"distance"`
}

func NewVersionRepository(database *Database) *VersionRepository {
	return &VersionRepository{db: database.Bun()}
}

// SaveVersion stores a new revision under v.Name, assigning the next
// version number for that name.
func (r *VersionRepository) SaveVersion(ctx context.Context, v *PromptVersion) error {
	latest, err := r.latestVersionNumber(ctx, v.Name)
	if err != nil {
		return err
	}
	v.Version = latest + 1
	if _, err := r.db.NewInsert().Model(v).Exec(ctx); err != nil {
		return fmt.Errorf("insert version %s@%d: %w", v.Name, v.Version, err)
	}
	return nil
}

func (r *VersionRepository) latestVersionNumber(ctx context.Context, name string) (int, error) {
	var result struct {
		Version sql.NullInt64 `bun:"version"`
	}
	err := r.db.NewSelect().Model((*PromptVersion)(nil)).
		ColumnExpr("max(version) AS version").
		Where("name = ?", name).
		Scan(ctx, &result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	if !result.Version.Valid {
		return 0, nil
	}
	return int(result.Version.Int64), nil
}

// GetVersion fetches one revision of a named template.
func (r *VersionRepository) GetVersion(ctx context.Context, name string, version int) (*PromptVersion, error) {
	v := new(PromptVersion)
	err := r.db.NewSelect().Model(v).
		Where("name = ?", name).
		Where("version = ?", version).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s@%d: %w", name, version, ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

// Latest fetches the newest revision of a named template.
func (r *VersionRepository) Latest(ctx context.Context, name string) (*PromptVersion, error) {
	v := new(PromptVersion)
	err := r.db.NewSelect().Model(v).
		Where("name = ?", name).
		OrderExpr("version DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

// ListVersions returns all revisions of a named template, oldest first.
// The body column is omitted to keep listings light.
func (r *VersionRepository) ListVersions(ctx context.Context, name string) ([]PromptVersion, error) {
	var versions []PromptVersion
	err := r.db.NewSelect().Model(&versions).
		Column("id", "name", "version", "syntax", "variables", "token_count", "created_at").
		Where("name = ?", name).
		OrderExpr("version ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return versions, nil
}

// ListNames returns the distinct template names in the store.
func (r *VersionRepository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.NewSelect().Model((*PromptVersion)(nil)).
		ColumnExpr("DISTINCT name").
		OrderExpr("name").
		Scan(ctx, &names)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// SearchSimilar returns the stored versions closest to the query
// embedding, nearest first. Versions saved without an embedding are
// excluded.
func (r *VersionRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]VersionSearchRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []VersionSearchRow
	err := r.db.NewSelect().Model(&results).
		Column("id", "name", "version", "syntax", "variables", "token_count", "created_at").
		ColumnExpr("embedding <=> ? AS distance", pgvector.NewVector(embedding)).
		Where("embedding IS NOT NULL").
		OrderExpr("distance").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return results, nil
}
