package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"MovieScanner/internal/domain"
	"MovieScanner/internal/ports"
)

// PostgresRepository persists normalized movie records into Postgres, one row
// per detail link.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.MovieRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// AlreadyScraped returns a map with the detail links that already exist in
// storage, so re-runs skip them.
func (r *PostgresRepository) AlreadyScraped(ctx context.Context, links []string) (map[string]bool, error) {
	if r.db == nil || len(links) == 0 {
		return map[string]bool{}, nil
	}

	query, args, err := r.builder.
		Select("detail_link").
		From("movies").
		Where(sq.Expr("detail_link = ANY(?)", pq.StringArray(links))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scraped links: %w", err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var link string
		if err := rows.Scan(&link); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		result[link] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

// SaveMovie upserts the normalized record. Missing numeric fields are stored
// as NULLs, matching their typed-missing semantics in the table.
func (r *PostgresRepository) SaveMovie(ctx context.Context, record domain.MovieRecord) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("movies").
		Columns("detail_link", "title", "year", "metascore", "runtime_minutes", "distributor", "director", "country").
		Values(
			record.DetailLink,
			record.Title,
			nullInt(record.Year),
			nullFloat(record.Metascore),
			nullFloat(record.RuntimeMinutes),
			record.Distributor,
			record.Director,
			record.Country,
		).
		Suffix(`ON CONFLICT (detail_link) DO UPDATE
            SET title = EXCLUDED.title,
                year = EXCLUDED.year,
                metascore = EXCLUDED.metascore,
                runtime_minutes = EXCLUDED.runtime_minutes,
                distributor = EXCLUDED.distributor,
                director = EXCLUDED.director,
                country = EXCLUDED.country,
                updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert movie: %w", err)
	}

	return nil
}

func nullInt(v domain.OptInt) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v.Value), Valid: v.Valid}
}

func nullFloat(v domain.OptFloat) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v.Value, Valid: v.Valid}
}
