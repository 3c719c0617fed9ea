package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cep-distance-service/internal/domain"
)

// PostgreSQL-backed implementation of the QueryRepository port.
// Selected at startup when DATABASE_URL is configured; behavior matches the
// SQLite variant.
type PostgresQueryRepository struct{ DB *sql.DB }

func NewPostgresQueryRepository(db *sql.DB) *PostgresQueryRepository {
	return &PostgresQueryRepository{DB: db}
}

// Insert a record and return it with the assigned id.
func (p *PostgresQueryRepository) Create(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error) {
	if p.DB == nil {
		return domain.QueryRecord{}, errors.New("postgres query repository: DB is nil")
	}

	query := `
	INSERT INTO queries (
		origin_cep, destination_cep,
		origin_lat, origin_lon,
		destination_lat, destination_lon,
		distance_km, created_at, notes
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id;
	`

	err := p.DB.QueryRowContext(ctx, query,
		rec.OriginCEP, rec.DestinationCEP,
		rec.OriginLat, rec.OriginLon,
		rec.DestinationLat, rec.DestinationLon,
		rec.DistanceKm, rec.CreatedAt.UTC().Format(time.RFC3339), notesValue(rec.Notes),
	).Scan(&rec.ID)
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("create query record: insert: %w: %w", domain.ErrPersistence, err)
	}

	return rec, nil
}

// Retrieve one record by id.
func (p *PostgresQueryRepository) GetByID(ctx context.Context, id int64) (domain.QueryRecord, error) {
	row := p.DB.QueryRowContext(ctx, `SELECT`+queryColumns+` FROM queries WHERE id = $1;`, id)

	rec, err := scanQueryRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.QueryRecord{}, fmt.Errorf("get query record id=%d: %w", id, domain.ErrRecordNotFound)
	}
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("get query record id=%d: %w: %w", id, domain.ErrPersistence, err)
	}

	return rec, nil
}

// Return records in creation order (id ascending).
func (p *PostgresQueryRepository) List(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	if offset < 0 {
		offset = 0
	}

	query := `SELECT` + queryColumns + `
	FROM queries
	ORDER BY id
	LIMIT $1 OFFSET $2;
	`

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := p.DB.QueryContext(ctx, query, limitArg, offset)
	if err != nil {
		return nil, fmt.Errorf("list query records: query: %w: %w", domain.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]domain.QueryRecord, 0, 16)
	for rows.Next() {
		rec, err := scanQueryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list query records: scan row: %w: %w", domain.ErrPersistence, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list query records: row iteration: %w: %w", domain.ErrPersistence, err)
	}

	return records, nil
}

// Replace the notes of an existing record.
func (p *PostgresQueryRepository) UpdateNotes(ctx context.Context, id int64, notes *string) (domain.QueryRecord, error) {
	res, err := p.DB.ExecContext(ctx, `UPDATE queries SET notes = $1 WHERE id = $2;`, notesValue(notes), id)
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("update notes id=%d: %w: %w", id, domain.ErrPersistence, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("update notes id=%d: rows affected: %w: %w", id, domain.ErrPersistence, err)
	}
	if affected == 0 {
		return domain.QueryRecord{}, fmt.Errorf("update notes id=%d: %w", id, domain.ErrRecordNotFound)
	}

	return p.GetByID(ctx, id)
}

// Remove a record by id.
func (p *PostgresQueryRepository) Delete(ctx context.Context, id int64) error {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM queries WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete query record id=%d: %w: %w", id, domain.ErrPersistence, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete query record id=%d: rows affected: %w: %w", id, domain.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete query record id=%d: %w", id, domain.ErrRecordNotFound)
	}

	return nil
}
