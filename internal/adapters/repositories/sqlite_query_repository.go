package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cep-distance-service/internal/domain"
)

const queryColumns = `
	id,
	origin_cep,
	destination_cep,
	origin_lat,
	origin_lon,
	destination_lat,
	destination_lon,
	distance_km,
	created_at,
	notes`

// SQLite-backed implementation of the QueryRepository port.
type SqliteQueryRepository struct{ DB *sql.DB }

func NewSqliteQueryRepository(db *sql.DB) *SqliteQueryRepository {
	return &SqliteQueryRepository{DB: db}
}

// Insert a record and return it with the assigned id.
func (s *SqliteQueryRepository) Create(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error) {
	if s.DB == nil {
		return domain.QueryRecord{}, errors.New("sqlite query repository: DB is nil")
	}

	query := `
	INSERT INTO queries (
		origin_cep, destination_cep,
		origin_lat, origin_lon,
		destination_lat, destination_lon,
		distance_km, created_at, notes
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	res, err := s.DB.ExecContext(ctx, query,
		rec.OriginCEP, rec.DestinationCEP,
		rec.OriginLat, rec.OriginLon,
		rec.DestinationLat, rec.DestinationLon,
		rec.DistanceKm, rec.CreatedAt.UTC().Format(time.RFC3339), notesValue(rec.Notes),
	)
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("create query record: insert: %w: %w", domain.ErrPersistence, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("create query record: last insert id: %w: %w", domain.ErrPersistence, err)
	}

	rec.ID = id
	return rec, nil
}

// Retrieve one record by id.
func (s *SqliteQueryRepository) GetByID(ctx context.Context, id int64) (domain.QueryRecord, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT`+queryColumns+` FROM queries WHERE id = ?;`, id)

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
func (s *SqliteQueryRepository) List(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT` + queryColumns + `
	FROM queries
	ORDER BY id
	LIMIT ? OFFSET ?;
	`

	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
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

// Replace the notes of an existing record. Every other field stays as
// created; the statement touches only the notes column.
func (s *SqliteQueryRepository) UpdateNotes(ctx context.Context, id int64, notes *string) (domain.QueryRecord, error) {
	res, err := s.DB.ExecContext(ctx, `UPDATE queries SET notes = ? WHERE id = ?;`, notesValue(notes), id)
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

	return s.GetByID(ctx, id)
}

// Remove a record by id.
func (s *SqliteQueryRepository) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM queries WHERE id = ?;`, id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQueryRow(row rowScanner) (domain.QueryRecord, error) {
	var (
		rec       domain.QueryRecord
		createdAt string
		notes     sql.NullString
	)

	err := row.Scan(
		&rec.ID,
		&rec.OriginCEP,
		&rec.DestinationCEP,
		&rec.OriginLat,
		&rec.OriginLon,
		&rec.DestinationLat,
		&rec.DestinationLon,
		&rec.DistanceKm,
		&createdAt,
		&notes,
	)
	if err != nil {
		return domain.QueryRecord{}, err
	}

	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = ts

	if notes.Valid {
		n := notes.String
		rec.Notes = &n
	}

	return rec, nil
}

func notesValue(notes *string) any {
	if notes == nil {
		return nil
	}
	return *notes
}
