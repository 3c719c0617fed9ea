package ports

import (
	"context"
	"cep-distance-service/internal/domain"
)

// Port: durable storage of QueryRecord keyed by id.
//
// Create assigns the id; ids are never reused after deletion. Only the
// Notes field is mutable post-creation. Read and write failures surface as
// domain.ErrPersistence; unknown ids as domain.ErrRecordNotFound.
type QueryRepository interface {
	// Insert a record and return it with the assigned id.
	Create(ctx context.Context, rec domain.QueryRecord) (domain.QueryRecord, error)

	// Retrieve one record by id.
	GetByID(ctx context.Context, id int64) (domain.QueryRecord, error)

	// Return records in creation order (id ascending). A limit <= 0 means
	// no limit; offset skips that many records.
	List(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error)

	// Replace the notes of an existing record and return the updated record.
	UpdateNotes(ctx context.Context, id int64, notes *string) (domain.QueryRecord, error)

	// Remove a record by id, irreversibly.
	Delete(ctx context.Context, id int64) error
}
