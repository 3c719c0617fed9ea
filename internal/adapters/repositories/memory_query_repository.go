package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cep-distance-service/internal/domain"
)

// In-memory implementation of the QueryRepository port. Used by tests; ids
// are monotonic and never reused, matching the durable variants.
type MemoryQueryRepository struct {
	mu      sync.Mutex
	records map[int64]domain.QueryRecord
	nextID  int64

	// FailCreate forces Create to fail for persistence-error scenarios.
	FailCreate bool
}

func NewMemoryQueryRepository() *MemoryQueryRepository {
	return &MemoryQueryRepository{
		records: make(map[int64]domain.QueryRecord),
		nextID:  1,
	}
}

func (m *MemoryQueryRepository) Create(_ context.Context, rec domain.QueryRecord) (domain.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreate {
		return domain.QueryRecord{}, fmt.Errorf("create query record: %w", domain.ErrPersistence)
	}

	rec.ID = m.nextID
	m.nextID++
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *MemoryQueryRepository) GetByID(_ context.Context, id int64) (domain.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return domain.QueryRecord{}, fmt.Errorf("get query record id=%d: %w", id, domain.ErrRecordNotFound)
	}
	return rec, nil
}

func (m *MemoryQueryRepository) List(_ context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]domain.QueryRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	if offset > len(records) {
		offset = len(records)
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	return records, nil
}

func (m *MemoryQueryRepository) UpdateNotes(_ context.Context, id int64, notes *string) (domain.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return domain.QueryRecord{}, fmt.Errorf("update notes id=%d: %w", id, domain.ErrRecordNotFound)
	}

	rec.Notes = notes
	m.records[id] = rec
	return rec, nil
}

func (m *MemoryQueryRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return fmt.Errorf("delete query record id=%d: %w", id, domain.ErrRecordNotFound)
	}
	delete(m.records, id)
	return nil
}

// Len reports the number of stored records.
func (m *MemoryQueryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
