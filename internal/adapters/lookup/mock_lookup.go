package lookup

import (
	"context"
	"fmt"
	"sync"

	"cep-distance-service/internal/domain"
)

// Test doubles for the lookup gateway ports. The orchestrator calls them
// from concurrent goroutines, so the call counters are mutex-guarded.

type MockAddressResolver struct {
	Addresses map[string]domain.Address
	Errs      map[string]error

	mu    sync.Mutex
	calls int
}

func NewMockAddressResolver() *MockAddressResolver {
	return &MockAddressResolver{
		Addresses: make(map[string]domain.Address),
		Errs:      make(map[string]error),
	}
}

func (m *MockAddressResolver) ResolveAddress(ctx context.Context, cep string) (domain.Address, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err, ok := m.Errs[cep]; ok {
		return domain.Address{}, err
	}
	addr, ok := m.Addresses[cep]
	if !ok {
		return domain.Address{}, fmt.Errorf("mock resolver: cep %q: %w", cep, domain.ErrCEPNotFound)
	}
	return addr, nil
}

// CallCount reports how many times ResolveAddress has been invoked.
func (m *MockAddressResolver) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Errs   map[string]error

	mu    sync.Mutex
	calls int
}

func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		Coords: make(map[string]domain.Coordinates),
		Errs:   make(map[string]error),
	}
}

func (m *MockGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err, ok := m.Errs[query]; ok {
		return domain.Coordinates{}, err
	}
	coords, ok := m.Coords[query]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocoder: query %q: %w", query, domain.ErrNoGeocodeMatch)
	}
	return coords, nil
}

// CallCount reports how many times Geocode has been invoked.
func (m *MockGeocoder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
