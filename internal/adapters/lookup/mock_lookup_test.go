package lookup

import (
	"context"
	"sync"
	"testing"

	"cep-distance-service/internal/domain"
)

// The orchestrator resolves origin and destination from concurrent
// goroutines, so the doubles must tolerate concurrent calls.
func TestMocksConcurrentCalls(t *testing.T) {
	resolver := NewMockAddressResolver()
	geocoder := NewMockGeocoder()

	addr := domain.Address{City: "São Paulo", State: "SP"}
	resolver.Addresses["01001-000"] = addr
	geocoder.Coords[addr.FreeText()] = domain.Coordinates{Lat: -23.5505, Lon: -46.6333}

	const goroutines = 8

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := resolver.ResolveAddress(context.Background(), "01001-000"); err != nil {
				t.Errorf("resolve: %v", err)
			}
			if _, err := geocoder.Geocode(context.Background(), addr.FreeText()); err != nil {
				t.Errorf("geocode: %v", err)
			}
		}()
	}
	wg.Wait()

	if resolver.CallCount() != goroutines {
		t.Errorf("resolver calls = %d, want %d", resolver.CallCount(), goroutines)
	}
	if geocoder.CallCount() != goroutines {
		t.Errorf("geocoder calls = %d, want %d", geocoder.CallCount(), goroutines)
	}
}
