package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cep-distance-service/internal/adapters/geometry"
	"cep-distance-service/internal/adapters/lookup"
	"cep-distance-service/internal/adapters/repositories"
	"cep-distance-service/internal/domain"
)

func newTestService() (*QueryService, *lookup.MockAddressResolver, *lookup.MockGeocoder, *repositories.MemoryQueryRepository) {
	resolver := lookup.NewMockAddressResolver()
	geocoder := lookup.NewMockGeocoder()
	repo := repositories.NewMemoryQueryRepository()
	svc := NewQueryService(resolver, geocoder, geometry.LocalCalculator{}, repo, nil)
	return svc, resolver, geocoder, repo
}

func seedSaoPauloRio(resolver *lookup.MockAddressResolver, geocoder *lookup.MockGeocoder) {
	sp := domain.Address{Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", State: "SP"}
	rio := domain.Address{Street: "Rua Sete de Setembro", Neighborhood: "Centro", City: "Rio de Janeiro", State: "RJ"}

	resolver.Addresses["01001-000"] = sp
	resolver.Addresses["20040-020"] = rio
	geocoder.Coords[sp.FreeText()] = domain.Coordinates{Lat: -23.5505, Lon: -46.6333}
	geocoder.Coords[rio.FreeText()] = domain.Coordinates{Lat: -22.9068, Lon: -43.1729}
}

func TestComputeAndStoreSuccess(t *testing.T) {
	svc, resolver, geocoder, repo := newTestService()
	seedSaoPauloRio(resolver, geocoder)

	notes := "demo"
	rec, err := svc.ComputeAndStore(context.Background(), "01001-000", "20040-020", &notes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.ID == 0 {
		t.Error("expected assigned id")
	}
	if rec.OriginCEP != "01001-000" || rec.DestinationCEP != "20040-020" {
		t.Errorf("postal codes = %q, %q", rec.OriginCEP, rec.DestinationCEP)
	}
	if rec.OriginLat != -23.5505 || rec.DestinationLon != -43.1729 {
		t.Errorf("coordinates not taken from geocoder: %+v", rec)
	}
	// Known straight-line distance is roughly 360 km.
	if rec.DistanceKm < 350 || rec.DistanceKm > 370 {
		t.Errorf("distance = %v km, want roughly 360", rec.DistanceKm)
	}
	if rec.Notes == nil || *rec.Notes != "demo" {
		t.Errorf("notes = %v", rec.Notes)
	}
	if rec.CreatedAt.IsZero() || time.Since(rec.CreatedAt) > time.Minute {
		t.Errorf("created_at = %v", rec.CreatedAt)
	}
	if repo.Len() != 1 {
		t.Errorf("stored %d records, want 1", repo.Len())
	}

	stored, err := svc.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("get stored: %v", err)
	}
	if stored.DistanceKm != rec.DistanceKm {
		t.Errorf("stored distance %v != returned %v", stored.DistanceKm, rec.DistanceKm)
	}
}

func TestComputeAndStoreEmptyInput(t *testing.T) {
	svc, resolver, _, repo := newTestService()

	_, err := svc.ComputeAndStore(context.Background(), "  ", "20040-020", nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if resolver.CallCount() != 0 {
		t.Errorf("resolver called %d times before validation", resolver.CallCount())
	}
	if repo.Len() != 0 {
		t.Errorf("record persisted on invalid input")
	}
}

func TestComputeAndStoreUnknownPostalCode(t *testing.T) {
	svc, resolver, geocoder, _ := newTestService()
	seedSaoPauloRio(resolver, geocoder)

	_, err := svc.ComputeAndStore(context.Background(), "00000-000", "20040-020", nil)
	if !errors.Is(err, domain.ErrCEPNotFound) {
		t.Fatalf("error = %v, want ErrCEPNotFound", err)
	}

	all, err := svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("failed orchestration persisted %d records", len(all))
	}
}

func TestComputeAndStoreGeocoderUnavailable(t *testing.T) {
	svc, resolver, geocoder, repo := newTestService()
	seedSaoPauloRio(resolver, geocoder)

	sp := resolver.Addresses["01001-000"]
	geocoder.Errs[sp.FreeText()] = fmt.Errorf("geocode: %w", domain.ErrUpstreamUnavailable)

	_, err := svc.ComputeAndStore(context.Background(), "01001-000", "20040-020", nil)
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
	if repo.Len() != 0 {
		t.Errorf("record persisted despite geocoding failure")
	}
}

func TestComputeAndStorePersistenceFailure(t *testing.T) {
	svc, resolver, geocoder, repo := newTestService()
	seedSaoPauloRio(resolver, geocoder)
	repo.FailCreate = true

	_, err := svc.ComputeAndStore(context.Background(), "01001-000", "20040-020", nil)
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("error = %v, want ErrPersistence", err)
	}
	if repo.Len() != 0 {
		t.Errorf("record persisted despite repository failure")
	}
}

func TestStoredDistanceConsistentWithCoordinates(t *testing.T) {
	svc, resolver, geocoder, _ := newTestService()
	seedSaoPauloRio(resolver, geocoder)

	rec, err := svc.ComputeAndStore(context.Background(), "01001-000", "20040-020", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recomputed, err := geometry.LocalCalculator{}.DistanceKm(context.Background(), rec.Origin(), rec.Destination())
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if recomputed != rec.DistanceKm {
		t.Fatalf("stored %v km, recomputed %v km from stored coordinates", rec.DistanceKm, recomputed)
	}
}

func TestCRUDPassThroughs(t *testing.T) {
	svc, resolver, geocoder, _ := newTestService()
	seedSaoPauloRio(resolver, geocoder)
	ctx := context.Background()

	first, err := svc.ComputeAndStore(ctx, "01001-000", "20040-020", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	notes := "after the fact"
	updated, err := svc.UpdateNotes(ctx, first.ID, &notes)
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Errorf("notes = %v, want %q", updated.Notes, notes)
	}
	if updated.DistanceKm != first.DistanceKm {
		t.Errorf("update touched immutable field")
	}

	if _, err := svc.UpdateNotes(ctx, 404, &notes); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("update missing id = %v, want ErrRecordNotFound", err)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, first.ID); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("get after delete = %v, want ErrRecordNotFound", err)
	}
}
