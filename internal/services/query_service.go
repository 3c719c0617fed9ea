package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cep-distance-service/internal/domain"
	"cep-distance-service/internal/metrics"
	"cep-distance-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// QueryService orchestrates the distance-query pipeline and serves CRUD
// requests against the repository.
//
// ComputeAndStore has no partial-success state: either lookup, geocoding,
// distance computation and persistence all succeed and exactly one record
// is created, or nothing is written. Nothing external is mutated before the
// final persistence step, so no rollback is needed.
type QueryService struct {
	resolver   ports.AddressResolver
	geocoder   ports.Geocoder
	calculator ports.DistanceCalculator
	repo       ports.QueryRepository
	metrics    *metrics.MetricsRegistry
}

func NewQueryService(
	resolver ports.AddressResolver,
	geocoder ports.Geocoder,
	calculator ports.DistanceCalculator,
	repo ports.QueryRepository,
	reg *metrics.MetricsRegistry,
) *QueryService {
	return &QueryService{
		resolver:   resolver,
		geocoder:   geocoder,
		calculator: calculator,
		repo:       repo,
		metrics:    reg,
	}
}

// ComputeAndStore resolves both postal codes to coordinates, computes the
// distance between them, and persists the result as a new QueryRecord.
//
// The origin and destination halves of the pipeline are independent of each
// other and run concurrently; within each half, lookup strictly precedes
// geocoding. The first failure aborts the whole operation.
func (s *QueryService) ComputeAndStore(ctx context.Context, originCEP, destinationCEP string, notes *string) (domain.QueryRecord, error) {
	originCEP = strings.TrimSpace(originCEP)
	destinationCEP = strings.TrimSpace(destinationCEP)
	if originCEP == "" || destinationCEP == "" {
		return domain.QueryRecord{}, fmt.Errorf(
			"compute and store: %w: origin and destination postal codes are required",
			domain.ErrInvalidInput,
		)
	}

	var originCoords, destinationCoords domain.Coordinates

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.locate(gctx, originCEP)
		if err != nil {
			return fmt.Errorf("origin %q: %w", originCEP, err)
		}
		originCoords = c
		return nil
	})
	g.Go(func() error {
		c, err := s.locate(gctx, destinationCEP)
		if err != nil {
			return fmt.Errorf("destination %q: %w", destinationCEP, err)
		}
		destinationCoords = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.QueryRecord{}, fmt.Errorf("compute and store: %w", err)
	}

	km, err := s.calculator.DistanceKm(ctx, originCoords, destinationCoords)
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("compute and store: distance: %w", err)
	}

	rec := domain.QueryRecord{
		OriginCEP:      originCEP,
		DestinationCEP: destinationCEP,
		OriginLat:      originCoords.Lat,
		OriginLon:      originCoords.Lon,
		DestinationLat: destinationCoords.Lat,
		DestinationLon: destinationCoords.Lon,
		DistanceKm:     km,
		CreatedAt:      time.Now().UTC(),
		Notes:          notes,
	}

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		return domain.QueryRecord{}, fmt.Errorf("compute and store: %w", err)
	}

	if s.metrics != nil {
		s.metrics.QueriesCreatedTotal.Inc()
	}

	return stored, nil
}

// locate resolves one postal code to coordinates: address lookup, then
// geocoding of the assembled free-text address.
func (s *QueryService) locate(ctx context.Context, cep string) (domain.Coordinates, error) {
	addr, err := s.resolver.ResolveAddress(ctx, cep)
	if err != nil {
		return domain.Coordinates{}, err
	}

	coords, err := s.geocoder.Geocode(ctx, addr.FreeText())
	if err != nil {
		return domain.Coordinates{}, err
	}

	return coords, nil
}

// Get returns one stored record by id.
func (s *QueryService) Get(ctx context.Context, id int64) (domain.QueryRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns stored records in creation order.
func (s *QueryService) List(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateNotes replaces the notes of a stored record; all other fields are
// immutable after creation.
func (s *QueryService) UpdateNotes(ctx context.Context, id int64, notes *string) (domain.QueryRecord, error) {
	return s.repo.UpdateNotes(ctx, id, notes)
}

// Delete removes a stored record, irreversibly.
func (s *QueryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
