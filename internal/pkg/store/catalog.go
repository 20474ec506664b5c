package store

import (
	"context"

	"github.com/crimewatch/backend/internal/domain"
)

var (
	crimeTypeColumns = []string{"crime_type_id", "name", "description", "date_added"}
	locationColumns  = []string{"location_id", "area", "sub_area", "latitude", "longitude", "description"}
)

// ListCrimeTypes returns the catalog in insertion order; summary and
// risk views are emitted in this order.
func (s *store) ListCrimeTypes(ctx context.Context) ([]*domain.CrimeType, error) {
	query := builder().Select(crimeTypeColumns...).
		From(tableCrimeTypes).
		OrderBy("crime_type_id")

	var selected []*domain.CrimeType
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	query := builder().Select(locationColumns...).
		From(tableLocations).
		OrderBy("location_id")

	var selected []*domain.Location
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
