package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/crimewatch/backend/internal/domain"
)

// ReportCountOpts scopes a grouped report count. Nil fields leave the
// corresponding filter off; a nil Since means all-time.
type ReportCountOpts struct {
	LocationID  *int64
	CrimeTypeID *int64
	Since       *time.Time
}

type crimeTypeIDCount struct {
	CrimeTypeID int64 `db:"crime_type_id"`
	Count       int   `db:"count"`
}

type locationIDCount struct {
	LocationID int64 `db:"location_id"`
	Count      int   `db:"count"`
}

func (s *store) CountReportsByCrimeType(ctx context.Context, opts ReportCountOpts) (map[int64]int, error) {
	query := builder().Select("crime_type_id", "count(report_id) as count").
		From(tableReports).
		GroupBy("crime_type_id")

	if opts.LocationID != nil {
		query = query.Where(sq.Eq{"location_id": *opts.LocationID})
	}
	if opts.CrimeTypeID != nil {
		query = query.Where(sq.Eq{"crime_type_id": *opts.CrimeTypeID})
	}
	if opts.Since != nil {
		query = query.Where(sq.GtOrEq{"date_reported": *opts.Since})
	}

	var rows []*crimeTypeIDCount
	if err := s.pool.Selectx(ctx, &rows, query); err != nil {
		return nil, wrapErr(err)
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.CrimeTypeID] = r.Count
	}

	return counts, nil
}

func (s *store) CountReportsByLocation(ctx context.Context, since time.Time) (map[int64]int, error) {
	query := builder().Select("location_id", "count(report_id) as count").
		From(tableReports).
		Where(sq.GtOrEq{"date_reported": since}).
		GroupBy("location_id")

	var rows []*locationIDCount
	if err := s.pool.Selectx(ctx, &rows, query); err != nil {
		return nil, wrapErr(err)
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.LocationID] = r.Count
	}

	return counts, nil
}

// HeatmapCounts groups windowed reports into coordinate buckets.
// Coordinates come back as the raw catalog strings; the engine decides
// which buckets parse.
func (s *store) HeatmapCounts(ctx context.Context, since time.Time) ([]*domain.HeatmapRow, error) {
	query := builder().Select(
		"l.area",
		"l.latitude",
		"l.longitude",
		"count(r.report_id) as count").
		From("reports r").
		Join("locations l on l.location_id = r.location_id").
		Where(sq.GtOrEq{"r.date_reported": since}).
		Where(sq.NotEq{"l.latitude": nil}).
		Where(sq.NotEq{"l.longitude": nil}).
		GroupBy("l.area", "l.latitude", "l.longitude").
		Having("count(r.report_id) > 0")

	var selected []*domain.HeatmapRow
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) CrimeCountsSince(ctx context.Context, since time.Time) ([]*domain.CrimeTypeCount, error) {
	query := builder().Select(
		"ct.name as crime_type",
		"count(r.report_id) as count").
		From("reports r").
		Join("crime_types ct on ct.crime_type_id = r.crime_type_id").
		Where(sq.GtOrEq{"r.date_reported": since}).
		GroupBy("ct.name").
		OrderBy("ct.name")

	var selected []*domain.CrimeTypeCount
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) TrendCounts(ctx context.Context, since time.Time) ([]*domain.TrendRow, error) {
	query := builder().Select(
		"date_reported::date as day",
		"count(report_id) as count").
		From(tableReports).
		Where(sq.GtOrEq{"date_reported": since}).
		GroupBy("date_reported::date").
		OrderBy("day")

	var selected []*domain.TrendRow
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
