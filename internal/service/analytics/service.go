package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/store"
)

// Store is the read surface the engine needs. The engine never writes.
type Store interface {
	ListCrimeTypes(ctx context.Context) ([]*domain.CrimeType, error)
	ListLocations(ctx context.Context) ([]*domain.Location, error)
	CountReportsByCrimeType(ctx context.Context, opts store.ReportCountOpts) (map[int64]int, error)
	CountReportsByLocation(ctx context.Context, since time.Time) (map[int64]int, error)
	ListRecentReports(ctx context.Context, locationID int64, limit uint64) ([]*domain.ReportDetails, error)
	ListReportsSince(ctx context.Context, since time.Time) ([]*domain.ReportDetails, error)
	HeatmapCounts(ctx context.Context, since time.Time) ([]*domain.HeatmapRow, error)
	CrimeCountsSince(ctx context.Context, since time.Time) ([]*domain.CrimeTypeCount, error)
	TrendCounts(ctx context.Context, since time.Time) ([]*domain.TrendRow, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

const DefaultRecentLimit = 10

// Summary counts windowed reports per crime type at one location, in
// catalog order, dropping zero-count types. An unmatched location
// yields an empty slice, not an error.
func (s *Service) Summary(ctx context.Context, locationID int64, crimeTypeID *int64, window string) ([]domain.SummaryEntry, error) {
	since := s.now().UTC().AddDate(0, 0, -resolveWindowDays(window))

	crimeTypes, err := s.store.ListCrimeTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListCrimeTypes: %w", err)
	}

	counts, err := s.store.CountReportsByCrimeType(ctx, store.ReportCountOpts{
		LocationID:  &locationID,
		CrimeTypeID: crimeTypeID,
		Since:       &since,
	})
	if err != nil {
		return nil, fmt.Errorf("store.CountReportsByCrimeType: %w", err)
	}

	summaries := make([]domain.SummaryEntry, 0, len(crimeTypes))
	for _, ct := range crimeTypes {
		if crimeTypeID != nil && *crimeTypeID != ct.CrimeTypeID {
			continue
		}
		if count := counts[ct.CrimeTypeID]; count > 0 {
			summaries = append(summaries, domain.SummaryEntry{CrimeType: ct.Name, Count: count})
		}
	}

	return summaries, nil
}

// RiskLevels classifies each crime type with reports at the location
// under the summary policy. A nil since means all-time counts.
func (s *Service) RiskLevels(ctx context.Context, locationID int64, since *time.Time) ([]domain.RiskEntry, error) {
	crimeTypes, err := s.store.ListCrimeTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListCrimeTypes: %w", err)
	}

	counts, err := s.store.CountReportsByCrimeType(ctx, store.ReportCountOpts{
		LocationID: &locationID,
		Since:      since,
	})
	if err != nil {
		return nil, fmt.Errorf("store.CountReportsByCrimeType: %w", err)
	}

	levels := make([]domain.RiskEntry, 0, len(crimeTypes))
	for _, ct := range crimeTypes {
		if count := counts[ct.CrimeTypeID]; count > 0 {
			levels = append(levels, domain.RiskEntry{
				CrimeType: ct.Name,
				Level:     SummaryRiskPolicy.Classify(count),
			})
		}
	}

	return levels, nil
}

// RecentReports returns the newest reports at a location with full
// descriptions and a relative-time label.
func (s *Service) RecentReports(ctx context.Context, locationID int64, limit uint64) ([]domain.RecentReportView, error) {
	return s.recentReports(ctx, locationID, limit, false)
}

// RecentReportsBrief is the listing variant with descriptions clipped
// to 80 characters plus an ellipsis marker.
func (s *Service) RecentReportsBrief(ctx context.Context, locationID int64, limit uint64) ([]domain.RecentReportView, error) {
	return s.recentReports(ctx, locationID, limit, true)
}

func (s *Service) recentReports(ctx context.Context, locationID int64, limit uint64, clip bool) ([]domain.RecentReportView, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}

	reports, err := s.store.ListRecentReports(ctx, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("store.ListRecentReports: %w", err)
	}

	now := s.now().UTC()
	views := make([]domain.RecentReportView, 0, len(reports))
	for _, r := range reports {
		description := r.Description
		if clip {
			description = domain.ClipDescription(description)
		}
		views = append(views, domain.RecentReportView{
			CrimeType:   r.CrimeTypeName,
			Description: description,
			TimeAgo:     timeAgo(now, r.DateReported),
		})
	}

	return views, nil
}

// Bundle assembles the location dashboard in one round: all-time risk
// levels, windowed summary counts, and the ten newest reports. The
// three reads run concurrently; they need not observe one snapshot.
func (s *Service) Bundle(ctx context.Context, locationID int64, crimeTypeID *int64, window string) (*domain.AnalyticsBundle, error) {
	bundle := new(domain.AnalyticsBundle)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		bundle.RiskLevels, err = s.RiskLevels(egCtx, locationID, nil)
		return err
	})
	eg.Go(func() error {
		var err error
		bundle.ReportCounts, err = s.Summary(egCtx, locationID, crimeTypeID, window)
		return err
	})
	eg.Go(func() error {
		var err error
		bundle.RecentReports, err = s.RecentReports(egCtx, locationID, DefaultRecentLimit)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return bundle, nil
}

// OrgAnalytics builds the city-wide organization dashboard: heatmap
// buckets, crime counts, per-area counts and the daily trend, all
// scoped to one shared cutoff.
func (s *Service) OrgAnalytics(ctx context.Context, days int) (*domain.OrgAnalytics, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	var (
		heatRows    []*domain.HeatmapRow
		crimeCounts []*domain.CrimeTypeCount
		reports     []*domain.ReportDetails
		trendRows   []*domain.TrendRow
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		heatRows, err = s.store.HeatmapCounts(egCtx, since)
		return err
	})
	eg.Go(func() error {
		var err error
		crimeCounts, err = s.store.CrimeCountsSince(egCtx, since)
		return err
	})
	eg.Go(func() error {
		var err error
		reports, err = s.store.ListReportsSince(egCtx, since)
		return err
	})
	eg.Go(func() error {
		var err error
		trendRows, err = s.store.TrendCounts(egCtx, since)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &domain.OrgAnalytics{
		Heatmap:        shapeHeatmap(heatRows),
		CrimeCounts:    make([]domain.SummaryEntry, 0, len(crimeCounts)),
		Trend:          make([]domain.TrendPoint, 0, len(trendRows)),
		LocationCounts: locationCounts(reports),
	}

	for _, c := range crimeCounts {
		if c.Count > 0 {
			out.CrimeCounts = append(out.CrimeCounts, domain.SummaryEntry{CrimeType: c.CrimeType, Count: c.Count})
		}
	}

	for _, t := range trendRows {
		out.Trend = append(out.Trend, domain.TrendPoint{Date: t.Day.Format("2006-01-02"), Count: t.Count})
	}

	return out, nil
}

// Regions lists every location with its windowed report count and a
// region-policy level. Zero-count locations stay in, classified Low.
func (s *Service) Regions(ctx context.Context, days int) ([]domain.RegionEntry, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}
	since := s.now().UTC().AddDate(0, 0, -days)

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListLocations: %w", err)
	}

	counts, err := s.store.CountReportsByLocation(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("store.CountReportsByLocation: %w", err)
	}

	entries := make([]domain.RegionEntry, 0, len(locations))
	for _, loc := range locations {
		count := counts[loc.LocationID]
		entries = append(entries, domain.RegionEntry{
			LocationID: loc.LocationID,
			Area:       loc.Area,
			Count:      count,
			Level:      RegionRiskPolicy.Classify(count),
		})
	}

	return entries, nil
}

// shapeHeatmap parses bucket coordinates, dropping buckets whose
// stored strings are not numeric. Partial output beats a failed
// request here.
func shapeHeatmap(rows []*domain.HeatmapRow) []domain.HeatmapPoint {
	points := make([]domain.HeatmapPoint, 0, len(rows))
	for _, row := range rows {
		lat, err := decimal.NewFromString(strings.TrimSpace(row.Latitude))
		if err != nil {
			continue
		}
		lng, err := decimal.NewFromString(strings.TrimSpace(row.Longitude))
		if err != nil {
			continue
		}
		if row.Count == 0 {
			continue
		}
		points = append(points, domain.HeatmapPoint{
			Area:      row.Area,
			Latitude:  lat.InexactFloat64(),
			Longitude: lng.InexactFloat64(),
			Count:     row.Count,
		})
	}

	return points
}

// locationCounts groups reports by area name in first-seen order.
func locationCounts(reports []*domain.ReportDetails) []domain.LocationCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range reports {
		if _, seen := counts[r.Area]; !seen {
			order = append(order, r.Area)
		}
		counts[r.Area]++
	}

	out := make([]domain.LocationCount, 0, len(order))
	for _, area := range order {
		if counts[area] > 0 {
			out = append(out, domain.LocationCount{Location: area, Count: counts[area]})
		}
	}

	return out
}

// timeAgo renders the age of a report: whole hours under a day, whole
// days after. Hours are truncated, not rounded.
func timeAgo(now, reported time.Time) string {
	hours := int64(now.Sub(reported).Seconds()) / 3600
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}
