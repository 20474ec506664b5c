package analytics

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/store"
)

type fakeStore struct {
	crimeTypes    []*domain.CrimeType
	locations     []*domain.Location
	countsByType  map[int64]int
	countsByLoc   map[int64]int
	recent        []*domain.ReportDetails
	reportsSince  []*domain.ReportDetails
	heatRows      []*domain.HeatmapRow
	crimeCounts   []*domain.CrimeTypeCount
	trendRows     []*domain.TrendRow

	// Bundle fans out over the store concurrently, so the recorded
	// opts need a lock.
	mu            sync.Mutex
	lastCountOpts store.ReportCountOpts
}

func (f *fakeStore) countOpts() store.ReportCountOpts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCountOpts
}

func (f *fakeStore) ListCrimeTypes(context.Context) ([]*domain.CrimeType, error) {
	return f.crimeTypes, nil
}

func (f *fakeStore) ListLocations(context.Context) ([]*domain.Location, error) {
	return f.locations, nil
}

func (f *fakeStore) CountReportsByCrimeType(_ context.Context, opts store.ReportCountOpts) (map[int64]int, error) {
	f.mu.Lock()
	f.lastCountOpts = opts
	f.mu.Unlock()
	return f.countsByType, nil
}

func (f *fakeStore) CountReportsByLocation(context.Context, time.Time) (map[int64]int, error) {
	return f.countsByLoc, nil
}

func (f *fakeStore) ListRecentReports(context.Context, int64, uint64) ([]*domain.ReportDetails, error) {
	return f.recent, nil
}

func (f *fakeStore) ListReportsSince(context.Context, time.Time) ([]*domain.ReportDetails, error) {
	return f.reportsSince, nil
}

func (f *fakeStore) HeatmapCounts(context.Context, time.Time) ([]*domain.HeatmapRow, error) {
	return f.heatRows, nil
}

func (f *fakeStore) CrimeCountsSince(context.Context, time.Time) ([]*domain.CrimeTypeCount, error) {
	return f.crimeCounts, nil
}

func (f *fakeStore) TrendCounts(context.Context, time.Time) ([]*domain.TrendRow, error) {
	return f.trendRows, nil
}

var testNow = time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

func newTestService(f *fakeStore) *Service {
	svc := NewService(f)
	svc.now = func() time.Time { return testNow }
	return svc
}

func catalogFixture() []*domain.CrimeType {
	return []*domain.CrimeType{
		{CrimeTypeID: 1, Name: "Theft"},
		{CrimeTypeID: 2, Name: "Assault"},
		{CrimeTypeID: 3, Name: "Burglary"},
	}
}

func TestSummary(t *testing.T) {
	f := &fakeStore{
		crimeTypes:   catalogFixture(),
		countsByType: map[int64]int{1: 6, 2: 2},
	}
	svc := newTestService(f)

	summaries, err := svc.Summary(context.Background(), 42, nil, "")
	require.NoError(t, err)

	assert.Equal(t, []domain.SummaryEntry{
		{CrimeType: "Theft", Count: 6},
		{CrimeType: "Assault", Count: 2},
	}, summaries)

	opts := f.countOpts()
	require.NotNil(t, opts.Since)
	assert.Equal(t, testNow.AddDate(0, 0, -DefaultWindowDays), *opts.Since)
	require.NotNil(t, opts.LocationID)
	assert.EqualValues(t, 42, *opts.LocationID)
}

func TestSummaryExplicitWindow(t *testing.T) {
	f := &fakeStore{crimeTypes: catalogFixture(), countsByType: map[int64]int{}}
	svc := newTestService(f)

	_, err := svc.Summary(context.Background(), 1, nil, "90 days")
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -90), *f.countOpts().Since)

	// Unrecognized windows fall back to the default instead of failing.
	_, err = svc.Summary(context.Background(), 1, nil, "6 months")
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -DefaultWindowDays), *f.countOpts().Since)
}

func TestSummaryCrimeTypeFilter(t *testing.T) {
	f := &fakeStore{
		crimeTypes:   catalogFixture(),
		countsByType: map[int64]int{1: 6, 2: 2},
	}
	svc := newTestService(f)

	assaultID := int64(2)
	summaries, err := svc.Summary(context.Background(), 42, &assaultID, "")
	require.NoError(t, err)

	assert.Equal(t, []domain.SummaryEntry{{CrimeType: "Assault", Count: 2}}, summaries)
}

func TestSummaryEmptyLocation(t *testing.T) {
	f := &fakeStore{crimeTypes: catalogFixture(), countsByType: map[int64]int{}}
	svc := newTestService(f)

	summaries, err := svc.Summary(context.Background(), 999, nil, "")
	require.NoError(t, err)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestRiskLevels(t *testing.T) {
	f := &fakeStore{
		crimeTypes:   catalogFixture(),
		countsByType: map[int64]int{1: 16, 2: 5},
	}
	svc := newTestService(f)

	levels, err := svc.RiskLevels(context.Background(), 42, nil)
	require.NoError(t, err)

	assert.Equal(t, []domain.RiskEntry{
		{CrimeType: "Theft", Level: LevelHigh},
		{CrimeType: "Assault", Level: LevelMedium},
	}, levels)

	// No window was asked for, so the counts must be all-time.
	assert.Nil(t, f.countOpts().Since)
}

func TestRecentReports(t *testing.T) {
	longDescription := strings.Repeat("x", 120)
	f := &fakeStore{recent: []*domain.ReportDetails{
		{
			Report:        domain.Report{Description: longDescription, DateReported: testNow.Add(-2 * time.Hour)},
			CrimeTypeName: "Theft",
		},
		{
			Report:        domain.Report{Description: "short", DateReported: testNow.Add(-50 * time.Hour)},
			CrimeTypeName: "Assault",
		},
	}}
	svc := newTestService(f)

	views, err := svc.RecentReports(context.Background(), 42, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Theft", views[0].CrimeType)
	assert.Equal(t, longDescription, views[0].Description)
	assert.Equal(t, "2h ago", views[0].TimeAgo)
	assert.Equal(t, "2d ago", views[1].TimeAgo)

	brief, err := svc.RecentReportsBrief(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 80)+"...", brief[0].Description)
	assert.Equal(t, "short...", brief[1].Description)
}

func TestBundle(t *testing.T) {
	f := &fakeStore{
		crimeTypes:   catalogFixture(),
		countsByType: map[int64]int{1: 6},
		recent: []*domain.ReportDetails{{
			Report:        domain.Report{Description: "d", DateReported: testNow.Add(-time.Hour)},
			CrimeTypeName: "Theft",
		}},
	}
	svc := newTestService(f)

	bundle, err := svc.Bundle(context.Background(), 42, nil, "")
	require.NoError(t, err)

	assert.Equal(t, []domain.RiskEntry{{CrimeType: "Theft", Level: LevelMedium}}, bundle.RiskLevels)
	assert.Equal(t, []domain.SummaryEntry{{CrimeType: "Theft", Count: 6}}, bundle.ReportCounts)
	require.Len(t, bundle.RecentReports, 1)
	assert.Equal(t, "1h ago", bundle.RecentReports[0].TimeAgo)
}

func TestOrgAnalytics(t *testing.T) {
	f := &fakeStore{
		heatRows: []*domain.HeatmapRow{
			{Area: "Westlands", Latitude: "-1.2635", Longitude: "36.8105", Count: 4},
			{Area: "Gikambura", Latitude: "", Longitude: "", Count: 2},
			{Area: "Kilimani", Latitude: "-1.2906", Longitude: "not-a-number", Count: 3},
		},
		crimeCounts: []*domain.CrimeTypeCount{
			{CrimeType: "Assault", Count: 2},
			{CrimeType: "Theft", Count: 0},
		},
		trendRows: []*domain.TrendRow{
			{Day: time.Date(2024, time.May, 8, 0, 0, 0, 0, time.UTC), Count: 1},
			{Day: time.Date(2024, time.May, 9, 0, 0, 0, 0, time.UTC), Count: 3},
		},
		reportsSince: []*domain.ReportDetails{
			{Area: "Westlands"},
			{Area: "Kilimani"},
			{Area: "Westlands"},
		},
	}
	svc := newTestService(f)

	out, err := svc.OrgAnalytics(context.Background(), 0)
	require.NoError(t, err)

	// Buckets with unparsable coordinates are dropped, not fatal.
	require.Len(t, out.Heatmap, 1)
	assert.Equal(t, "Westlands", out.Heatmap[0].Area)
	assert.InDelta(t, -1.2635, out.Heatmap[0].Latitude, 1e-9)
	assert.InDelta(t, 36.8105, out.Heatmap[0].Longitude, 1e-9)

	assert.Equal(t, []domain.SummaryEntry{{CrimeType: "Assault", Count: 2}}, out.CrimeCounts)

	assert.Equal(t, []domain.TrendPoint{
		{Date: "2024-05-08", Count: 1},
		{Date: "2024-05-09", Count: 3},
	}, out.Trend)

	assert.Equal(t, []domain.LocationCount{
		{Location: "Westlands", Count: 2},
		{Location: "Kilimani", Count: 1},
	}, out.LocationCounts)
}

func TestRegions(t *testing.T) {
	f := &fakeStore{
		locations: []*domain.Location{
			{LocationID: 1, Area: "Westlands"},
			{LocationID: 2, Area: "Kilimani"},
			{LocationID: 3, Area: "Karen"},
		},
		countsByLoc: map[int64]int{1: 25, 2: 7},
	}
	svc := newTestService(f)

	regions, err := svc.Regions(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.RegionEntry{
		{LocationID: 1, Area: "Westlands", Count: 25, Level: LevelHigh},
		{LocationID: 2, Area: "Kilimani", Count: 7, Level: LevelMedium},
		{LocationID: 3, Area: "Karen", Count: 0, Level: LevelLow},
	}, regions)
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "0h ago", timeAgo(testNow, testNow.Add(-30*time.Minute)))
	assert.Equal(t, "23h ago", timeAgo(testNow, testNow.Add(-23*time.Hour-59*time.Minute)))
	assert.Equal(t, "1d ago", timeAgo(testNow, testNow.Add(-24*time.Hour)))
	assert.Equal(t, "3d ago", timeAgo(testNow, testNow.Add(-80*time.Hour)))
}
