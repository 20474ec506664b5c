package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/pkg/store"
	"github.com/crimewatch/backend/internal/service/analytics"
)

type fakeAnalyticsStore struct {
	recent []*domain.ReportDetails
}

func (f *fakeAnalyticsStore) ListCrimeTypes(context.Context) ([]*domain.CrimeType, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) ListLocations(context.Context) ([]*domain.Location, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) CountReportsByCrimeType(context.Context, store.ReportCountOpts) (map[int64]int, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) CountReportsByLocation(context.Context, time.Time) (map[int64]int, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) ListRecentReports(context.Context, int64, uint64) ([]*domain.ReportDetails, error) {
	return f.recent, nil
}

func (f *fakeAnalyticsStore) ListReportsSince(context.Context, time.Time) ([]*domain.ReportDetails, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) HeatmapCounts(context.Context, time.Time) ([]*domain.HeatmapRow, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) CrimeCountsSince(context.Context, time.Time) ([]*domain.CrimeTypeCount, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) TrendCounts(context.Context, time.Time) ([]*domain.TrendRow, error) {
	return nil, nil
}

func newRecentContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetRecentReportsFullDescriptions(t *testing.T) {
	long := strings.Repeat("x", 120)
	f := &fakeAnalyticsStore{recent: []*domain.ReportDetails{{
		Report:        domain.Report{Description: long, DateReported: time.Now().UTC().Add(-time.Hour)},
		CrimeTypeName: "Theft",
	}}}
	c := &Controller{analyticsService: analytics.NewService(f)}

	ctx, rec := newRecentContext(t, "/analytics/recent?location_id=1")
	require.NoError(t, c.GetRecentReports(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var views []domain.RecentReportView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, long, views[0].Description)
	assert.False(t, strings.HasSuffix(views[0].Description, "..."))
}

func TestGetRecentReportsRequiresLocationID(t *testing.T) {
	c := &Controller{analyticsService: analytics.NewService(&fakeAnalyticsStore{})}

	ctx, _ := newRecentContext(t, "/analytics/recent")
	err := c.GetRecentReports(ctx)
	require.Error(t, err)

	var coded *constants.CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, http.StatusBadRequest, coded.Code())
}
