package reports

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/pkg/logger"
	"github.com/crimewatch/backend/internal/pkg/store"
)

// occurrenceTimeLayout is the wire format for occurrence timestamps.
const occurrenceTimeLayout = "02/01/2006 15:04"

// orgDateLayout formats report dates for the organization listing.
const orgDateLayout = "02 Jan 2006 15:04"

const filterDateLayout = "2006-01-02"

type Store interface {
	GetReporterByID(ctx context.Context, reporterID int64) (*domain.Reporter, error)
	GetReport(ctx context.Context, reportID int64) (*domain.Report, error)
	InsertReport(ctx context.Context, report *domain.Report) error
	DeleteReport(ctx context.Context, reportID int64) error
	ListReportsByReporter(ctx context.Context, reporterID int64) ([]*domain.ReportDetails, error)
	ListReportsForOrg(ctx context.Context, opts store.OrgReportOpts) ([]*domain.ReportDetails, error)
	InsertReportAddon(ctx context.Context, addon *domain.ReportAddon) error
	ListReportAddons(ctx context.Context, reportID int64) ([]*domain.ReportAddon, error)
}

type Service struct {
	store     Store
	uploadDir string
}

func NewReportsService(store Store, uploadDir string) *Service {
	return &Service{store: store, uploadDir: uploadDir}
}

// CreateReport validates the reporter and occurrence timestamp, then
// persists the report. The report timestamp is server-assigned; the
// occurrence time is taken as given, backdated or not.
func (s *Service) CreateReport(ctx context.Context, req *domain.CreateReportRequest) (*domain.Report, error) {
	if _, err := s.store.GetReporterByID(ctx, req.ReporterID); err != nil {
		return nil, fmt.Errorf("store.GetReporterByID: %w", err)
	}

	occurrence, err := time.Parse(occurrenceTimeLayout, req.OccurrenceTime)
	if err != nil {
		return nil, constants.ErrBadOccurrenceTime
	}

	report := &domain.Report{
		ReporterID:     req.ReporterID,
		CrimeTypeID:    req.CrimeTypeID,
		LocationID:     req.LocationID,
		Description:    req.Description,
		OccurrenceTime: occurrence,
	}
	if err := s.store.InsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("store.InsertReport: %w", err)
	}

	return report, nil
}

// AddAddon stores an uploaded media file under a collision-proof name
// and records it against the report.
func (s *Service) AddAddon(ctx context.Context, reportID int64, filename, contentType string, src io.Reader) (*domain.ReportAddon, error) {
	if _, err := s.store.GetReport(ctx, reportID); err != nil {
		return nil, fmt.Errorf("store.GetReport: %w", err)
	}

	fileType := "other"
	switch {
	case strings.Contains(contentType, "image"):
		fileType = "image"
	case strings.Contains(contentType, "video"):
		fileType = "video"
	}

	name := fmt.Sprintf("%s_%s", strings.ReplaceAll(uuid.NewString(), "-", ""), filepath.Base(filename))
	dest := filepath.Join(s.uploadDir, name)

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("os.Create: %w", err)
	}
	size, err := io.Copy(out, src)
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	addon := &domain.ReportAddon{
		ReportID: reportID,
		FilePath: dest,
		FileType: fileType,
		FileSize: &size,
	}
	if err := s.store.InsertReportAddon(ctx, addon); err != nil {
		return nil, fmt.Errorf("store.InsertReportAddon: %w", err)
	}

	return addon, nil
}

func (s *Service) ListReporterReports(ctx context.Context, reporterID int64) ([]*domain.ReportDetails, error) {
	if _, err := s.store.GetReporterByID(ctx, reporterID); err != nil {
		return nil, fmt.Errorf("store.GetReporterByID: %w", err)
	}

	reports, err := s.store.ListReportsByReporter(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("store.ListReportsByReporter: %w", err)
	}

	return reports, nil
}

// DeleteReport removes the addon files from disk, then the row; addon
// rows go with it via cascade.
func (s *Service) DeleteReport(ctx context.Context, reportID int64) error {
	if _, err := s.store.GetReport(ctx, reportID); err != nil {
		return fmt.Errorf("store.GetReport: %w", err)
	}

	addons, err := s.store.ListReportAddons(ctx, reportID)
	if err != nil {
		return fmt.Errorf("store.ListReportAddons: %w", err)
	}
	for _, addon := range addons {
		if err := os.Remove(addon.FilePath); err != nil && !os.IsNotExist(err) {
			logger.Warnf(ctx, "remove addon file %s: %s", addon.FilePath, err.Error())
		}
	}

	if err := s.store.DeleteReport(ctx, reportID); err != nil {
		return fmt.Errorf("store.DeleteReport: %w", err)
	}

	return nil
}

func (s *Service) ListReportAddons(ctx context.Context, reportID int64) ([]*domain.ReportAddon, error) {
	if _, err := s.store.GetReport(ctx, reportID); err != nil {
		return nil, fmt.Errorf("store.GetReport: %w", err)
	}

	addons, err := s.store.ListReportAddons(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("store.ListReportAddons: %w", err)
	}

	return addons, nil
}

// OrgReports returns the filtered listing organizations browse, with
// descriptions clipped for the table view. Unparsable date filters
// are ignored rather than rejected.
func (s *Service) OrgReports(ctx context.Context, typeName, dateFrom, dateTo string) ([]domain.OrgReportView, error) {
	opts := store.OrgReportOpts{}
	if typeName != "" {
		opts.TypeName = &typeName
	}
	if dateFrom != "" {
		if from, err := time.Parse(filterDateLayout, dateFrom); err == nil {
			opts.From = &from
		}
	}
	if dateTo != "" {
		if to, err := time.Parse(filterDateLayout, dateTo); err == nil {
			opts.To = &to
		}
	}

	reports, err := s.store.ListReportsForOrg(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListReportsForOrg: %w", err)
	}

	views := make([]domain.OrgReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, domain.OrgReportView{
			ID:          r.ReportID,
			Type:        r.CrimeTypeName,
			Reporter:    r.ReporterAlias,
			Description: domain.ClipDescription(r.Description),
			Date:        r.DateReported.Format(orgDateLayout),
			Location:    r.Area,
		})
	}

	return views, nil
}
