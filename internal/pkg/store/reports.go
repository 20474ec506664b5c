package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/crimewatch/backend/internal/domain"
)

var reportColumns = []string{"report_id", "reporter_id", "crime_type_id", "location_id", "description", "occurrence_time", "date_reported"}

// OrgReportOpts filters the organization report listing. TypeName
// matches the crime type name case-insensitively as a substring.
type OrgReportOpts struct {
	TypeName *string
	From     *time.Time
	To       *time.Time
}

const reportDetailsColumns = `r.report_id, r.reporter_id, r.crime_type_id, r.location_id, r.description, r.occurrence_time, r.date_reported,
ct.name as crime_type_name, l.area, rep.alias as reporter_alias`

func reportDetailsQuery() sq.SelectBuilder {
	return builder().Select(reportDetailsColumns).
		From("reports r").
		Join("crime_types ct on ct.crime_type_id = r.crime_type_id").
		Join("locations l on l.location_id = r.location_id").
		Join("reporters rep on rep.reporter_id = r.reporter_id")
}

func (s *store) GetReport(ctx context.Context, reportID int64) (*domain.Report, error) {
	query := builder().Select(reportColumns...).
		From(tableReports).
		Where(sq.Eq{"report_id": reportID})

	var selected domain.Report
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) InsertReport(ctx context.Context, report *domain.Report) error {
	query := builder().Insert(tableReports).
		Columns("reporter_id", "crime_type_id", "location_id", "description", "occurrence_time").
		Values(report.ReporterID, report.CrimeTypeID, report.LocationID, report.Description, report.OccurrenceTime).
		Suffix("RETURNING report_id, date_reported")

	var inserted struct {
		ReportID     int64     `db:"report_id"`
		DateReported time.Time `db:"date_reported"`
	}
	if err := s.pool.Getx(ctx, &inserted, query); err != nil {
		return wrapErr(err)
	}

	report.ReportID = inserted.ReportID
	report.DateReported = inserted.DateReported
	return nil
}

func (s *store) DeleteReport(ctx context.Context, reportID int64) error {
	query := builder().Delete(tableReports).
		Where(sq.Eq{"report_id": reportID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) ListRecentReports(ctx context.Context, locationID int64, limit uint64) ([]*domain.ReportDetails, error) {
	query := reportDetailsQuery().
		Where(sq.Eq{"r.location_id": locationID}).
		OrderBy("r.date_reported desc").
		Limit(limit)

	var selected []*domain.ReportDetails
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListReportsSince(ctx context.Context, since time.Time) ([]*domain.ReportDetails, error) {
	query := reportDetailsQuery().
		Where(sq.GtOrEq{"r.date_reported": since}).
		OrderBy("r.report_id")

	var selected []*domain.ReportDetails
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListReportsByReporter(ctx context.Context, reporterID int64) ([]*domain.ReportDetails, error) {
	query := reportDetailsQuery().
		Where(sq.Eq{"r.reporter_id": reporterID}).
		OrderBy("r.date_reported desc")

	var selected []*domain.ReportDetails
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListReportsForOrg(ctx context.Context, opts OrgReportOpts) ([]*domain.ReportDetails, error) {
	query := reportDetailsQuery().
		OrderBy("r.date_reported desc")

	if opts.TypeName != nil {
		query = query.Where(sq.ILike{"ct.name": "%" + *opts.TypeName + "%"})
	}
	if opts.From != nil {
		query = query.Where(sq.GtOrEq{"r.occurrence_time": *opts.From})
	}
	if opts.To != nil {
		query = query.Where(sq.LtOrEq{"r.occurrence_time": *opts.To})
	}

	var selected []*domain.ReportDetails
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) InsertReportAddon(ctx context.Context, addon *domain.ReportAddon) error {
	query := builder().Insert(tableReportAddons).
		Columns("report_id", "file_path", "file_type", "file_size").
		Values(addon.ReportID, addon.FilePath, addon.FileType, addon.FileSize).
		Suffix("RETURNING addon_id, date_uploaded")

	var inserted struct {
		AddonID      int64     `db:"addon_id"`
		DateUploaded time.Time `db:"date_uploaded"`
	}
	if err := s.pool.Getx(ctx, &inserted, query); err != nil {
		return wrapErr(err)
	}

	addon.AddonID = inserted.AddonID
	addon.DateUploaded = inserted.DateUploaded
	return nil
}

func (s *store) ListReportAddons(ctx context.Context, reportID int64) ([]*domain.ReportAddon, error) {
	query := builder().Select("addon_id", "report_id", "file_path", "file_type", "file_size", "date_uploaded").
		From(tableReportAddons).
		Where(sq.Eq{"report_id": reportID}).
		OrderBy("addon_id")

	var selected []*domain.ReportAddon
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
