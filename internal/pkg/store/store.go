package store

import (
	"context"
	"time"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	// Catalogs.
	ListCrimeTypes(ctx context.Context) ([]*domain.CrimeType, error)
	ListLocations(ctx context.Context) ([]*domain.Location, error)

	// Report reads for the analytics engine.
	CountReportsByCrimeType(ctx context.Context, opts ReportCountOpts) (map[int64]int, error)
	CountReportsByLocation(ctx context.Context, since time.Time) (map[int64]int, error)
	ListRecentReports(ctx context.Context, locationID int64, limit uint64) ([]*domain.ReportDetails, error)
	ListReportsSince(ctx context.Context, since time.Time) ([]*domain.ReportDetails, error)
	HeatmapCounts(ctx context.Context, since time.Time) ([]*domain.HeatmapRow, error)
	CrimeCountsSince(ctx context.Context, since time.Time) ([]*domain.CrimeTypeCount, error)
	TrendCounts(ctx context.Context, since time.Time) ([]*domain.TrendRow, error)

	// Report CRUD.
	GetReport(ctx context.Context, reportID int64) (*domain.Report, error)
	InsertReport(ctx context.Context, report *domain.Report) error
	DeleteReport(ctx context.Context, reportID int64) error
	ListReportsByReporter(ctx context.Context, reporterID int64) ([]*domain.ReportDetails, error)
	ListReportsForOrg(ctx context.Context, opts OrgReportOpts) ([]*domain.ReportDetails, error)
	InsertReportAddon(ctx context.Context, addon *domain.ReportAddon) error
	ListReportAddons(ctx context.Context, reportID int64) ([]*domain.ReportAddon, error)

	// Reporters.
	CreateReporter(ctx context.Context, reporter *domain.Reporter) error
	GetReporterByID(ctx context.Context, reporterID int64) (*domain.Reporter, error)
	GetReporterByAlias(ctx context.Context, alias string) (*domain.Reporter, error)
	GetReporterByEmail(ctx context.Context, email string) (*domain.Reporter, error)
	UpdateReporter(ctx context.Context, reporter *domain.Reporter) error
	DeleteReporter(ctx context.Context, reporterID int64) error
	ListReporters(ctx context.Context) ([]*domain.ReporterOverview, error)
	TouchReporterLogin(ctx context.Context, reporterID int64, at time.Time) error

	// Organizations.
	CreateOrg(ctx context.Context, org *domain.ExternalOrg) error
	GetOrgByID(ctx context.Context, orgID int64) (*domain.ExternalOrg, error)
	GetOrgByEmail(ctx context.Context, email string) (*domain.ExternalOrg, error)
	GetOrgByName(ctx context.Context, name string) (*domain.ExternalOrg, error)
	ListOrgs(ctx context.Context) ([]*domain.ExternalOrg, error)
	DeleteOrg(ctx context.Context, orgID int64) error
	TouchOrgLogin(ctx context.Context, orgID int64, at time.Time) error

	// Admins.
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	GetAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error)
	ListAdmins(ctx context.Context) ([]*domain.Admin, error)
	DeleteAdmin(ctx context.Context, adminID int64) error
	TouchAdminLogin(ctx context.Context, adminID int64, at time.Time) error

	// Sessions.
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
