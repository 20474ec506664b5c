package store

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/crimewatch/backend/internal/domain"
)

var (
	reporterColumns = []string{"reporter_id", "alias", "f_name", "l_name", "email", "phone", "password", "date_joined", "last_login"}
	adminColumns    = []string{"admin_id", "password", "date_created", "last_login"}
	orgColumns      = []string{"org_id", "org_name", "contact_person", "contact_email", "contact_phone", "password", "date_added", "last_login"}
	sessionColumns  = []string{"session_id", "user_type", "user_id", "token", "expires_at", "created_at"}
)

func (s *store) CreateReporter(ctx context.Context, reporter *domain.Reporter) error {
	query := builder().Insert(tableReporters).
		Columns("alias", "f_name", "l_name", "email", "phone", "password").
		Values(reporter.Alias, reporter.FirstName, reporter.LastName, reporter.Email, reporter.Phone, reporter.PasswordHash).
		Suffix("RETURNING reporter_id, date_joined")

	var inserted struct {
		ReporterID int64     `db:"reporter_id"`
		DateJoined time.Time `db:"date_joined"`
	}
	if err := s.pool.Getx(ctx, &inserted, query); err != nil {
		return wrapErr(err)
	}

	reporter.ReporterID = inserted.ReporterID
	reporter.DateJoined = inserted.DateJoined
	return nil
}

func (s *store) getReporter(ctx context.Context, pred sq.Eq) (*domain.Reporter, error) {
	query := builder().Select(reporterColumns...).
		From(tableReporters).
		Where(pred)

	var selected domain.Reporter
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) GetReporterByID(ctx context.Context, reporterID int64) (*domain.Reporter, error) {
	return s.getReporter(ctx, sq.Eq{"reporter_id": reporterID})
}

func (s *store) GetReporterByAlias(ctx context.Context, alias string) (*domain.Reporter, error) {
	return s.getReporter(ctx, sq.Eq{"alias": alias})
}

func (s *store) GetReporterByEmail(ctx context.Context, email string) (*domain.Reporter, error) {
	return s.getReporter(ctx, sq.Eq{"email": email})
}

func (s *store) UpdateReporter(ctx context.Context, reporter *domain.Reporter) error {
	query := builder().Update(tableReporters).
		Set("alias", reporter.Alias).
		Set("f_name", reporter.FirstName).
		Set("l_name", reporter.LastName).
		Set("email", reporter.Email).
		Set("phone", reporter.Phone).
		Where(sq.Eq{"reporter_id": reporter.ReporterID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) DeleteReporter(ctx context.Context, reporterID int64) error {
	query := builder().Delete(tableReporters).
		Where(sq.Eq{"reporter_id": reporterID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) ListReporters(ctx context.Context) ([]*domain.ReporterOverview, error) {
	query := builder().Select(
		"rep.reporter_id",
		"rep.alias",
		"rep.email",
		"rep.phone",
		"count(r.report_id) as reports").
		From("reporters rep").
		LeftJoin("reports r on r.reporter_id = rep.reporter_id").
		GroupBy("rep.reporter_id", "rep.alias", "rep.email", "rep.phone").
		OrderBy("rep.reporter_id")

	var selected []*domain.ReporterOverview
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) TouchReporterLogin(ctx context.Context, reporterID int64, at time.Time) error {
	query := builder().Update(tableReporters).
		Set("last_login", at).
		Where(sq.Eq{"reporter_id": reporterID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) CreateOrg(ctx context.Context, org *domain.ExternalOrg) error {
	query := builder().Insert(tableExternalOrgs).
		Columns("org_name", "contact_person", "contact_email", "contact_phone", "password").
		Values(org.OrgName, org.ContactPerson, org.ContactEmail, org.ContactPhone, org.PasswordHash).
		Suffix("RETURNING org_id, date_added")

	var inserted struct {
		OrgID     int64     `db:"org_id"`
		DateAdded time.Time `db:"date_added"`
	}
	if err := s.pool.Getx(ctx, &inserted, query); err != nil {
		return wrapErr(err)
	}

	org.OrgID = inserted.OrgID
	org.DateAdded = inserted.DateAdded
	return nil
}

func (s *store) getOrg(ctx context.Context, pred sq.Eq) (*domain.ExternalOrg, error) {
	query := builder().Select(orgColumns...).
		From(tableExternalOrgs).
		Where(pred)

	var selected domain.ExternalOrg
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) GetOrgByID(ctx context.Context, orgID int64) (*domain.ExternalOrg, error) {
	return s.getOrg(ctx, sq.Eq{"org_id": orgID})
}

func (s *store) GetOrgByEmail(ctx context.Context, email string) (*domain.ExternalOrg, error) {
	return s.getOrg(ctx, sq.Eq{"contact_email": email})
}

func (s *store) GetOrgByName(ctx context.Context, name string) (*domain.ExternalOrg, error) {
	return s.getOrg(ctx, sq.Eq{"org_name": name})
}

func (s *store) ListOrgs(ctx context.Context) ([]*domain.ExternalOrg, error) {
	query := builder().Select(orgColumns...).
		From(tableExternalOrgs).
		OrderBy("org_id")

	var selected []*domain.ExternalOrg
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) DeleteOrg(ctx context.Context, orgID int64) error {
	query := builder().Delete(tableExternalOrgs).
		Where(sq.Eq{"org_id": orgID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) TouchOrgLogin(ctx context.Context, orgID int64, at time.Time) error {
	query := builder().Update(tableExternalOrgs).
		Set("last_login", at).
		Where(sq.Eq{"org_id": orgID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	query := builder().Insert(tableAdmins).
		Columns("password").
		Values(admin.PasswordHash).
		Suffix("RETURNING admin_id, date_created")

	var inserted struct {
		AdminID     int64     `db:"admin_id"`
		DateCreated time.Time `db:"date_created"`
	}
	if err := s.pool.Getx(ctx, &inserted, query); err != nil {
		return wrapErr(err)
	}

	admin.AdminID = inserted.AdminID
	admin.DateCreated = inserted.DateCreated
	return nil
}

func (s *store) GetAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error) {
	query := builder().Select(adminColumns...).
		From(tableAdmins).
		Where(sq.Eq{"admin_id": adminID})

	var selected domain.Admin
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListAdmins(ctx context.Context) ([]*domain.Admin, error) {
	query := builder().Select(adminColumns...).
		From(tableAdmins).
		OrderBy("admin_id")

	var selected []*domain.Admin
	if err := s.pool.Selectx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) DeleteAdmin(ctx context.Context, adminID int64) error {
	query := builder().Delete(tableAdmins).
		Where(sq.Eq{"admin_id": adminID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) TouchAdminLogin(ctx context.Context, adminID int64, at time.Time) error {
	query := builder().Update(tableAdmins).
		Set("last_login", at).
		Where(sq.Eq{"admin_id": adminID})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}

func (s *store) CreateSession(ctx context.Context, session *domain.Session) error {
	query := builder().Insert(tableSessions).
		Columns("user_type", "user_id", "token", "expires_at").
		Values(session.UserType, session.UserID, session.Token, session.ExpiresAt).
		Suffix("RETURNING session_id, created_at")

	var inserted struct {
		SessionID int64     `db:"session_id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := s.pool.Getx(ctx, &inserted, query); err != nil {
		return wrapErr(err)
	}

	session.SessionID = inserted.SessionID
	session.CreatedAt = inserted.CreatedAt
	return nil
}

// GetSessionByToken only returns sessions live at the given instant;
// expired rows behave as not found.
func (s *store) GetSessionByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	query := builder().Select(sessionColumns...).
		From(tableSessions).
		Where(sq.Eq{"token": token}).
		Where(sq.Gt{"expires_at": now})

	var selected domain.Session
	if err := s.pool.Getx(ctx, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) DeleteSession(ctx context.Context, token string) error {
	query := builder().Delete(tableSessions).
		Where(sq.Eq{"token": token})

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return wrapErr(err)
	}

	return nil
}
