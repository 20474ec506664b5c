package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
	"github.com/crimewatch/backend/internal/pkg/logger"
)

// SessionTTL is the server-side session lifetime; cookie max-age
// mirrors it.
const SessionTTL = 24 * time.Hour

const sessionTokenLength = 48

type Store interface {
	CreateReporter(ctx context.Context, reporter *domain.Reporter) error
	GetReporterByID(ctx context.Context, reporterID int64) (*domain.Reporter, error)
	GetReporterByAlias(ctx context.Context, alias string) (*domain.Reporter, error)
	GetReporterByEmail(ctx context.Context, email string) (*domain.Reporter, error)
	UpdateReporter(ctx context.Context, reporter *domain.Reporter) error
	DeleteReporter(ctx context.Context, reporterID int64) error
	TouchReporterLogin(ctx context.Context, reporterID int64, at time.Time) error

	CreateOrg(ctx context.Context, org *domain.ExternalOrg) error
	GetOrgByID(ctx context.Context, orgID int64) (*domain.ExternalOrg, error)
	GetOrgByEmail(ctx context.Context, email string) (*domain.ExternalOrg, error)
	GetOrgByName(ctx context.Context, name string) (*domain.ExternalOrg, error)
	TouchOrgLogin(ctx context.Context, orgID int64, at time.Time) error

	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	GetAdminByID(ctx context.Context, adminID int64) (*domain.Admin, error)
	TouchAdminLogin(ctx context.Context, adminID int64, at time.Time) error

	CreateSession(ctx context.Context, session *domain.Session) error
	GetSessionByToken(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewAuthService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Service) RegisterReporter(ctx context.Context, req *domain.RegisterReporterRequest) (*domain.Reporter, error) {
	if _, err := s.store.GetReporterByAlias(ctx, req.Alias); !errors.Is(err, constants.ErrDBNotFound) {
		if err == nil {
			return nil, constants.ErrAliasTaken
		}
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	reporter := &domain.Reporter{
		Alias:        req.Alias,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.store.CreateReporter(ctx, reporter); err != nil {
		return nil, fmt.Errorf("store.CreateReporter: %w", err)
	}

	return reporter, nil
}

// LoginReporter accepts an alias or an email as identifier.
func (s *Service) LoginReporter(ctx context.Context, identifier, password string) (*domain.Reporter, error) {
	var (
		reporter *domain.Reporter
		err      error
	)
	if strings.Contains(identifier, "@") {
		reporter, err = s.store.GetReporterByEmail(ctx, identifier)
	} else {
		reporter, err = s.store.GetReporterByAlias(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrInvalidCreds
		}
		return nil, err
	}

	if !verifyPassword(reporter.PasswordHash, password) {
		return nil, constants.ErrInvalidCreds
	}

	now := s.now().UTC()
	if err := s.store.TouchReporterLogin(ctx, reporter.ReporterID, now); err != nil {
		return nil, fmt.Errorf("store.TouchReporterLogin: %w", err)
	}
	reporter.LastLogin = &now

	logger.Debugf(ctx, "reporter login: reporter_id=[%v]", reporter.ReporterID)

	return reporter, nil
}

func (s *Service) UpdateReporter(ctx context.Context, reporterID int64, req *domain.UpdateReporterRequest) (*domain.Reporter, error) {
	reporter, err := s.store.GetReporterByID(ctx, reporterID)
	if err != nil {
		return nil, err
	}

	if req.Alias != nil {
		reporter.Alias = *req.Alias
	}
	if req.FirstName != nil {
		reporter.FirstName = req.FirstName
	}
	if req.LastName != nil {
		reporter.LastName = req.LastName
	}
	if req.Email != nil {
		reporter.Email = req.Email
	}
	if req.Phone != nil {
		reporter.Phone = req.Phone
	}

	if err := s.store.UpdateReporter(ctx, reporter); err != nil {
		return nil, fmt.Errorf("store.UpdateReporter: %w", err)
	}

	return reporter, nil
}

func (s *Service) GetReporter(ctx context.Context, reporterID int64) (*domain.Reporter, error) {
	return s.store.GetReporterByID(ctx, reporterID)
}

func (s *Service) DeleteReporter(ctx context.Context, reporterID int64) error {
	if _, err := s.store.GetReporterByID(ctx, reporterID); err != nil {
		return err
	}
	return s.store.DeleteReporter(ctx, reporterID)
}

func (s *Service) RegisterOrg(ctx context.Context, req *domain.RegisterOrgRequest) (*domain.ExternalOrg, error) {
	if req.Password != req.ConfirmPassword {
		return nil, constants.ErrPasswordMismatch
	}

	if _, err := s.store.GetOrgByEmail(ctx, req.ContactEmail); !errors.Is(err, constants.ErrDBNotFound) {
		if err == nil {
			return nil, constants.ErrEmailAlreadyTaken
		}
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	org := &domain.ExternalOrg{
		OrgName:       req.OrgName,
		ContactPerson: &req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  &req.ContactPhone,
		PasswordHash:  hash,
	}
	if err := s.store.CreateOrg(ctx, org); err != nil {
		return nil, fmt.Errorf("store.CreateOrg: %w", err)
	}

	return org, nil
}

// LoginOrg accepts a contact email, a numeric org id, or an org name
// as identifier and opens a session on success.
func (s *Service) LoginOrg(ctx context.Context, identifier, password string) (*domain.ExternalOrg, *domain.Session, error) {
	var (
		org *domain.ExternalOrg
		err error
	)
	switch {
	case strings.Contains(identifier, "@"):
		org, err = s.store.GetOrgByEmail(ctx, identifier)
	default:
		if orgID, convErr := strconv.ParseInt(identifier, 10, 64); convErr == nil {
			org, err = s.store.GetOrgByID(ctx, orgID)
		} else {
			org, err = s.store.GetOrgByName(ctx, identifier)
		}
	}
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, nil, constants.ErrInvalidCreds
		}
		return nil, nil, err
	}

	if !verifyPassword(org.PasswordHash, password) {
		return nil, nil, constants.ErrInvalidCreds
	}

	now := s.now().UTC()
	if err := s.store.TouchOrgLogin(ctx, org.OrgID, now); err != nil {
		return nil, nil, fmt.Errorf("store.TouchOrgLogin: %w", err)
	}

	session, err := s.createSession(ctx, domain.UserTypeOrg, org.OrgID)
	if err != nil {
		return nil, nil, err
	}

	return org, session, nil
}

func (s *Service) LoginAdmin(ctx context.Context, adminIdentifier, password string) (*domain.Admin, *domain.Session, error) {
	adminID, err := strconv.ParseInt(adminIdentifier, 10, 64)
	if err != nil {
		return nil, nil, constants.ErrInvalidCreds
	}

	admin, err := s.store.GetAdminByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, nil, constants.ErrInvalidCreds
		}
		return nil, nil, err
	}

	if !verifyPassword(admin.PasswordHash, password) {
		return nil, nil, constants.ErrInvalidCreds
	}

	now := s.now().UTC()
	if err := s.store.TouchAdminLogin(ctx, admin.AdminID, now); err != nil {
		return nil, nil, fmt.Errorf("store.TouchAdminLogin: %w", err)
	}

	session, err := s.createSession(ctx, domain.UserTypeAdmin, admin.AdminID)
	if err != nil {
		return nil, nil, err
	}

	return admin, session, nil
}

func (s *Service) AddAdmin(ctx context.Context, password string) (*domain.Admin, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{PasswordHash: hash}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("store.CreateAdmin: %w", err)
	}

	return admin, nil
}

func (s *Service) createSession(ctx context.Context, userType string, userID int64) (*domain.Session, error) {
	session := &domain.Session{
		UserType:  userType,
		UserID:    userID,
		Token:     random.String(sessionTokenLength),
		ExpiresAt: s.now().UTC().Add(SessionTTL),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("store.CreateSession: %w", err)
	}

	return session, nil
}

func (s *Service) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, constants.ErrMissingAuthCookie
	}

	session, err := s.store.GetSessionByToken(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, constants.ErrDBNotFound) {
			return nil, constants.ErrUnauthorized
		}
		return nil, err
	}

	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeleteSession(ctx, token)
}
