package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimewatch/backend/internal/domain"
	"github.com/crimewatch/backend/internal/pkg/constants"
)

type fakeStore struct {
	reporters map[int64]*domain.Reporter
	orgs      map[int64]*domain.ExternalOrg
	admins    map[int64]*domain.Admin
	sessions  map[string]*domain.Session
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reporters: make(map[int64]*domain.Reporter),
		orgs:      make(map[int64]*domain.ExternalOrg),
		admins:    make(map[int64]*domain.Admin),
		sessions:  make(map[string]*domain.Session),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateReporter(_ context.Context, r *domain.Reporter) error {
	r.ReporterID = f.id()
	f.reporters[r.ReporterID] = r
	return nil
}

func (f *fakeStore) GetReporterByID(_ context.Context, id int64) (*domain.Reporter, error) {
	if r, ok := f.reporters[id]; ok {
		return r, nil
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) GetReporterByAlias(_ context.Context, alias string) (*domain.Reporter, error) {
	for _, r := range f.reporters {
		if r.Alias == alias {
			return r, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) GetReporterByEmail(_ context.Context, email string) (*domain.Reporter, error) {
	for _, r := range f.reporters {
		if r.Email != nil && *r.Email == email {
			return r, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) UpdateReporter(_ context.Context, r *domain.Reporter) error {
	f.reporters[r.ReporterID] = r
	return nil
}

func (f *fakeStore) DeleteReporter(_ context.Context, id int64) error {
	delete(f.reporters, id)
	return nil
}

func (f *fakeStore) TouchReporterLogin(_ context.Context, id int64, at time.Time) error {
	f.reporters[id].LastLogin = &at
	return nil
}

func (f *fakeStore) CreateOrg(_ context.Context, o *domain.ExternalOrg) error {
	o.OrgID = f.id()
	f.orgs[o.OrgID] = o
	return nil
}

func (f *fakeStore) GetOrgByID(_ context.Context, id int64) (*domain.ExternalOrg, error) {
	if o, ok := f.orgs[id]; ok {
		return o, nil
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) GetOrgByEmail(_ context.Context, email string) (*domain.ExternalOrg, error) {
	for _, o := range f.orgs {
		if o.ContactEmail == email {
			return o, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) GetOrgByName(_ context.Context, name string) (*domain.ExternalOrg, error) {
	for _, o := range f.orgs {
		if o.OrgName == name {
			return o, nil
		}
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) TouchOrgLogin(_ context.Context, id int64, at time.Time) error {
	f.orgs[id].LastLogin = &at
	return nil
}

func (f *fakeStore) CreateAdmin(_ context.Context, a *domain.Admin) error {
	a.AdminID = f.id()
	f.admins[a.AdminID] = a
	return nil
}

func (f *fakeStore) GetAdminByID(_ context.Context, id int64) (*domain.Admin, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) TouchAdminLogin(_ context.Context, id int64, at time.Time) error {
	f.admins[id].LastLogin = &at
	return nil
}

func (f *fakeStore) CreateSession(_ context.Context, s *domain.Session) error {
	s.SessionID = f.id()
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeStore) GetSessionByToken(_ context.Context, token string, now time.Time) (*domain.Session, error) {
	if s, ok := f.sessions[token]; ok && s.ExpiresAt.After(now) {
		return s, nil
	}
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newTestService(f *fakeStore) *Service {
	svc := NewAuthService(f)
	svc.now = func() time.Time { return time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegisterReporter(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	reporter, err := svc.RegisterReporter(context.Background(), &domain.RegisterReporterRequest{
		Alias:    "nightowl",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, reporter.ReporterID)
	assert.NotEqual(t, "secret123", reporter.PasswordHash)

	_, err = svc.RegisterReporter(context.Background(), &domain.RegisterReporterRequest{
		Alias:    "nightowl",
		Password: "other456",
	})
	assert.True(t, errors.Is(err, constants.ErrAliasTaken))
}

func TestLoginReporter(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	email := "owl@example.com"
	_, err := svc.RegisterReporter(context.Background(), &domain.RegisterReporterRequest{
		Alias:    "nightowl",
		Password: "secret123",
		Email:    &email,
	})
	require.NoError(t, err)

	byAlias, err := svc.LoginReporter(context.Background(), "nightowl", "secret123")
	require.NoError(t, err)
	assert.NotNil(t, byAlias.LastLogin)

	byEmail, err := svc.LoginReporter(context.Background(), "owl@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, byAlias.ReporterID, byEmail.ReporterID)

	_, err = svc.LoginReporter(context.Background(), "nightowl", "wrong")
	assert.True(t, errors.Is(err, constants.ErrInvalidCreds))

	_, err = svc.LoginReporter(context.Background(), "nobody", "secret123")
	assert.True(t, errors.Is(err, constants.ErrInvalidCreds))
}

func TestUpdateReporter(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	reporter, err := svc.RegisterReporter(context.Background(), &domain.RegisterReporterRequest{
		Alias:    "nightowl",
		Password: "secret123",
	})
	require.NoError(t, err)

	firstName := "Jamie"
	updated, err := svc.UpdateReporter(context.Background(), reporter.ReporterID, &domain.UpdateReporterRequest{
		FirstName: &firstName,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.FirstName)
	assert.Equal(t, "Jamie", *updated.FirstName)
	assert.Equal(t, "nightowl", updated.Alias)
}

func TestRegisterOrg(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	req := &domain.RegisterOrgRequest{
		OrgName:         "City Watch",
		ContactPerson:   "Sam Vimes",
		ContactEmail:    "watch@example.com",
		ContactPhone:    "+254700000000",
		Password:        "secret123",
		ConfirmPassword: "different",
	}
	_, err := svc.RegisterOrg(context.Background(), req)
	assert.True(t, errors.Is(err, constants.ErrPasswordMismatch))

	req.ConfirmPassword = "secret123"
	org, err := svc.RegisterOrg(context.Background(), req)
	require.NoError(t, err)
	assert.NotZero(t, org.OrgID)

	_, err = svc.RegisterOrg(context.Background(), req)
	assert.True(t, errors.Is(err, constants.ErrEmailAlreadyTaken))
}

func TestLoginOrg(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	org, err := svc.RegisterOrg(context.Background(), &domain.RegisterOrgRequest{
		OrgName:         "City Watch",
		ContactPerson:   "Sam Vimes",
		ContactEmail:    "watch@example.com",
		ContactPhone:    "+254700000000",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)

	for _, identifier := range []string{"watch@example.com", "City Watch", "1"} {
		loggedIn, session, err := svc.LoginOrg(context.Background(), identifier, "secret123")
		require.NoError(t, err, identifier)
		assert.Equal(t, org.OrgID, loggedIn.OrgID)
		assert.Equal(t, domain.UserTypeOrg, session.UserType)
		assert.Len(t, session.Token, sessionTokenLength)
		assert.Equal(t, svc.now().Add(SessionTTL), session.ExpiresAt)
	}

	_, _, err = svc.LoginOrg(context.Background(), "watch@example.com", "wrong")
	assert.True(t, errors.Is(err, constants.ErrInvalidCreds))
}

func TestLoginAdmin(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	admin, err := svc.AddAdmin(context.Background(), "secret123")
	require.NoError(t, err)

	loggedIn, session, err := svc.LoginAdmin(context.Background(), "1", "secret123")
	require.NoError(t, err)
	assert.Equal(t, admin.AdminID, loggedIn.AdminID)
	assert.Equal(t, domain.UserTypeAdmin, session.UserType)

	_, _, err = svc.LoginAdmin(context.Background(), "not-a-number", "secret123")
	assert.True(t, errors.Is(err, constants.ErrInvalidCreds))

	_, _, err = svc.LoginAdmin(context.Background(), "999", "secret123")
	assert.True(t, errors.Is(err, constants.ErrInvalidCreds))
}

func TestSessions(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	_, session, err := loginFixtureOrg(t, svc)
	require.NoError(t, err)

	got, err := svc.GetSession(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)

	_, err = svc.GetSession(context.Background(), "")
	assert.True(t, errors.Is(err, constants.ErrMissingAuthCookie))

	_, err = svc.GetSession(context.Background(), "bogus")
	assert.True(t, errors.Is(err, constants.ErrUnauthorized))

	require.NoError(t, svc.Logout(context.Background(), session.Token))
	_, err = svc.GetSession(context.Background(), session.Token)
	assert.True(t, errors.Is(err, constants.ErrUnauthorized))

	// Logging out with no cookie is a no-op.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestSessionExpiry(t *testing.T) {
	f := newFakeStore()
	svc := newTestService(f)

	_, session, err := loginFixtureOrg(t, svc)
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), session.Token)
	require.NoError(t, err)

	// Past the TTL the stored row still exists but no longer counts.
	svc.now = func() time.Time { return session.ExpiresAt.Add(time.Minute) }
	_, err = svc.GetSession(context.Background(), session.Token)
	assert.True(t, errors.Is(err, constants.ErrUnauthorized))
}

func loginFixtureOrg(t *testing.T, svc *Service) (*domain.ExternalOrg, *domain.Session, error) {
	t.Helper()
	_, err := svc.RegisterOrg(context.Background(), &domain.RegisterOrgRequest{
		OrgName:         "City Watch",
		ContactPerson:   "Sam Vimes",
		ContactEmail:    "watch@example.com",
		ContactPhone:    "+254700000000",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	return svc.LoginOrg(context.Background(), "watch@example.com", "secret123")
}
