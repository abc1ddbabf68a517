package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/gradecalc-api/internal/models"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
)

type mockAuthRepo struct {
	userByEmail      *models.User
	findByEmailErr   error
	refreshTokens    map[string]*models.RefreshToken
	createRefreshErr error
	revoked          []string
	auditLogs        []*models.AuditLog
	lastLoginUpdated bool
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.userByEmail == nil || m.userByEmail.Email != email {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.userByEmail == nil || m.userByEmail.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.userByEmail, nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.createRefreshErr != nil {
		return m.createRefreshErr
	}
	if m.refreshTokens == nil {
		m.refreshTokens = map[string]*models.RefreshToken{}
	}
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if rt, ok := m.refreshTokens[token]; ok {
		return rt, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	m.revoked = append(m.revoked, id)
	for _, rt := range m.refreshTokens {
		if rt.ID == id {
			rt.Revoked = true
			rt.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

func newAuthFixture(t *testing.T, active bool) (*AuthService, *mockAuthRepo) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &mockAuthRepo{userByEmail: &models.User{
		ID:           "user-1",
		Email:        "editor@gradecalc.test",
		PasswordHash: string(hash),
		FullName:     "Site Editor",
		Role:         models.RoleEditor,
		Active:       active,
	}}
	svc := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "gradecalc-api",
	})
	return svc, repo
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, repo := newAuthFixture(t, true)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@gradecalc.test", Password: "s3cret!", IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, models.RoleEditor, res.User.Role)
	assert.True(t, repo.lastLoginUpdated)
	require.Len(t, repo.auditLogs, 1)
	assert.Equal(t, models.AuditActionLogin, repo.auditLogs[0].Action)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleEditor, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@gradecalc.test", Password: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@gradecalc.test", Password: "s3cret!"})
	assert.True(t, errors.Is(err, appErrors.ErrInvalidCredentials))
}

func TestAuthServiceLoginInactive(t *testing.T) {
	svc, _ := newAuthFixture(t, false)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@gradecalc.test", Password: "s3cret!"})
	assert.True(t, errors.Is(err, appErrors.ErrInactiveAccount))
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestAuthServiceRefreshTokenRotates(t *testing.T) {
	svc, repo := newAuthFixture(t, true)
	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@gradecalc.test", Password: "s3cret!"})
	require.NoError(t, err)

	res, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, res.RefreshToken)
	assert.Len(t, repo.revoked, 1)

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceLogoutRejectsForeignToken(t *testing.T) {
	svc, _ := newAuthFixture(t, true)
	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@gradecalc.test", Password: "s3cret!"})
	require.NoError(t, err)

	err = svc.Logout(context.Background(), models.LogoutRequest{RefreshToken: login.RefreshToken}, "someone-else")
	assert.True(t, errors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, svc.Logout(context.Background(), models.LogoutRequest{RefreshToken: login.RefreshToken}, "user-1"))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t, true)

	_, err := svc.ValidateToken("not.a.token")
	assert.True(t, errors.Is(err, appErrors.ErrUnauthorized))
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	svc, _ := newAuthFixture(t, true)
	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@gradecalc.test", Password: "s3cret!"})
	require.NoError(t, err)

	other := NewAuthService(&mockAuthRepo{}, nil, nil, AuthConfig{AccessTokenSecret: "different", Issuer: "gradecalc-api"})
	_, err = other.ValidateToken(login.AccessToken)
	assert.Error(t, err)
}
