package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "postgres")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "active", "last_login", "created_at", "updated_at"}).
		AddRow("1", "editor@example.com", "hash", "Editor", string(models.RoleEditor), true, now, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, full_name, role, active, last_login, created_at, updated_at FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("editor@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "editor@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEditor, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRefreshToken(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO refresh_tokens").WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateRefreshToken(context.Background(), &models.RefreshToken{UserID: "u1", Token: "token", ExpiresAt: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAuditLogAssignsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditLog{Action: models.AuditActionAnnouncementCreate, Resource: "announcements"}
	require.NoError(t, repo.CreateAuditLog(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
