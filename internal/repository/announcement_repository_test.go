package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

var announcementRowColumns = []string{"id", "title", "description", "link_url", "link_label", "link_type", "is_active", "semester_id", "branch_id", "created_by", "created_at", "updated_at"}

func newAnnouncementRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
	}
}

func TestAnnouncementRepositoryListActive(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(announcementRowColumns).
		AddRow("a2", "Exam schedule", nil, "https://example.com/s.pdf", "Download", "download", true, "sem-3", nil, "u1", now, now).
		AddRow("a1", "Welcome", "Hello", nil, nil, nil, true, nil, nil, nil, now.Add(-time.Hour), now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM announcements WHERE is_active = TRUE ORDER BY created_at DESC")).
		WillReturnRows(rows)

	result, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "a2", result[0].ID)
	require.NotNil(t, result[0].SemesterID)
	assert.Equal(t, "sem-3", *result[0].SemesterID)
	assert.Nil(t, result[0].BranchID)
	require.NotNil(t, result[0].LinkType)
	assert.Equal(t, models.AnnouncementLinkDownload, *result[0].LinkType)
	assert.Nil(t, result[1].SemesterID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryListActiveEmpty(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	mock.ExpectQuery("FROM announcements WHERE is_active").WillReturnRows(sqlmock.NewRows(announcementRowColumns))

	result, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestAnnouncementRepositoryListWithActiveFilter(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	now := time.Now()
	active := false
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND is_active = $1 ORDER BY created_at DESC LIMIT 10 OFFSET 10")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(announcementRowColumns).
			AddRow("a9", "Old", nil, nil, nil, nil, false, nil, nil, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM announcements WHERE 1=1 AND is_active = $1")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	result, total, err := repo.List(context.Background(), models.AnnouncementFilter{Active: &active, Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	mock.ExpectQuery("FROM announcements WHERE id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAnnouncementRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	mock.ExpectExec("INSERT INTO announcements").
		WithArgs(sqlmock.AnyArg(), "Results out", nil, nil, nil, nil, true, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ann := &models.Announcement{Title: "Results out", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), ann))
	assert.NotEmpty(t, ann.ID)
	assert.False(t, ann.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnnouncementRepositorySetActiveMissing(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	mock.ExpectExec("UPDATE announcements SET is_active").
		WithArgs("missing", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), "missing", true)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAnnouncementRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newAnnouncementRepoMock(t)
	defer cleanup()
	repo := NewAnnouncementRepository(db)

	mock.ExpectExec("DELETE FROM announcements").WithArgs("a1").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "a1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
