package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

const announcementColumns = `id, title, description, link_url, link_label, link_type, is_active, semester_id, branch_id, created_by, created_at, updated_at`

// AnnouncementRepository provides persistence for announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// ListActive returns every active announcement, newest first.
func (r *AnnouncementRepository) ListActive(ctx context.Context) ([]models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE is_active = TRUE ORDER BY created_at DESC`
	announcements := []models.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, query); err != nil {
		return nil, fmt.Errorf("list active announcements: %w", err)
	}
	return announcements, nil
}

// List returns a page of announcements for administration, including inactive ones.
func (r *AnnouncementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, announcementColumns, whereClause, size, offset)
	announcements := []models.Announcement{}
	if err := r.db.SelectContext(ctx, &announcements, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM announcements WHERE %s", whereClause), args...); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}
	return announcements, total, nil
}

// GetByID returns an announcement by identifier. sql.ErrNoRows is returned unwrapped.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	var announcement models.Announcement
	if err := r.db.GetContext(ctx, &announcement, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	return &announcement, nil
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	if announcement.ID == "" {
		announcement.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if announcement.CreatedAt.IsZero() {
		announcement.CreatedAt = now
	}
	announcement.UpdatedAt = now
	const query = `INSERT INTO announcements (id, title, description, link_url, link_label, link_type, is_active, semester_id, branch_id, created_by, created_at, updated_at)
VALUES (:id, :title, :description, :link_url, :link_label, :link_type, :is_active, :semester_id, :branch_id, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, announcement); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

// Update modifies an existing announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	announcement.UpdatedAt = time.Now().UTC()
	const query = `UPDATE announcements SET title = :title, description = :description, link_url = :link_url, link_label = :link_label,
link_type = :link_type, is_active = :is_active, semester_id = :semester_id, branch_id = :branch_id, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, announcement)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	return expectAffected(res)
}

// SetActive toggles the visibility flag of an announcement.
func (r *AnnouncementRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE announcements SET is_active = $2, updated_at = $3 WHERE id = $1`, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set announcement active: %w", err)
	}
	return expectAffected(res)
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM announcements WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return expectAffected(res)
}

// expectAffected maps a zero-row mutation to sql.ErrNoRows.
func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
