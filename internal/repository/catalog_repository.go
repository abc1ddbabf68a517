package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

// CatalogRepository reads the semester and branch lookup tables.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListSemesters returns all semesters in display order.
func (r *CatalogRepository) ListSemesters(ctx context.Context) ([]models.Semester, error) {
	const query = `SELECT id, name, number, sort_order FROM semesters ORDER BY sort_order, number`
	semesters := []models.Semester{}
	if err := r.db.SelectContext(ctx, &semesters, query); err != nil {
		return nil, fmt.Errorf("list semesters: %w", err)
	}
	return semesters, nil
}

// ListBranches returns all branches in display order.
func (r *CatalogRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	const query = `SELECT id, code, name, sort_order FROM branches ORDER BY sort_order, name`
	branches := []models.Branch{}
	if err := r.db.SelectContext(ctx, &branches, query); err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}
