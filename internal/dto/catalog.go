package dto

import "github.com/noah-isme/gradecalc-api/internal/models"

// CatalogResponse bundles the viewer context options.
type CatalogResponse struct {
	Semesters []models.Semester `json:"semesters"`
	Branches  []models.Branch   `json:"branches"`
}
