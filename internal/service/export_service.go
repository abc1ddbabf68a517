package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/models"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
	"github.com/noah-isme/gradecalc-api/pkg/export"
)

const (
	FormatCSV = "csv"
	FormatPDF = "pdf"

	exportPageSize = 100
)

var announcementExportHeaders = []string{"id", "title", "active", "semester_id", "branch_id", "link_url", "created_at"}

type announcementPager interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
	MaxRows int
}

// ExportService renders announcement listings as downloadable documents.
type ExportService struct {
	announcements announcementPager
	csv           csvRenderer
	pdf           pdfRenderer
	logger        *zap.Logger
	cfg           ExportConfig
	now           func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(announcements announcementPager, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 1000
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{announcements: announcements, csv: csv, pdf: pdf, logger: logger, cfg: cfg, now: time.Now}
}

// ExportAnnouncements renders every announcement, newest first, capped at MaxRows.
func (s *ExportService) ExportAnnouncements(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled")
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", req.Format))
	}

	rows, err := s.collect(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcements for export")
	}
	dataset := announcementDataset(rows).Truncate(s.cfg.MaxRows)

	stamp := s.now().UTC().Format("20060102-150405")
	file := &dto.ExportFile{Filename: fmt.Sprintf("announcements-%s.%s", stamp, format)}
	switch format {
	case FormatPDF:
		file.ContentType = "application/pdf"
		file.Payload, err = s.pdf.Render(dataset, "Announcements")
	default:
		file.ContentType = "text/csv"
		file.Payload, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Info("announcements exported", zap.String("format", format), zap.Int("rows", len(dataset.Rows)))
	return file, nil
}

func (s *ExportService) collect(ctx context.Context) ([]models.Announcement, error) {
	var all []models.Announcement
	for page := 1; len(all) < s.cfg.MaxRows; page++ {
		rows, _, err := s.announcements.List(ctx, models.AnnouncementFilter{Page: page, PageSize: exportPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) < exportPageSize {
			break
		}
	}
	return all, nil
}

func announcementDataset(rows []models.Announcement) export.Dataset {
	data := export.Dataset{Headers: announcementExportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"id":          row.ID,
			"title":       row.Title,
			"active":      strconv.FormatBool(row.IsActive),
			"semester_id": derefOr(row.SemesterID, "all"),
			"branch_id":   derefOr(row.BranchID, "all"),
			"link_url":    derefOr(row.LinkURL, ""),
			"created_at":  row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return data
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
