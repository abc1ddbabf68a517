package models

import "time"

// AnnouncementLinkType hints how the front-end should render the call-to-action link.
type AnnouncementLinkType string

const (
	AnnouncementLinkInternal AnnouncementLinkType = "internal"
	AnnouncementLinkExternal AnnouncementLinkType = "external"
	AnnouncementLinkDownload AnnouncementLinkType = "download"
)

// Announcement represents a persisted announcement row. A nil SemesterID or BranchID
// means the announcement applies to every semester or branch.
type Announcement struct {
	ID          string                `db:"id" json:"id"`
	Title       string                `db:"title" json:"title"`
	Description *string               `db:"description" json:"description,omitempty"`
	LinkURL     *string               `db:"link_url" json:"link_url,omitempty"`
	LinkLabel   *string               `db:"link_label" json:"link_label,omitempty"`
	LinkType    *AnnouncementLinkType `db:"link_type" json:"link_type,omitempty"`
	IsActive    bool                  `db:"is_active" json:"is_active"`
	SemesterID  *string               `db:"semester_id" json:"semester_id,omitempty"`
	BranchID    *string               `db:"branch_id" json:"branch_id,omitempty"`
	CreatedBy   *string               `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at" json:"updated_at"`
}

// AnnouncementFilter narrows the admin listing of announcements.
type AnnouncementFilter struct {
	Active   *bool
	Page     int
	PageSize int
}
