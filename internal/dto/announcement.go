package dto

// AnnouncementFeedRequest is the viewer context for the public feed. Nil identifiers
// mean the viewer has not declared a semester or branch.
type AnnouncementFeedRequest struct {
	SemesterID *string `form:"semester_id" json:"semester_id,omitempty"`
	BranchID   *string `form:"branch_id" json:"branch_id,omitempty"`
}

// AnnouncementListRequest filters the admin listing.
type AnnouncementListRequest struct {
	Active   *bool `form:"active" json:"active,omitempty"`
	Page     int   `form:"page" json:"page"`
	PageSize int   `form:"page_size" json:"page_size"`
}

// AnnouncementPayload is the create/update body for announcements.
type AnnouncementPayload struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	LinkURL     *string `json:"link_url" validate:"omitempty,url"`
	LinkLabel   *string `json:"link_label" validate:"omitempty,max=80"`
	LinkType    *string `json:"link_type" validate:"omitempty,linktype"`
	IsActive    *bool   `json:"is_active"`
	SemesterID  *string `json:"semester_id" validate:"omitempty,max=64"`
	BranchID    *string `json:"branch_id" validate:"omitempty,max=64"`
}

// SetAnnouncementActiveRequest toggles visibility.
type SetAnnouncementActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// ExportRequest selects the export format.
type ExportRequest struct {
	Format string `form:"format"`
}

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}
