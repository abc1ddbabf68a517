package policy

import "github.com/noah-isme/gradecalc-api/internal/models"

// FilterAnnouncements returns the announcements visible to a viewer studying the given
// semester and branch, preserving input order. A nil viewer identifier only matches
// announcements that leave the corresponding field unset.
//
// Records are expected to be active already; the repository query owns that check
// along with newest-first ordering.
func FilterAnnouncements(records []models.Announcement, semesterID, branchID *string) []models.Announcement {
	visible := make([]models.Announcement, 0, len(records))
	for _, record := range records {
		if VisibleTo(record, semesterID, branchID) {
			visible = append(visible, record)
		}
	}
	return visible
}

// VisibleTo reports whether a single announcement targets the viewer context.
func VisibleTo(record models.Announcement, semesterID, branchID *string) bool {
	return scopeMatches(record.SemesterID, semesterID) && scopeMatches(record.BranchID, branchID)
}

// scopeMatches treats an unset or blank target as applying to everyone.
func scopeMatches(target, viewer *string) bool {
	if target == nil || *target == "" {
		return true
	}
	return viewer != nil && *target == *viewer
}
