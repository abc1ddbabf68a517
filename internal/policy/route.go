// Package policy holds the pure decision rules the site front-end relies on: whether a
// route may display advertisements and which announcements a viewer should see.
package policy

import (
	"strings"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

const (
	ReasonAuth          = "Login and signup pages cannot display ads"
	ReasonAdmin         = "Admin pages are not public-facing and cannot display ads"
	ReasonSettings      = "Profile/settings pages have minimal content"
	ReasonContent       = "Page has meaningful educational content"
	ReasonCourseDetail  = "Course detail page with educational resources"
	ReasonUnknown       = "Unknown or error page - no ads allowed"
	courseDetailPrefix  = "/courses/"
	nestedPathSeparator = "/"
)

var (
	authPaths = [...]string{"/login", "/signup", "/forgot-password", "/reset-password"}

	adminPaths = [...]string{"/admin"}

	settingsPaths = [...]string{"/profile", "/settings"}

	contentPaths = [...]string{
		"/",
		"/dashboard",
		"/courses",
		"/calculator",
		"/sgpa-calculator",
		"/cgpa-calculator",
		"/percentage-calculator",
		"/about",
		"/contact",
		"/privacy-policy",
		"/terms",
	}
)

// RouteTables exposes copies of the fixed path tables keyed by page type.
func RouteTables() map[models.PageType][]string {
	return map[models.PageType][]string{
		models.PageTypeAuth:     append([]string(nil), authPaths[:]...),
		models.PageTypeAdmin:    append([]string(nil), adminPaths[:]...),
		models.PageTypeSettings: append([]string(nil), settingsPaths[:]...),
		models.PageTypeContent:  append([]string(nil), contentPaths[:]...),
	}
}

// Classify decides the page type and ad eligibility of an already normalised path.
// Rules are evaluated in order and the first match wins; admin detection must run
// before the content and fallback checks.
func Classify(path string) models.RouteClassification {
	switch {
	case matchesExact(authPaths[:], path):
		return verdict(models.PageTypeAuth, ReasonAuth)
	case matchesExactOrNested(adminPaths[:], path):
		return verdict(models.PageTypeAdmin, ReasonAdmin)
	case matchesExact(settingsPaths[:], path):
		return verdict(models.PageTypeSettings, ReasonSettings)
	case matchesExact(contentPaths[:], path):
		return verdict(models.PageTypeContent, ReasonContent)
	case isCourseDetail(path):
		return verdict(models.PageTypeContent, ReasonCourseDetail)
	default:
		return verdict(models.PageTypeError, ReasonUnknown)
	}
}

// verdict derives CanShowAds from the page type so the two can never disagree.
func verdict(pageType models.PageType, reason string) models.RouteClassification {
	return models.RouteClassification{
		PageType:   pageType,
		CanShowAds: pageType == models.PageTypeContent,
		Reason:     reason,
	}
}

func matchesExact(paths []string, path string) bool {
	for _, candidate := range paths {
		if path == candidate {
			return true
		}
	}
	return false
}

// matchesExactOrNested accepts "/admin" and "/admin/..." but not "/adminfoo".
func matchesExactOrNested(paths []string, path string) bool {
	for _, candidate := range paths {
		if path == candidate || strings.HasPrefix(path, candidate+nestedPathSeparator) {
			return true
		}
	}
	return false
}

// isCourseDetail matches "/courses/<id>" where id is one or more non-slash characters.
func isCourseDetail(path string) bool {
	if !strings.HasPrefix(path, courseDetailPrefix) {
		return false
	}
	id := path[len(courseDetailPrefix):]
	return id != "" && !strings.Contains(id, nestedPathSeparator)
}
