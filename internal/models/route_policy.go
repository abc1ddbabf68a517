package models

// PageType classifies a site route for ad eligibility.
type PageType string

const (
	PageTypeContent  PageType = "content"
	PageTypeAuth     PageType = "auth"
	PageTypeAdmin    PageType = "admin"
	PageTypeSettings PageType = "settings"
	PageTypeError    PageType = "error"
	// PageTypeLoading is never produced by classification; the front-end uses it
	// while the route is still unresolved.
	PageTypeLoading PageType = "loading"
)

// PageTypes lists every page type in a stable order.
func PageTypes() []PageType {
	return []PageType{PageTypeContent, PageTypeAuth, PageTypeAdmin, PageTypeSettings, PageTypeError, PageTypeLoading}
}

// Valid reports whether p is one of the enumerated page types.
func (p PageType) Valid() bool {
	for _, known := range PageTypes() {
		if p == known {
			return true
		}
	}
	return false
}

// RouteClassification is the ad display verdict for a single path.
type RouteClassification struct {
	PageType   PageType `json:"page_type"`
	CanShowAds bool     `json:"can_show_ads"`
	Reason     string   `json:"reason"`
}
