package dto

import "github.com/noah-isme/gradecalc-api/internal/models"

// AdLoaderSettings tells the front-end ad loader how to inject the network script on
// an ad eligible page.
type AdLoaderSettings struct {
	ClientID         string `json:"client_id"`
	MinContentLength int    `json:"min_content_length"`
	LoadDelayMs      int64  `json:"load_delay_ms"`
}

// RoutePolicyResponse is the classification of a single path.
type RoutePolicyResponse struct {
	Path string `json:"path"`
	models.RouteClassification
	AdLoader *AdLoaderSettings `json:"ad_loader,omitempty"`
}

// RouteTablesResponse lists the fixed path tables per page type.
type RouteTablesResponse struct {
	Tables            map[models.PageType][]string `json:"tables"`
	CourseDetailRoute string                       `json:"course_detail_route"`
	PageTypes         []models.PageType            `json:"page_types"`
}
