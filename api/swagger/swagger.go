package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "GradeCalc Site API",
        "description": "Route ad policy, announcements and staff tooling for the grade calculator site.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "RoutePolicy", "description": "Ad eligibility per site route"},
        {"name": "Announcements", "description": "Viewer feed and staff administration"},
        {"name": "Catalog", "description": "Semester and branch selectors"},
        {"name": "Authentication", "description": "Staff sessions"},
        {"name": "Observability", "description": "Metrics snapshot"}
    ],
    "paths": {
        "/route-policy": {
            "get": {
                "tags": ["RoutePolicy"],
                "summary": "Classify a site route for ad display",
                "parameters": [
                    {"name": "path", "in": "query", "type": "string", "description": "Route path; query string and fragment are ignored"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RoutePolicyEnvelope"}}
                }
            }
        },
        "/route-policy/tables": {
            "get": {
                "tags": ["RoutePolicy"],
                "summary": "List route classification tables",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Announcements for a viewer",
                "parameters": [
                    {"name": "semester_id", "in": "query", "type": "string"},
                    {"name": "branch_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AnnouncementListEnvelope"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/announcements": {
            "get": {
                "tags": ["Announcements"],
                "summary": "List announcements",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AnnouncementListEnvelope"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            },
            "post": {
                "tags": ["Announcements"],
                "summary": "Create announcement",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnnouncementPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/admin/announcements/export": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Export announcements",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format"},
                    "404": {"description": "Exports disabled"}
                }
            }
        },
        "/admin/announcements/{id}": {
            "get": {
                "tags": ["Announcements"],
                "summary": "Get announcement",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Announcements"],
                "summary": "Update announcement",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnnouncementPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Announcements"],
                "summary": "Delete announcement",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/admin/announcements/{id}/active": {
            "patch": {
                "tags": ["Announcements"],
                "summary": "Publish or retract announcement",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "required": ["is_active"],
                        "properties": {"is_active": {"type": "boolean"}}
                    }}
                ],
                "responses": {
                    "204": {"description": "Updated"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/semesters": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List semesters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/branches": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List branches",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Semesters and branches in one payload",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {
                        "type": "object",
                        "required": ["email", "password"],
                        "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
                    }}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Logout current session",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenPayload"}}
                ],
                "responses": {"204": {"description": "Logged out"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "AdLoaderSettings": {
            "type": "object",
            "properties": {
                "client_id": {"type": "string"},
                "min_content_length": {"type": "integer"},
                "load_delay_ms": {"type": "integer"}
            }
        },
        "RoutePolicy": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "page_type": {"type": "string", "enum": ["content", "auth", "admin", "settings", "error", "loading"]},
                "can_show_ads": {"type": "boolean"},
                "reason": {"type": "string"},
                "ad_loader": {"$ref": "#/definitions/AdLoaderSettings"}
            }
        },
        "RoutePolicyEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/RoutePolicy"}
            }
        },
        "Announcement": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "link_url": {"type": "string"},
                "link_label": {"type": "string"},
                "link_type": {"type": "string", "enum": ["internal", "external", "download"]},
                "is_active": {"type": "boolean"},
                "semester_id": {"type": "string"},
                "branch_id": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "AnnouncementListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/Announcement"}},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "AnnouncementPayload": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 2000},
                "link_url": {"type": "string", "format": "uri"},
                "link_label": {"type": "string", "maxLength": 80},
                "link_type": {"type": "string", "enum": ["internal", "external", "download"]},
                "is_active": {"type": "boolean"},
                "semester_id": {"type": "string"},
                "branch_id": {"type": "string"}
            }
        },
        "RefreshTokenPayload": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
