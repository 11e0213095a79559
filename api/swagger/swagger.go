package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Enroll Gateway API",
        "description": "Course enrollment gateway in front of the platform API",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Enroll", "description": "Spreadsheet enrollment submissions"},
        {"name": "Roster", "description": "Course roster snapshots and exports"},
        {"name": "Sessions", "description": "Feedback sessions table"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/courses/{courseId}/enroll": {
            "post": {
                "tags": ["Enroll"],
                "summary": "Submit the new-students grid for enrollment",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitEnrollRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseId}/enroll/modified": {
            "post": {
                "tags": ["Enroll"],
                "summary": "Submit the tracked modified rows of the existing-students grid",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseId}/enroll/edits": {
            "post": {
                "tags": ["Enroll"],
                "summary": "Record a cell edit in the existing-students grid",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CellEditEvent"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Enroll"],
                "summary": "Discard all tracked edits for a course",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/courses/{courseId}/enroll/history": {
            "get": {
                "tags": ["Enroll"],
                "summary": "List recent enrollment submissions",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseId}/students": {
            "get": {
                "tags": ["Roster"],
                "summary": "List enrolled students",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "refresh", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseId}/students/export": {
            "get": {
                "tags": ["Roster"],
                "summary": "Download the roster as CSV or PDF",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/courses/{courseId}/responses/check": {
            "get": {
                "tags": ["Roster"],
                "summary": "Check whether the course already holds feedback responses",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/courses/{courseId}/sessions/table": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Render the feedback sessions table",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubmitEnrollRequest": {
            "type": "object",
            "properties": {
                "columnHeaders": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}}
            },
            "required": ["columnHeaders", "rows"]
        },
        "CellEditEvent": {
            "type": "object",
            "properties": {
                "rowIndex": {"type": "integer"},
                "columnIndex": {"type": "integer"},
                "oldValue": {"type": "string"},
                "newValue": {"type": "string"},
                "rowCells": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["rowIndex", "columnIndex", "rowCells"]
        },
        "Student": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "courseId": {"type": "string"},
                "name": {"type": "string"},
                "teamName": {"type": "string"},
                "sectionName": {"type": "string"},
                "comments": {"type": "string"},
                "joinState": {"type": "string"}
            }
        },
        "EnrollOutcome": {
            "type": "object",
            "properties": {
                "submitted": {"type": "boolean"},
                "attempted": {"type": "integer"},
                "enrolled": {"type": "integer"},
                "progress": {"type": "integer"},
                "errorMessage": {"type": "string"},
                "panels": {"type": "array", "items": {"$ref": "#/definitions/EnrollResultPanel"}},
                "invalidRowsIndex": {"type": "array", "items": {"type": "integer"}},
                "newStudentRowsIndex": {"type": "array", "items": {"type": "integer"}},
                "modifiedStudentRowsIndex": {"type": "array", "items": {"type": "integer"}},
                "unchangedStudentRowsIndex": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "EnrollResultPanel": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "students": {"type": "array", "items": {"$ref": "#/definitions/Student"}}
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
