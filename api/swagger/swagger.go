package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Uni Schedule API",
        "description": "Lesson conflict detection and workload warnings for university schedules",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Lesson Conflicts", "description": "Room, professor and group clashes between lessons"},
        {"name": "Workload", "description": "Professor and subject hour limits"},
        {"name": "Calendar", "description": "Holidays and recurring templates"},
        {"name": "System", "description": "Probes and instrumentation"}
    ],
    "paths": {
        "/lesson/conflicts/summary": {
            "get": {
                "tags": ["Lesson Conflicts"],
                "summary": "Conflict summary of a schedule",
                "description": "The payload is not wrapped in the response envelope.",
                "parameters": [
                    {"name": "schedule_id", "in": "query", "type": "integer", "required": true},
                    {"name": "date_from", "in": "query", "type": "string", "format": "date"},
                    {"name": "date_to", "in": "query", "type": "string", "format": "date"},
                    {"name": "view", "in": "query", "type": "string", "enum": ["day", "week"]},
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "If-None-Match", "in": "header", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ConflictsSummary"}},
                    "304": {"description": "Not modified"},
                    "400": {"description": "Invalid query or window", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Inconsistent resource", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson/conflicts/export": {
            "get": {
                "tags": ["Lesson Conflicts"],
                "summary": "Export the conflicts of a schedule",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "schedule_id", "in": "query", "type": "integer", "required": true},
                    {"name": "date_from", "in": "query", "type": "string", "format": "date"},
                    {"name": "date_to", "in": "query", "type": "string", "format": "date"},
                    {"name": "view", "in": "query", "type": "string", "enum": ["day", "week"]},
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}}
                }
            }
        },
        "/lesson/conflicts/refresh": {
            "post": {
                "tags": ["Lesson Conflicts"],
                "summary": "Drop cached conflict results of a schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "schedule_id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/lesson/groups": {
            "get": {
                "tags": ["Lesson Conflicts"],
                "summary": "Groups taking part in a schedule",
                "parameters": [
                    {"name": "schedule_id", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ScheduleGroups"}}
                }
            }
        },
        "/professor_workload/warnings/combined/{id}": {
            "get": {
                "tags": ["Workload"],
                "summary": "Workload warnings of a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CombinedWarnings"}},
                    "304": {"description": "Not modified"}
                }
            }
        },
        "/professor_workload/warnings/export/{id}": {
            "get": {
                "tags": ["Workload"],
                "summary": "Export the workload warnings of a schedule",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}}
                }
            }
        },
        "/university_holiday": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List university holidays",
                "parameters": [
                    {"name": "date_from", "in": "query", "type": "string", "format": "date"},
                    {"name": "date_to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/recurring_template/{id}/occurrences": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Preview the lessons generated by a recurring template",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "date_from", "in": "query", "type": "string", "format": "date"},
                    {"name": "date_to", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Invalid template", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/snapshot": {
            "get": {
                "tags": ["System"],
                "summary": "Instrumentation snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "OccurrenceRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lesson_id": {"type": "integer"},
                "recurring_template_id": {"type": "integer"},
                "schedule_id": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "room_id": {"type": "integer"},
                "is_online": {"type": "boolean"},
                "professor_id": {"type": "integer"},
                "group_id": {"type": "integer"},
                "subject_id": {"type": "integer"},
                "subject_assignment_id": {"type": "integer"},
                "lesson_type": {"type": "string"}
            }
        },
        "ResourceRef": {
            "type": "object",
            "properties": {
                "resource_type": {"type": "string", "enum": ["room", "professor", "group"]},
                "resource_id": {"type": "integer"}
            }
        },
        "ConflictEntry": {
            "type": "object",
            "properties": {
                "resource_type": {"type": "string"},
                "resource_id": {"type": "integer"},
                "resources": {"type": "array", "items": {"$ref": "#/definitions/ResourceRef"}},
                "date": {"type": "string", "format": "date"},
                "occurrence_a": {"$ref": "#/definitions/OccurrenceRef"},
                "occurrence_b": {"$ref": "#/definitions/OccurrenceRef"}
            }
        },
        "QueryIssue": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "template_id": {"type": "integer"},
                "lesson_id": {"type": "integer"},
                "reason": {"type": "string"}
            }
        },
        "ConflictsSummary": {
            "type": "object",
            "properties": {
                "single": {"type": "array", "items": {"$ref": "#/definitions/ConflictEntry"}},
                "shared": {"type": "array", "items": {"$ref": "#/definitions/ConflictEntry"}},
                "total_conflicts": {"type": "integer"},
                "issues": {"type": "array", "items": {"$ref": "#/definitions/QueryIssue"}}
            }
        },
        "CombinedWarnings": {
            "type": "object",
            "properties": {
                "professor_warnings": {"type": "array", "items": {"type": "object"}},
                "subject_warnings": {"type": "array", "items": {"type": "object"}},
                "total_professor_warnings": {"type": "integer"},
                "total_subject_warnings": {"type": "integer"},
                "total_warnings": {"type": "integer"}
            }
        },
        "ScheduleGroups": {
            "type": "object",
            "properties": {
                "groups": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "integer"},
                            "name": {"type": "string"}
                        }
                    }
                }
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
