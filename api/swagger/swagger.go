package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassEdgee Scheduler API",
        "description": "Automatic and manual class scheduling for departments",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Automatic schedule generation"},
        {"name": "Manual", "description": "Hand-assembled schedule runs"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/schedule/generate": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Generate a schedule run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Infeasible", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Empty run", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/feasibility": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Check generation feasibility without starting a run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/latest": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Latest schedule run for a section",
                "parameters": [
                    {"name": "sectionId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No run", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/{id}/finalize": {
            "patch": {
                "tags": ["Schedule"],
                "summary": "Finalize a schedule run",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already finalized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/{id}/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Export a schedule run",
                "produces": ["application/json", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered timetable"}
                }
            }
        },
        "/schedule/manual/init": {
            "post": {
                "tags": ["Manual"],
                "summary": "Open a manual scheduling run",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InitManualRunRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/manual/faculty": {
            "get": {
                "tags": ["Manual"],
                "summary": "List eligible faculty with per-slot availability",
                "parameters": [
                    {"name": "runId", "in": "query", "type": "string", "required": true},
                    {"name": "subjectId", "in": "query", "type": "string", "required": true},
                    {"name": "slotId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/manual/rooms": {
            "get": {
                "tags": ["Manual"],
                "summary": "List rooms with per-slot availability",
                "parameters": [
                    {"name": "runId", "in": "query", "type": "string", "required": true},
                    {"name": "slotId", "in": "query", "type": "string", "required": true},
                    {"name": "buildingId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/manual/assign": {
            "post": {
                "tags": ["Manual"],
                "summary": "Commit one manual assignment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CommitAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule/manual/{id}": {
            "get": {
                "tags": ["Manual"],
                "summary": "Run header with its committed assignments",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Manual"],
                "summary": "Discard an abandoned run",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Discarded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Finalized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateScheduleRequest": {
            "type": "object",
            "required": ["departmentId", "academicYear", "semester", "batchYear", "createdBy"],
            "properties": {
                "departmentId": {"type": "string"},
                "academicYear": {"type": "integer"},
                "semester": {"type": "integer"},
                "batchYear": {"type": "integer"},
                "totalWeeks": {"type": "integer"},
                "createdBy": {"type": "string"}
            }
        },
        "InitManualRunRequest": {
            "type": "object",
            "required": ["departmentId", "academicYear", "semester", "batchYear", "sectionId", "createdBy"],
            "properties": {
                "departmentId": {"type": "string"},
                "academicYear": {"type": "integer"},
                "semester": {"type": "integer"},
                "batchYear": {"type": "integer"},
                "sectionId": {"type": "string"},
                "createdBy": {"type": "string"}
            }
        },
        "CommitAssignmentRequest": {
            "type": "object",
            "required": ["runId", "slotId", "facultyId", "roomId", "subjectId", "sectionId"],
            "properties": {
                "runId": {"type": "string"},
                "slotId": {"type": "string"},
                "facultyId": {"type": "string"},
                "roomId": {"type": "string"},
                "subjectId": {"type": "string"},
                "sectionId": {"type": "string"}
            }
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
