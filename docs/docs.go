// Package docs registers the OpenAPI description served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Health"
                ],
                "summary": "Liveness probe",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/questions": {
            "get": {
                "tags": [
                    "Questions"
                ],
                "summary": "List questions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/question.Question"
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "area",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "topic",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "name": "status",
                        "in": "query",
                        "required": false
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Questions"
                ],
                "summary": "Clear questions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/questions/{id}": {
            "get": {
                "tags": [
                    "Questions"
                ],
                "summary": "Get a question",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/question.Question"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/questions/import": {
            "post": {
                "tags": [
                    "Questions"
                ],
                "summary": "Import questions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/store.UpsertResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "description": "Accepts {\"items\": [...]} or a bare array. Invalid records are skipped and reported, never fatal."
            }
        },
        "/questions/ingest-text": {
            "post": {
                "tags": [
                    "Questions"
                ],
                "summary": "Ingest text blocks",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/store.UpsertResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.IngestTextRequest"
                        }
                    }
                ]
            }
        },
        "/questions/{id}/review": {
            "post": {
                "tags": [
                    "Review"
                ],
                "summary": "Generate deep review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.ReviewResponse"
                        }
                    },
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/service.ReviewResult"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "name": "async",
                        "in": "query",
                        "required": false
                    }
                ]
            },
            "get": {
                "tags": [
                    "Review"
                ],
                "summary": "Get deep review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.ReviewResult"
                        }
                    },
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "$ref": "#/definitions/service.ReviewResult"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Review"
                ],
                "summary": "Cancel pending review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/export": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export all data",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ingest.Export"
                        }
                    }
                }
            }
        },
        "/sets/{collection}": {
            "get": {
                "tags": [
                    "Sets"
                ],
                "summary": "Get favorites or to-review",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SetResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "collection",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/sets/{collection}/{id}/toggle": {
            "post": {
                "tags": [
                    "Sets"
                ],
                "summary": "Toggle membership",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SetResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "collection",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/attempts": {
            "get": {
                "tags": [
                    "Stats"
                ],
                "summary": "List attempts",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/attempt.Attempt"
                            }
                        }
                    }
                }
            }
        },
        "/stats": {
            "get": {
                "tags": [
                    "Stats"
                ],
                "summary": "Performance statistics",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.StatsResponse"
                        }
                    }
                }
            }
        },
        "/stats/frequent-errors": {
            "get": {
                "tags": [
                    "Stats"
                ],
                "summary": "Frequent errors",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/stats.TopicError"
                            }
                        }
                    }
                }
            }
        },
        "/simulation": {
            "get": {
                "tags": [
                    "Simulation"
                ],
                "summary": "Simulation state",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SimulationResponse"
                        }
                    }
                }
            }
        },
        "/simulation/config": {
            "put": {
                "tags": [
                    "Simulation"
                ],
                "summary": "Configure simulation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SimulationResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.ConfigureSimulationRequest"
                        }
                    }
                ]
            }
        },
        "/simulation/start": {
            "post": {
                "tags": [
                    "Simulation"
                ],
                "summary": "Start simulation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SimulationResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/simulation/answer": {
            "post": {
                "tags": [
                    "Simulation"
                ],
                "summary": "Answer simulation question",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SimulationResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.AnswerSimulationRequest"
                        }
                    }
                ]
            }
        },
        "/simulation/finish": {
            "post": {
                "tags": [
                    "Simulation"
                ],
                "summary": "Finish simulation early",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SimulationResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/simulation/reset": {
            "post": {
                "tags": [
                    "Simulation"
                ],
                "summary": "Reset simulation",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.SimulationResponse"
                        }
                    }
                }
            }
        },
        "/study": {
            "get": {
                "tags": [
                    "Study"
                ],
                "summary": "Study state",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/study.View"
                        }
                    }
                }
            }
        },
        "/study/mode": {
            "put": {
                "tags": [
                    "Study"
                ],
                "summary": "Set study mode",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/study.View"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.StudyModeRequest"
                        }
                    }
                ]
            }
        },
        "/study/select": {
            "post": {
                "tags": [
                    "Study"
                ],
                "summary": "Select option",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/study.View"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.StudySelectRequest"
                        }
                    }
                ]
            }
        },
        "/study/confirm": {
            "post": {
                "tags": [
                    "Study"
                ],
                "summary": "Confirm answer",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/study.View"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/study/next": {
            "post": {
                "tags": [
                    "Study"
                ],
                "summary": "Next question",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/study.View"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/study/previous": {
            "post": {
                "tags": [
                    "Study"
                ],
                "summary": "Previous question",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/study.View"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "question.Option": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "question.Question": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                },
                "exam": {
                    "type": "string"
                },
                "area_tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "topic_tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "difficulty": {
                    "type": "string"
                },
                "cognitive_level": {
                    "type": "string"
                },
                "stem": {
                    "type": "string"
                },
                "options": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/question.Option"
                    }
                },
                "answer_type": {
                    "type": "string"
                },
                "answer_key": {
                    "type": "string"
                },
                "rationales": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                },
                "review": {
                    "type": "object"
                },
                "status": {
                    "type": "string"
                },
                "version": {
                    "type": "integer"
                }
            }
        },
        "store.RecordError": {
            "type": "object",
            "properties": {
                "index": {
                    "type": "integer"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "store.UpsertResult": {
            "type": "object",
            "properties": {
                "inserted": {
                    "type": "integer"
                },
                "updated": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/store.RecordError"
                    }
                }
            }
        },
        "ingest.TextBlock": {
            "type": "object",
            "properties": {
                "stem": {
                    "type": "string"
                },
                "options": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/question.Option"
                    }
                },
                "answer_key": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                },
                "exam": {
                    "type": "string"
                },
                "topic_tags": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "area_guess": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "api.IngestTextRequest": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "blocks": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ingest.TextBlock"
                    }
                }
            }
        },
        "api.ReviewResponse": {
            "type": "object",
            "properties": {
                "question_id": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "service.ReviewResult": {
            "type": "object",
            "properties": {
                "question_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "attempt.Attempt": {
            "type": "object",
            "properties": {
                "seq": {
                    "type": "integer"
                },
                "question_id": {
                    "type": "string"
                },
                "correct": {
                    "type": "boolean"
                },
                "areas": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "topic": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                }
            }
        },
        "ingest.Export": {
            "type": "object",
            "properties": {
                "version": {
                    "type": "string"
                },
                "exported_at": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/question.Question"
                    }
                },
                "favorites": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "to_review": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "attempts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/attempt.Attempt"
                    }
                }
            }
        },
        "api.SetResponse": {
            "type": "object",
            "properties": {
                "collection": {
                    "type": "string"
                },
                "ids": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "stats.Tally": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "correct": {
                    "type": "integer"
                }
            }
        },
        "stats.TopicTally": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "correct": {
                    "type": "integer"
                },
                "area": {
                    "type": "string"
                }
            }
        },
        "api.StatsResponse": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "correct": {
                    "type": "integer"
                },
                "accuracy": {
                    "type": "number"
                },
                "by_area": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/stats.Tally"
                    }
                },
                "by_topic": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/stats.TopicTally"
                    }
                }
            }
        },
        "stats.TopicError": {
            "type": "object",
            "properties": {
                "topic": {
                    "type": "string"
                },
                "area": {
                    "type": "string"
                },
                "total": {
                    "type": "integer"
                },
                "correct": {
                    "type": "integer"
                },
                "accuracy": {
                    "type": "number"
                }
            }
        },
        "simulation.Config": {
            "type": "object",
            "properties": {
                "n": {
                    "type": "integer"
                },
                "areas": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "simulation.Result": {
            "type": "object",
            "properties": {
                "correct": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                },
                "percent": {
                    "type": "integer"
                }
            }
        },
        "api.SimulationResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "config": {
                    "$ref": "#/definitions/simulation.Config"
                },
                "total": {
                    "type": "integer"
                },
                "current_index": {
                    "type": "integer"
                },
                "answered": {
                    "type": "integer"
                },
                "empty": {
                    "type": "boolean"
                },
                "question": {
                    "$ref": "#/definitions/question.Question"
                },
                "result": {
                    "$ref": "#/definitions/simulation.Result"
                }
            }
        },
        "api.ConfigureSimulationRequest": {
            "type": "object",
            "properties": {
                "n": {
                    "type": "integer"
                },
                "areas": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "api.AnswerSimulationRequest": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                }
            }
        },
        "study.View": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string"
                },
                "area": {
                    "type": "string"
                },
                "index": {
                    "type": "integer"
                },
                "pool_size": {
                    "type": "integer"
                },
                "empty": {
                    "type": "boolean"
                },
                "question": {
                    "$ref": "#/definitions/question.Question"
                },
                "selected": {
                    "type": "string"
                },
                "confirmed": {
                    "type": "boolean"
                },
                "correct": {
                    "type": "boolean"
                }
            }
        },
        "api.StudyModeRequest": {
            "type": "object",
            "properties": {
                "mode": {
                    "type": "string"
                },
                "area": {
                    "type": "string"
                }
            }
        },
        "api.StudySelectRequest": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "vetqa API",
	Description:      "Veterinary residency exam study backend: question bank, simulations, study sessions and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
