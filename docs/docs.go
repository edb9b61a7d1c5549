// Package docs registers the Swagger document served at /swagger/*any.
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
        "/categories": {
            "get": {
                "description": "Lists categories sorted by name, each with the number of games it holds.",
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.CategoryResponse"}}},
                    "500": {"description": "Failed to retrieve categories", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games": {
            "get": {
                "description": "Lists games ordered by id. Both filters are optional and are combined with AND; unknown, negative or out-of-range ids yield an empty list.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "List games",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "category", "in": "query"},
                    {"type": "integer", "description": "Publisher ID", "name": "publisher", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.GameResponse"}}},
                    "400": {"description": "Filter is not an integer", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Failed to retrieve games", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Creates a game. Title, description, category_id and publisher_id are required.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-games"],
                "summary": "Create a new game",
                "parameters": [
                    {"description": "Game Info", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Failed to create game", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{id}": {
            "get": {
                "description": "Retrieves a game with its publisher and category.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get a single game by ID",
                "parameters": [
                    {"type": "integer", "description": "Game ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Failed to retrieve game", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Updates the supplied fields of a game.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-games"],
                "summary": "Update a game",
                "parameters": [
                    {"type": "integer", "description": "Game ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.GameInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Failed to update game", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "delete": {
                "description": "Deletes an existing game.",
                "produces": ["application/json"],
                "tags": ["admin-games"],
                "summary": "Delete a game",
                "parameters": [
                    {"type": "integer", "description": "Game ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Game not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Failed to delete game", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/publishers": {
            "get": {
                "description": "Lists publishers sorted by name, each with the number of games it publishes.",
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "List publishers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.PublisherResponse"}}},
                    "500": {"description": "Failed to retrieve publishers", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.CategoryResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "Plan ahead and outthink your opponents."},
                "game_count": {"type": "integer", "example": 3},
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Strategy"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "An error message"}
            }
        },
        "handler.GameInput": {
            "type": "object",
            "properties": {
                "category_id": {"type": "integer", "example": 1},
                "description": {"type": "string", "minLength": 10, "example": "Build your DevOps pipeline before chaos ensues"},
                "publisher_id": {"type": "integer", "example": 1},
                "star_rating": {"type": "number", "maximum": 5, "minimum": 0, "example": 4.5},
                "title": {"type": "string", "maxLength": 100, "minLength": 2, "example": "Pipeline Panic"}
            }
        },
        "handler.GameResponse": {
            "type": "object",
            "properties": {
                "category": {"$ref": "#/definitions/handler.RefResponse"},
                "description": {"type": "string", "example": "Build your DevOps pipeline before chaos ensues"},
                "id": {"type": "integer", "example": 1},
                "publisher": {"$ref": "#/definitions/handler.RefResponse"},
                "starRating": {"type": "number", "example": 4.5},
                "title": {"type": "string", "example": "Pipeline Panic"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Game 'Pipeline Panic' deleted successfully"}
            }
        },
        "handler.PublisherResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "Tabletop games for people who ship software."},
                "game_count": {"type": "integer", "example": 2},
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "DevGames Inc"}
            }
        },
        "handler.RefResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "name": {"type": "string", "example": "Strategy"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5100",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Tailspin Toys Catalog API",
	Description:      "Read API for the Tailspin Toys crowdfunding game catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
