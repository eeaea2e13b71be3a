package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DocsController serves the machine-readable API schema.
type DocsController struct {
	document gin.H
}

// NewDocsController builds the OpenAPI document once at startup.
func NewDocsController(version string) *DocsController {
	return &DocsController{document: buildOpenAPIDocument(version)}
}

// Schema serves the OpenAPI 3.0 document.
// GET /api-docs
func (dc *DocsController) Schema(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, dc.document)
}

func buildOpenAPIDocument(version string) gin.H {
	bearerSecurity := []gin.H{{"bearerAuth": []string{}}}

	envelope := func(dataRef string) gin.H {
		return gin.H{
			"type": "object",
			"properties": gin.H{
				"message": gin.H{"type": "string"},
				"data":    gin.H{"$ref": dataRef},
			},
		}
	}
	listEnvelope := func(itemRef string) gin.H {
		return gin.H{
			"type": "object",
			"properties": gin.H{
				"message": gin.H{"type": "string"},
				"data": gin.H{
					"type":  "array",
					"items": gin.H{"$ref": itemRef},
				},
			},
		}
	}

	crudPaths := func(tag, listRef, itemRef string, withUpdate bool) (collection gin.H, item gin.H) {
		collection = gin.H{
			"get": gin.H{
				"tags":     []string{tag},
				"security": bearerSecurity,
				"responses": gin.H{
					"200": gin.H{
						"description": "The list has been retrieved.",
						"content":     gin.H{"application/json": gin.H{"schema": listEnvelope(listRef)}},
					},
				},
			},
			"post": gin.H{
				"tags":     []string{tag},
				"security": bearerSecurity,
				"requestBody": gin.H{
					"required": true,
					"content":  gin.H{"application/json": gin.H{"schema": gin.H{"$ref": itemRef}}},
				},
				"responses": gin.H{
					"201": gin.H{"description": "Created.", "content": gin.H{"application/json": gin.H{"schema": envelope(itemRef)}}},
					"400": gin.H{"description": "Validation error."},
				},
			},
		}
		idParam := []gin.H{{
			"in":       "path",
			"name":     "id",
			"required": true,
			"schema":   gin.H{"type": "integer"},
		}}
		item = gin.H{
			"get": gin.H{
				"tags":       []string{tag},
				"security":   bearerSecurity,
				"parameters": idParam,
				"responses": gin.H{
					"200": gin.H{"description": "Retrieved.", "content": gin.H{"application/json": gin.H{"schema": envelope(itemRef)}}},
					"404": gin.H{"description": "Not found."},
				},
			},
			"delete": gin.H{
				"tags":       []string{tag},
				"security":   bearerSecurity,
				"parameters": idParam,
				"responses": gin.H{
					"200": gin.H{"description": "Deleted; prior representation returned."},
					"404": gin.H{"description": "Not found."},
				},
			},
		}
		if withUpdate {
			item["put"] = gin.H{
				"tags":       []string{tag},
				"security":   bearerSecurity,
				"parameters": idParam,
				"requestBody": gin.H{
					"required": true,
					"content":  gin.H{"application/json": gin.H{"schema": gin.H{"$ref": itemRef}}},
				},
				"responses": gin.H{
					"200": gin.H{"description": "Updated."},
					"404": gin.H{"description": "Not found."},
				},
			}
		}
		return collection, item
	}

	booksCollection, booksItem := crudPaths("Books", "#/components/schemas/Book", "#/components/schemas/Book", true)
	// Book list is public and supports title search.
	booksCollection["get"] = gin.H{
		"tags": []string{"Books"},
		"parameters": []gin.H{
			{"in": "query", "name": "title", "schema": gin.H{"type": "string", "minLength": 2}},
			{"in": "query", "name": "limit", "schema": gin.H{"type": "integer", "default": defaultSearchLimit}},
		},
		"responses": gin.H{
			"200": gin.H{
				"description": "The list of books, or count/rows when filtered.",
				"content":     gin.H{"application/json": gin.H{"schema": listEnvelope("#/components/schemas/Book")}},
			},
			"400": gin.H{"description": "Search term shorter than 2 characters."},
		},
	}
	authorsCollection, authorsItem := crudPaths("Authors", "#/components/schemas/Author", "#/components/schemas/Author", true)
	categoriesCollection, categoriesItem := crudPaths("Categories", "#/components/schemas/Category", "#/components/schemas/Category", false)

	nestedList := func(tag, itemRef, description string) gin.H {
		return gin.H{
			"get": gin.H{
				"tags":     []string{tag},
				"security": bearerSecurity,
				"parameters": []gin.H{{
					"in":       "path",
					"name":     "id",
					"required": true,
					"schema":   gin.H{"type": "integer"},
				}},
				"responses": gin.H{
					"200": gin.H{
						"description": description,
						"content":     gin.H{"application/json": gin.H{"schema": listEnvelope(itemRef)}},
					},
					"404": gin.H{"description": "Parent resource not found."},
				},
			},
		}
	}

	commentsPath := nestedList("Comments", "#/components/schemas/Comment", "Comments for the book.")
	commentsPath["post"] = gin.H{
		"tags":     []string{"Comments"},
		"security": bearerSecurity,
		"requestBody": gin.H{
			"required": true,
			"content":  gin.H{"application/json": gin.H{"schema": gin.H{"$ref": "#/components/schemas/Comment"}}},
		},
		"responses": gin.H{"201": gin.H{"description": "Created."}},
	}
	notesPath := nestedList("Notes", "#/components/schemas/Note", "Review notes for the book.")
	notesPath["post"] = gin.H{
		"tags":     []string{"Notes"},
		"security": bearerSecurity,
		"requestBody": gin.H{
			"required": true,
			"content":  gin.H{"application/json": gin.H{"schema": gin.H{"$ref": "#/components/schemas/Note"}}},
		},
		"responses": gin.H{"201": gin.H{"description": "Created."}},
	}

	credentials := gin.H{
		"type":     "object",
		"required": []string{"username", "password"},
		"properties": gin.H{
			"username": gin.H{"type": "string"},
			"password": gin.H{"type": "string"},
		},
	}

	return gin.H{
		"openapi": "3.0.3",
		"info": gin.H{
			"title":       "BookHive API",
			"description": "A community book catalog: books, authors, categories, comments, and review notes.",
			"version":     version,
		},
		"paths": gin.H{
			"/api/register": gin.H{
				"post": gin.H{
					"tags":        []string{"Auth"},
					"requestBody": gin.H{"required": true, "content": gin.H{"application/json": gin.H{"schema": credentials}}},
					"responses": gin.H{
						"201": gin.H{"description": "User created; token returned."},
						"400": gin.H{"description": "Validation error or duplicate username."},
					},
				},
			},
			"/api/login": gin.H{
				"post": gin.H{
					"tags":        []string{"Auth"},
					"requestBody": gin.H{"required": true, "content": gin.H{"application/json": gin.H{"schema": credentials}}},
					"responses": gin.H{
						"200": gin.H{"description": "Logged in; token returned."},
						"401": gin.H{"description": "Wrong password."},
						"404": gin.H{"description": "Unknown username."},
					},
				},
			},
			"/api/books":                 booksCollection,
			"/api/books/{id}":            booksItem,
			"/api/books/{id}/comments":   commentsPath,
			"/api/books/{id}/notes":      notesPath,
			"/api/authors":               authorsCollection,
			"/api/authors/{id}":          authorsItem,
			"/api/authors/{id}/books":    nestedList("Authors", "#/components/schemas/Book", "Books by the author."),
			"/api/categories":            categoriesCollection,
			"/api/categories/{id}":       categoriesItem,
			"/api/categories/{id}/books": nestedList("Categories", "#/components/schemas/Book", "Books in the category."),
			"/api/users": gin.H{
				"get": gin.H{
					"tags":     []string{"Users"},
					"security": bearerSecurity,
					"responses": gin.H{
						"200": gin.H{"description": "All registered users."},
					},
				},
			},
			"/api/users/{id}": gin.H{
				"get": gin.H{
					"tags":     []string{"Users"},
					"security": bearerSecurity,
					"parameters": []gin.H{{
						"in":       "path",
						"name":     "id",
						"required": true,
						"schema":   gin.H{"type": "integer"},
					}},
					"responses": gin.H{
						"200": gin.H{"description": "The user."},
						"404": gin.H{"description": "Not found."},
					},
				},
			},
		},
		"components": gin.H{
			"securitySchemes": gin.H{
				"bearerAuth": gin.H{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
			"schemas": gin.H{
				"Book": gin.H{
					"type": "object",
					"properties": gin.H{
						"id":                  gin.H{"type": "integer", "readOnly": true},
						"title":               gin.H{"type": "string"},
						"number_of_pages":     gin.H{"type": "integer"},
						"extract":             gin.H{"type": "string"},
						"summary":             gin.H{"type": "string"},
						"name_editor":         gin.H{"type": "string"},
						"cover_image":         gin.H{"type": "string"},
						"year_of_publication": gin.H{"type": "integer"},
						"average_of_reviews":  gin.H{"type": "number", "readOnly": true},
						"user_id":             gin.H{"type": "integer", "readOnly": true},
						"category_id":         gin.H{"type": "integer"},
						"author_id":           gin.H{"type": "integer"},
					},
				},
				"Author": gin.H{
					"type": "object",
					"properties": gin.H{
						"id":        gin.H{"type": "integer", "readOnly": true},
						"name":      gin.H{"type": "string"},
						"firstname": gin.H{"type": "string"},
					},
				},
				"Category": gin.H{
					"type": "object",
					"properties": gin.H{
						"id":   gin.H{"type": "integer", "readOnly": true},
						"name": gin.H{"type": "string"},
					},
				},
				"Comment": gin.H{
					"type": "object",
					"properties": gin.H{
						"id":      gin.H{"type": "integer", "readOnly": true},
						"content": gin.H{"type": "string"},
						"book_id": gin.H{"type": "integer", "readOnly": true},
						"user_id": gin.H{"type": "integer", "readOnly": true},
					},
				},
				"Note": gin.H{
					"type": "object",
					"properties": gin.H{
						"id":      gin.H{"type": "integer", "readOnly": true},
						"value":   gin.H{"type": "number", "minimum": 0, "maximum": 5},
						"book_id": gin.H{"type": "integer", "readOnly": true},
						"user_id": gin.H{"type": "integer", "readOnly": true},
					},
				},
				"User": gin.H{
					"type": "object",
					"properties": gin.H{
						"id":                 gin.H{"type": "integer", "readOnly": true},
						"username":           gin.H{"type": "string"},
						"is_admin":           gin.H{"type": "boolean"},
						"join_date":          gin.H{"type": "string", "format": "date-time"},
						"number_of_books":    gin.H{"type": "integer"},
						"number_of_reviews":  gin.H{"type": "integer"},
						"number_of_comments": gin.H{"type": "integer"},
					},
				},
			},
		},
	}
}
