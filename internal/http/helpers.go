package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookhive/bookhive/internal/auth"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when the request carried no valid token.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// SuccessResponse is the standard envelope for all successful responses.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the standard envelope for all error responses.
// Internal details are logged server-side, never serialized here.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps filtered list data with its total match count.
type ListResponse struct {
	Count int64 `json:"count"`
	Rows  any   `json:"rows"`
}

// --- Success Response Helpers ---

// respondOK sends a 200 OK response with a message and data.
func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message, Data: data})
}

// respondCreated sends a 201 Created response with a message and data.
func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, SuccessResponse{Message: message, Data: data})
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondNotFound sends a 404 Not Found response with a domain message.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: message})
}

// respondUnauthorized sends a 401 Unauthorized response.
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{Message: message})
}

// respondInternalError logs the error and sends a 500 response with a
// generic retry-later message. The underlying error never reaches the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "The request could not be processed. Please try again in a few moments.",
	})
}

// --- Parameter Parsing ---

// parsePositiveInt parses a strictly positive integer from a query value.
func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}
