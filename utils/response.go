package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse represents the standard API response structure
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a standardized success response
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Created sends a standardized created response (201)
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, message string, err interface{}) {
	ErrorWithKind(c, statusCode, "", message, err)
}

// ErrorWithKind sends an error response carrying a machine-readable kind
func ErrorWithKind(c *gin.Context, statusCode int, kind, message string, err interface{}) {
	response := StandardResponse{
		Status:  "error",
		Message: message,
		Kind:    kind,
	}
	if err != nil {
		response.Data = gin.H{"error": err}
	}
	c.JSON(statusCode, response)
}

// RespondError maps an AppError onto the standard error envelope. Unknown
// errors become opaque 500s so internals never leak to the client.
func RespondError(c *gin.Context, err error) {
	if appErr := GetAppError(err); appErr != nil {
		ErrorWithKind(c, appErr.Code, appErr.Kind, appErr.Message, nil)
		return
	}
	Error(c, http.StatusInternalServerError, ErrInternalServer, nil)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string, err interface{}) {
	ErrorWithKind(c, http.StatusBadRequest, KindValidation, message, err)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	ErrorWithKind(c, http.StatusUnauthorized, KindAuthorization, message, nil)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	ErrorWithKind(c, http.StatusForbidden, KindAuthorization, message, nil)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithKind(c, http.StatusNotFound, KindNotFound, message, nil)
}

// Conflict sends a 409 Conflict response
func Conflict(c *gin.Context, kind, message string) {
	ErrorWithKind(c, http.StatusConflict, kind, message, nil)
}

// ValidationError sends a 422 Unprocessable Entity response
func ValidationError(c *gin.Context, message string, err interface{}) {
	ErrorWithKind(c, http.StatusUnprocessableEntity, KindValidation, message, err)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string, err interface{}) {
	Error(c, http.StatusInternalServerError, message, err)
}
