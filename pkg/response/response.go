package response

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API answer. Code is 0 on success
// and the HTTP status otherwise.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError is an error that knows its HTTP status.
type AppError struct {
	HTTPStatus int
	Code       int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewError builds an AppError whose code mirrors the status.
func NewError(status int, msg string) *AppError {
	return &AppError{HTTPStatus: status, Code: status, Message: msg}
}

func ok(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: 0, Message: message, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Code: status, Message: msg})
}

func Success(c *gin.Context, data interface{}) { ok(c, http.StatusOK, "ok", data) }
func Created(c *gin.Context, data interface{}) { ok(c, http.StatusCreated, "created", data) }

// Accepted answers a write whose persistence is queued but not confirmed.
func Accepted(c *gin.Context, data interface{}) { ok(c, http.StatusAccepted, "accepted", data) }

// Error writes err as an envelope. An *AppError anywhere in the chain sets
// the status; anything else is a 500 carrying the error text.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{Code: appErr.Code, Message: appErr.Message})
		return
	}
	fail(c, http.StatusInternalServerError, err.Error())
}

// Attachment serves body as a download named filename. Non-ASCII names are
// sent in the RFC 6266 filename* form as well.
func Attachment(c *gin.Context, filename, contentType string, body []byte) {
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, contentType, body)
}

func BadRequest(c *gin.Context, msg string)      { fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string)    { fail(c, http.StatusUnauthorized, msg) }
func NotFound(c *gin.Context, msg string)        { fail(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)        { fail(c, http.StatusConflict, msg) }
func TooManyRequests(c *gin.Context, msg string) { fail(c, http.StatusTooManyRequests, msg) }
func ServerError(c *gin.Context, msg string)     { fail(c, http.StatusInternalServerError, msg) }
