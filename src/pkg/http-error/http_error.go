package httperror

import (
	"errors"
	"net/http"
	"strings"
)

// HTTPError is implemented by every error a usecase hands back to delivery.
type HTTPError interface {
	error
	StatusCode() int
}

type BadRequest struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func NewBadRequest() *BadRequest {
	return &BadRequest{Code: http.StatusBadRequest, Message: "Bad Request"}
}

// NewValidationError lists every violation, not only the first.
func NewValidationError(details []string) *BadRequest {
	return &BadRequest{
		Code:    http.StatusBadRequest,
		Message: "validation error: " + strings.Join(details, "; "),
		Details: details,
	}
}

func (e *BadRequest) Error() string   { return e.Message }
func (e *BadRequest) StatusCode() int { return e.Code }

type NotFound struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewNotFound() *NotFound {
	return &NotFound{Code: http.StatusNotFound, Message: "Not Found"}
}

func (e *NotFound) Error() string   { return e.Message }
func (e *NotFound) StatusCode() int { return e.Code }

type Conflict struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewConflict() *Conflict {
	return &Conflict{Code: http.StatusConflict, Message: "Conflict"}
}

func (e *Conflict) Error() string   { return e.Message }
func (e *Conflict) StatusCode() int { return e.Code }

type InternalServerError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewInternalServerError() *InternalServerError {
	return &InternalServerError{Code: http.StatusInternalServerError, Message: "Internal Server Error"}
}

func (e *InternalServerError) Error() string   { return e.Message }
func (e *InternalServerError) StatusCode() int { return e.Code }

// UploadError reports a failed call to object storage.
type UploadError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewUploadError() *UploadError {
	return &UploadError{Code: http.StatusBadGateway, Message: "failed to upload file"}
}

func (e *UploadError) Error() string   { return e.Message }
func (e *UploadError) StatusCode() int { return e.Code }

// NotifyError reports a failed notification. When Committed is set the
// business write already stands and Data carries its result.
type NotifyError struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Committed bool        `json:"committed"`
	Data      interface{} `json:"-"`
}

func NewNotifyError() *NotifyError {
	return &NotifyError{Code: http.StatusBadGateway, Message: "failed to send notification"}
}

// NewCommittedNotifyError is a partial success: data persisted, notification lost.
func NewCommittedNotifyError(data interface{}) *NotifyError {
	return &NotifyError{
		Code:      http.StatusMultiStatus,
		Message:   "saved, but failed to send notification",
		Committed: true,
		Data:      data,
	}
}

func (e *NotifyError) Error() string   { return e.Message }
func (e *NotifyError) StatusCode() int { return e.Code }

// As extracts the typed error from a wrapped chain.
func As(err error) (HTTPError, bool) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsCommitted reports whether err is a notify failure after a successful commit.
func IsCommitted(err error) bool {
	var notifyErr *NotifyError
	return errors.As(err, &notifyErr) && notifyErr.Committed
}
