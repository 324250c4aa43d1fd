package httperr

import (
	"errors"
	"net/http"

	"travel-kernel/internal/pkg/errs"
	"travel-kernel/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeTransaction  = "TRANSACTION_FAILED"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
)

type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details any    `json:"details,omitempty"`
}

type Response struct {
	Status  int  `json:"-"`
	Success bool `json:"success"`
	Error   Body `json:"error"`
}

// ItemDetail explains why one cart item could not be held.
type ItemDetail struct {
	Index     int    `json:"index"`
	ListingID string `json:"listingId"`
	Field     string `json:"field,omitempty"`
	Message   string `json:"message"`
}

// Classify maps an error kind to its HTTP status and envelope code.
func Classify(err error) (int, string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errs.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errs.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errs.Is(err, errs.ErrUnavailable):
		return http.StatusServiceUnavailable, CodeUnavailable
	case errs.Is(err, errs.ErrTransaction):
		return http.StatusInternalServerError, CodeTransaction
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// Abort writes the envelope for err, deriving status, code and field from it.
// Server-side failures never expose their message.
func Abort(c *gin.Context, err error) {
	status, code := Classify(err)
	body := Body{Code: code, Message: err.Error()}
	if status >= http.StatusInternalServerError {
		body.Message = http.StatusText(status)
	}
	if ve, ok := errs.AsValidation(err); ok {
		body.Field = ve.Field
		body.Message = ve.Message
	}

	var holdErr *commands.HoldError
	if errors.As(err, &holdErr) {
		status, body.Code, body.Field = http.StatusBadRequest, CodeValidation, ""
		for _, it := range holdErr.Items {
			if s, c := Classify(it.Err); s >= http.StatusInternalServerError {
				status, body.Code = s, c
				break
			}
		}
		body.Message = "one or more cart items could not be reserved"
		body.Details = holdDetails(holdErr)
	}
	abort(c, status, err, body)
}

// AbortWithError writes an envelope with an explicit status and message,
// for failures detected by the handler itself.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	_, code := Classify(err)
	if status == http.StatusBadRequest {
		code = CodeValidation
	}
	abort(c, status, err, Body{Code: code, Message: msg, Details: detail})
}

// preserves original error for the logging middleware
func abort(c *gin.Context, status int, err error, body Body) {
	resp := Response{Status: status, Error: body}
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func holdDetails(e *commands.HoldError) []ItemDetail {
	out := make([]ItemDetail, 0, len(e.Items))
	for _, it := range e.Items {
		d := ItemDetail{Index: it.Index, ListingID: it.ListingID, Message: it.Err.Error()}
		if ve, ok := errs.AsValidation(it.Err); ok {
			d.Field = ve.Field
			d.Message = ve.Message
		} else if status, _ := Classify(it.Err); status >= http.StatusInternalServerError {
			d.Message = http.StatusText(status)
		}
		out = append(out, d)
	}
	return out
}
