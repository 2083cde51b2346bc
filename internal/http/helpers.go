package http

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-delivery/internal/delivery"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var (
	notFoundResponse    = errorResponse{Error: "page not found", Code: "PAGE_UNAVAILABLE"}
	rateLimitedResponse = errorResponse{Error: "rate limit exceeded", Code: "RATE_LIMITED"}
	badRequestResponse  = errorResponse{Error: "invalid request", Code: "BAD_REQUEST"}
	internalResponse    = errorResponse{Error: "internal error", Code: "INTERNAL"}
)

// mapError turns a delivery error into a status and body. Internal details
// never reach the response.
func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, internalResponse
	}
	if delivery.IsPageUnavailable(err) {
		return http.StatusNotFound, notFoundResponse
	}
	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, badRequestResponse
	}
	return http.StatusInternalServerError, internalResponse
}
