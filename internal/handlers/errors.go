package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/lumina-studio/gallery-api/internal/domain/booking"
	"github.com/lumina-studio/gallery-api/internal/httperr"
)

var businessMessages = map[string]string{
	"booking_not_found":          "Booking not found.",
	"service_not_found":          "Service not found.",
	"date_fully_booked":          "This date has no free booking slots left.",
	"no_hour_capacity":           "This date has no free session hours left.",
	"invalid_status":             "Unknown booking status.",
	"invalid_status_transition":  "This status change is not allowed.",
	"cannot_cancel_status":       "A booking in this status cannot be cancelled.",
	"booking_already_passed":     "A past booking cannot be cancelled.",
	"cancellation_window_closed": "Cancellation is only possible at least 48 hours before the session.",
	"completed_booking_locked":   "A completed booking cannot be deleted.",
	"invalid_price":              "The agreed price cannot be negative.",
}

// writeBookingError maps domain and business errors onto HTTP outcomes:
// validation 400, not-found 404, state conflicts 409.
func writeBookingError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		httperr.ValidationFailed(c, ve.Fields)
		return
	}

	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	msg := businessMessages[code]

	switch code {
	case "booking_not_found", "service_not_found":
		httperr.NotFound(c, code, msg)
	case "invalid_status", "invalid_price":
		httperr.BadRequest(c, code, msg)
	default:
		httperr.Conflict(c, code, msg)
	}
}
