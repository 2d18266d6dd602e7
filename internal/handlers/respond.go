package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

var messages = map[string]string{
	"missing_fields":               "Required fields are missing.",
	"missing_date":                 "The date query parameter is required.",
	"invalid_date":                 "Date must be YYYY-MM-DD.",
	"invalid_client":               "Client not found.",
	"invalid_service":              "Service not found.",
	"invalid_start_time":           "Start time is not a valid timestamp.",
	"invalid_end_time":             "End time is not a valid timestamp.",
	"invalid_time_range":           "End time must be after start time.",
	"invalid_status":               "Unknown booking status.",
	"end_time_required_for_status": "Confirmed and completed bookings need an end time.",
	"overlap_conflict":             "The booking overlaps an existing one.",
	"invalid_phone":                "Phone number is not valid.",
	"invalid_email":                "Email address is not valid.",
	"invalid_buffer":               "Buffer minutes cannot be negative.",
	"invalid_duration":             "Default duration must be positive.",
	"invalid_locale":               "Locale must be fa or en.",
	"invalid_slug":                 "Slug may only contain lowercase letters, digits and dashes.",
	"duplicate_slug":               "Two sections share the same slug.",
	"unsupported_media_type":       "Only JPEG, PNG, GIF and WebP images are accepted.",
	"file_too_large":               "The file is too large.",
	"invalid_image":                "The image could not be decoded.",
	"invalid_client_status":        "Client status must be active or inactive.",
	"invalid_price":                "Price cannot be negative.",
}

// respondError maps use case errors onto the JSON error shape. Anything that
// is not a known business error is logged and answered with a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error, failCode string, fields ...zap.Field) {
	var overlap *domain.OverlapError
	if errors.As(err, &overlap) {
		c.JSON(http.StatusConflict, gin.H{
			"error":    "overlap_conflict",
			"message":  messages["overlap_conflict"],
			"conflict": overlap.Conflict,
		})
		return
	}

	if httperr.IsBusiness(err, httperr.ErrNotFound.Error()) {
		httperr.NotFound(c, "not_found", "Resource not found.")
		return
	}

	if code, ok := httperr.CodeOf(err); ok {
		if code == "media_storage_disabled" {
			httperr.ServiceUnavailable(c, code, "Media storage is not configured.")
			return
		}
		httperr.BadRequest(c, code, messages[code])
		return
	}

	fields = append(fields,
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(middleware.ContextRequestID)),
	)
	log.Error(failCode, fields...)
	httperr.Internal(c, failCode, err)
}
