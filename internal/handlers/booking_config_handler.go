package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

type BookingConfigHandler struct {
	get          *ucBooking.GetSettings
	save         *ucBooking.SaveSettings
	availability *ucBooking.GetAvailability
	log          *zap.Logger
}

func NewBookingConfigHandler(
	get *ucBooking.GetSettings,
	save *ucBooking.SaveSettings,
	availability *ucBooking.GetAvailability,
	log *zap.Logger,
) *BookingConfigHandler {
	return &BookingConfigHandler{
		get:          get,
		save:         save,
		availability: availability,
		log:          log,
	}
}

// Get answers {} until the settings are saved for the first time.
func (h *BookingConfigHandler) Get(c *gin.Context) {
	s, err := h.get.Execute(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "settings_failed")
		return
	}
	if s == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *BookingConfigHandler) Save(c *gin.Context) {
	var in ucBooking.SettingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	s, err := h.save.Execute(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, h.log, err, "settings_failed")
		return
	}

	c.JSON(http.StatusOK, s)
}

// Availability lists the free "HH:MM" slots of ?date=, for ?serviceId= when
// given.
func (h *BookingConfigHandler) Availability(c *gin.Context) {
	serviceID, ok := optionalID(c, "serviceId")
	if !ok {
		httperr.BadRequest(c, "invalid_service", messages["invalid_service"])
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), c.Query("date"), serviceID)
	if err != nil {
		respondError(c, h.log, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, slots)
}
