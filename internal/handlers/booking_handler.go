package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/report"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	update       *ucBooking.UpdateBooking
	updateStatus *ucBooking.UpdateBookingStatus
	delete       *ucBooking.DeleteBooking
	list         *ucBooking.ListBookings
	log          *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	update *ucBooking.UpdateBooking,
	updateStatus *ucBooking.UpdateBookingStatus,
	del *ucBooking.DeleteBooking,
	list *ucBooking.ListBookings,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		update:       update,
		updateStatus: updateStatus,
		delete:       del,
		list:         list,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context(), c.Query("status"), c.Query("date"))
	if err != nil {
		respondError(c, h.log, err, "list_failed")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var in ucBooking.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, h.log, err, "create_failed", zap.Any("body", in))
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in ucBooking.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), id, in)
	if err != nil {
		respondError(c, h.log, err, "update_failed", zap.Uint("booking_id", id), zap.Any("body", in))
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	b, err := h.updateStatus.Execute(
		c.Request.Context(),
		middleware.UserID(c),
		id,
		strings.TrimSpace(req.Status),
	)
	if err != nil {
		respondError(c, h.log, err, "update_failed", zap.Uint("booking_id", id), zap.String("status", req.Status))
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, h.log, err, "delete_failed", zap.Uint("booking_id", id))
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// EXPORT
// ======================================================

// ExportPDF renders the day sheet for ?date=YYYY-MM-DD, optionally narrowed
// by ?status=.
func (h *BookingHandler) ExportPDF(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, "missing_date", messages["missing_date"])
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), c.Query("status"), date)
	if err != nil {
		respondError(c, h.log, err, "export_failed")
		return
	}

	day, _ := dayQuery(c, "date")
	out, err := report.BookingsPDF(*day, dto.NewBookingList(bookings))
	if err != nil {
		respondError(c, h.log, err, "export_failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings-%s.pdf"`, date))
	c.Data(http.StatusOK, "application/pdf", out)
}
