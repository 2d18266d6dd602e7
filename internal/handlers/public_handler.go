package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db            *gorm.DB
	content       *content.Store
	createBooking *ucBooking.CreatePublicBooking
	notifier      notify.NotificationSender
	log           *zap.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	store *content.Store,
	createBooking *ucBooking.CreatePublicBooking,
	notifier notify.NotificationSender,
	log *zap.Logger,
) *PublicHandler {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &PublicHandler{
		db:            db,
		content:       store,
		createBooking: createBooking,
		notifier:      notifier,
		log:           log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Benefits", bySortOrder).
		Preload("Steps", bySortOrder).
		Preload("FAQs", bySortOrder)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services := []models.Service{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("published = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&services).Error; err != nil {

		respondError(c, h.log, err, "failed_to_list_services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *PublicHandler) GetService(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var svc models.Service
	err := withChildren(h.db.WithContext(c.Request.Context())).
		Where("slug = ? AND published = ?", slug, true).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_service")
		return
	}

	c.JSON(http.StatusOK, svc)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	var in ucBooking.PublicInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	b, err := h.createBooking.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err, "create_failed", zap.String("start_time", in.StartTime))
		return
	}

	c.JSON(http.StatusCreated, b)
}

////////////////////////////////////////////////////////
// TRANSLATIONS
////////////////////////////////////////////////////////

func (h *PublicHandler) Translations(c *gin.Context) {
	locale := strings.ToLower(strings.TrimSpace(c.Query("locale")))

	values, err := h.content.Translations(c.Request.Context(), locale)
	if err != nil {
		respondError(c, h.log, err, "translations_failed")
		return
	}

	c.Header("Cache-Control", "public, max-age=60")
	c.JSON(http.StatusOK, values)
}

////////////////////////////////////////////////////////
// CONTACT MESSAGES
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateMessage(c *gin.Context) {
	var req PublicMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   validators.NormalizePhone(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Body:    strings.TrimSpace(req.Body),
	}

	if msg.Name == "" || msg.Body == "" {
		httperr.BadRequest(c, "missing_fields", messages["missing_fields"])
		return
	}
	if msg.Email != "" && !validators.IsEmail(msg.Email) {
		httperr.BadRequest(c, "invalid_email", messages["invalid_email"])
		return
	}
	if msg.Phone != "" && !validators.IsPhone(msg.Phone) {
		httperr.BadRequest(c, "invalid_phone", messages["invalid_phone"])
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&msg).Error; err != nil {
		respondError(c, h.log, err, "failed_to_store_message")
		return
	}

	if err := h.notifier.NotifyContactMessage(c.Request.Context(), &msg); err != nil {
		h.log.Warn("contact message notification failed",
			zap.Uint("message_id", msg.ID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusCreated, gin.H{"id": msg.ID})
}
