package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher, log *zap.Logger) *ClientHandler {
	return &ClientHandler{db: db, audit: audit, log: log}
}

type ClientRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

// apply copies the present fields onto client and validates the result.
func (req ClientRequest) apply(client *models.Client) error {
	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = validators.NormalizePhone(*req.Phone)
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Status != nil {
		client.Status = strings.ToLower(strings.TrimSpace(*req.Status))
	}

	if client.Name == "" {
		return httperr.ErrBusiness("missing_fields")
	}
	if client.Email != "" && !validators.IsEmail(client.Email) {
		return httperr.ErrBusiness("invalid_email")
	}
	if client.Phone != "" && !validators.IsPhone(client.Phone) {
		return httperr.ErrBusiness("invalid_phone")
	}
	if client.Status != models.ClientStatusActive && client.Status != models.ClientStatusInactive {
		return httperr.ErrBusiness("invalid_client_status")
	}
	return nil
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))

	q := h.db.WithContext(c.Request.Context())

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	clients := []models.Client{}
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		respondError(c, h.log, err, "failed_to_list_clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) find(c *gin.Context) (*models.Client, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}

	var client models.Client
	err := h.db.WithContext(c.Request.Context()).First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return nil, false
	}
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_client")
		return nil, false
	}
	return &client, true
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	client := models.Client{Status: models.ClientStatusActive}
	if err := req.apply(&client); err != nil {
		respondError(c, h.log, err, "invalid_request")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		respondError(c, h.log, err, "failed_to_create_client")
		return
	}

	writeAudit(h.audit, c, "client_created", "client", &client.ID, nil)
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}
	if err := req.apply(client); err != nil {
		respondError(c, h.log, err, "invalid_request")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(client).Error; err != nil {
		respondError(c, h.log, err, "failed_to_update_client")
		return
	}

	writeAudit(h.audit, c, "client_updated", "client", &client.ID, nil)
	c.JSON(http.StatusOK, client)
}

// Delete refuses clients that still own bookings.
func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var bookings int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Booking{}).
		Where("client_id = ?", client.ID).
		Count(&bookings).Error; err != nil {

		respondError(c, h.log, err, "failed_to_delete_client")
		return
	}
	if bookings > 0 {
		httperr.Conflict(c, "client_has_bookings", "Delete or reassign the client's bookings first.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(client).Error; err != nil {
		if httperr.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "client_has_bookings", "Delete or reassign the client's bookings first.")
			return
		}
		respondError(c, h.log, err, "failed_to_delete_client")
		return
	}

	writeAudit(h.audit, c, "client_deleted", "client", &client.ID, nil)
	c.Status(http.StatusNoContent)
}
