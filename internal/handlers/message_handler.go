package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type MessageHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMessageHandler(db *gorm.DB, log *zap.Logger) *MessageHandler {
	return &MessageHandler{db: db, log: log}
}

// List pages through contact messages, newest first. ?unread=true hides the
// ones already read.
func (h *MessageHandler) List(c *gin.Context) {
	page, limit, offset := pageParams(c, 50, 200)

	q := h.db.WithContext(c.Request.Context()).Model(&models.ContactMessage{})
	if c.Query("unread") == "true" {
		q = q.Where("read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, h.log, err, "failed_to_count_messages")
		return
	}

	items := []models.ContactMessage{}
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {

		respondError(c, h.log, err, "failed_to_list_messages")
		return
	}

	httpresp.Page(c, items, page, limit, total)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		respondError(c, h.log, res.Error, "failed_to_update_message")
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "message_not_found"})
		return
	}

	c.Status(http.StatusNoContent)
}
