package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ContentHandler edits the bilingual site pages. Every write also refreshes
// the flat translation table served to the public site.
type ContentHandler struct {
	store *content.Store
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewContentHandler(store *content.Store, audit *audit.Dispatcher, log *zap.Logger) *ContentHandler {
	return &ContentHandler{store: store, audit: audit, log: log}
}

// ======================================================
// HOME
// ======================================================

func (h *ContentHandler) GetHome(c *gin.Context) {
	home, err := h.store.Home(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_home")
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *ContentHandler) UpdateHome(c *gin.Context) {
	var in models.HomeContent
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	home, err := h.store.UpdateHome(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err, "failed_to_update_home")
		return
	}

	writeAudit(h.audit, c, "content_updated", "home", nil, nil)
	c.JSON(http.StatusOK, home)
}

// ======================================================
// ABOUT
// ======================================================

func (h *ContentHandler) GetAbout(c *gin.Context) {
	sections, err := h.store.About(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_about")
		return
	}
	c.JSON(http.StatusOK, sections)
}

// UpdateAbout takes the complete, ordered list of sections.
func (h *ContentHandler) UpdateAbout(c *gin.Context) {
	var in []models.AboutSection
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Expected an array of sections.")
		return
	}

	sections, err := h.store.UpdateAbout(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err, "failed_to_update_about")
		return
	}

	writeAudit(h.audit, c, "content_updated", "about", nil, gin.H{"sections": len(sections)})
	c.JSON(http.StatusOK, sections)
}

// ======================================================
// CONTACT
// ======================================================

func (h *ContentHandler) GetContact(c *gin.Context) {
	info, err := h.store.Contact(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_contact")
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *ContentHandler) UpdateContact(c *gin.Context) {
	var in models.ContactInfo
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return
	}

	info, err := h.store.UpdateContact(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err, "failed_to_update_contact")
		return
	}

	writeAudit(h.audit, c, "content_updated", "contact", nil, nil)
	c.JSON(http.StatusOK, info)
}
