package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

type MediaHandler struct {
	media *storage.MediaService
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewMediaHandler(media *storage.MediaService, audit *audit.Dispatcher, log *zap.Logger) *MediaHandler {
	return &MediaHandler{media: media, audit: audit, log: log}
}

// Upload takes a multipart "file" field and answers the stored WebP record.
func (h *MediaHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A multipart field named file is required.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_file", "The uploaded file could not be read.")
		return
	}
	defer f.Close()

	m, err := h.media.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		respondError(c, h.log, err, "upload_failed", zap.String("filename", fh.Filename))
		return
	}

	writeAudit(h.audit, c, "media_uploaded", "media", &m.ID, gin.H{"key": m.Key})
	c.JSON(http.StatusCreated, m)
}

func (h *MediaHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	items, err := h.media.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err, "failed_to_list_media")
		return
	}

	httpresp.List(c, items)
}
