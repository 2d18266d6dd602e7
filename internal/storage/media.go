package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const MaxUploadBytes = 15 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaService converts uploads to WebP, stores them and records them.
type MediaService struct {
	db       *gorm.DB
	uploader Uploader
}

func NewMediaService(db *gorm.DB, uploader Uploader) *MediaService {
	return &MediaService{db: db, uploader: uploader}
}

func (s *MediaService) Upload(
	ctx context.Context,
	filename string,
	contentType string,
	r io.Reader,
) (*models.Media, error) {

	if s.uploader == nil {
		return nil, httperr.ErrBusiness("media_storage_disabled")
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !imageTypes[contentType] {
		return nil, httperr.ErrBusiness("unsupported_media_type")
	}

	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadBytes {
		return nil, httperr.ErrBusiness("file_too_large")
	}

	img, err := ToWebP(bytes.NewReader(raw), MaxImageWidth)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	now := dates.Now()
	key := fmt.Sprintf("media/%04d/%02d/%s.webp", now.Year(), now.Month(), uuid.NewString())

	url, err := s.uploader.Put(ctx, key, "image/webp", img.Data)
	if err != nil {
		return nil, err
	}

	m := models.Media{
		Key:          key,
		URL:          url,
		ContentType:  "image/webp",
		OriginalName: path.Base(filename),
		Width:        img.Width,
		Height:       img.Height,
		SizeBytes:    int64(len(img.Data)),
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MediaService) List(ctx context.Context, limit int) ([]models.Media, error) {
	items := []models.Media{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
