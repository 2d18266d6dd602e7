package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

type ServiceRequest struct {
	Title     string `json:"title"`
	TitleEn   string `json:"titleEn"`
	TitleFa   string `json:"titleFa"`
	Slug      string `json:"slug"`
	Summary   string `json:"summary"`
	SummaryEn string `json:"summaryEn"`
	SummaryFa string `json:"summaryFa"`

	DurationMinutes *int   `json:"durationMinutes"`
	PriceNote       string `json:"priceNote"`
	ImageURL        string `json:"imageUrl"`
	Published       *bool  `json:"published"`
	SortOrder       int    `json:"sortOrder"`

	Benefits []models.ServiceBenefit `json:"benefits"`
	Steps    []models.ServiceStep    `json:"steps"`
	FAQs     []models.ServiceFAQ     `json:"faqs"`
}

var errSlugTaken = httperr.ErrBusiness("slug_already_exists")

// toModel normalizes the request. Children are renumbered in payload order
// and lose any client supplied ids.
func (req ServiceRequest) toModel() (models.Service, error) {
	svc := models.Service{
		Title:           req.Title,
		TitleEn:         strings.TrimSpace(req.TitleEn),
		TitleFa:         strings.TrimSpace(req.TitleFa),
		Slug:            strings.ToLower(strings.TrimSpace(req.Slug)),
		Summary:         req.Summary,
		SummaryEn:       strings.TrimSpace(req.SummaryEn),
		SummaryFa:       strings.TrimSpace(req.SummaryFa),
		DurationMinutes: req.DurationMinutes,
		PriceNote:       strings.TrimSpace(req.PriceNote),
		ImageURL:        strings.TrimSpace(req.ImageURL),
		Published:       req.Published == nil || *req.Published,
		SortOrder:       req.SortOrder,
	}

	content.Localize(&svc.Title, &svc.TitleEn, &svc.TitleFa)
	content.Localize(&svc.Summary, &svc.SummaryEn, &svc.SummaryFa)

	if strings.TrimSpace(svc.Title) == "" {
		return svc, httperr.ErrBusiness("missing_fields")
	}
	if !content.ValidSlug(svc.Slug) {
		return svc, httperr.ErrBusiness("invalid_slug")
	}
	if svc.DurationMinutes != nil && *svc.DurationMinutes <= 0 {
		return svc, httperr.ErrBusiness("invalid_duration")
	}

	for i, b := range req.Benefits {
		b.ID, b.ServiceID, b.SortOrder = 0, 0, i
		content.Localize(&b.Text, &b.TextEn, &b.TextFa)
		svc.Benefits = append(svc.Benefits, b)
	}
	for i, s := range req.Steps {
		s.ID, s.ServiceID, s.SortOrder = 0, 0, i
		content.Localize(&s.Title, &s.TitleEn, &s.TitleFa)
		content.Localize(&s.Body, &s.BodyEn, &s.BodyFa)
		svc.Steps = append(svc.Steps, s)
	}
	for i, f := range req.FAQs {
		f.ID, f.ServiceID, f.SortOrder = 0, 0, i
		content.Localize(&f.Question, &f.QuestionEn, &f.QuestionFa)
		content.Localize(&f.Answer, &f.AnswerEn, &f.AnswerFa)
		svc.FAQs = append(svc.FAQs, f)
	}

	return svc, nil
}

func servicePrefix(slug string) string {
	return "services." + slug + "."
}

func serviceFields(svc *models.Service) []content.Field {
	p := servicePrefix(svc.Slug)
	fields := []content.Field{
		{Key: p + "title", En: svc.TitleEn, Fa: svc.TitleFa},
		{Key: p + "summary", En: svc.SummaryEn, Fa: svc.SummaryFa},
	}
	for i, b := range svc.Benefits {
		fields = append(fields, content.Field{Key: fmt.Sprintf("%sbenefits.%d", p, i), En: b.TextEn, Fa: b.TextFa})
	}
	for i, s := range svc.Steps {
		fields = append(fields,
			content.Field{Key: fmt.Sprintf("%ssteps.%d.title", p, i), En: s.TitleEn, Fa: s.TitleFa},
			content.Field{Key: fmt.Sprintf("%ssteps.%d.body", p, i), En: s.BodyEn, Fa: s.BodyFa},
		)
	}
	for i, f := range svc.FAQs {
		fields = append(fields,
			content.Field{Key: fmt.Sprintf("%sfaqs.%d.question", p, i), En: f.QuestionEn, Fa: f.QuestionFa},
			content.Field{Key: fmt.Sprintf("%sfaqs.%d.answer", p, i), En: f.AnswerEn, Fa: f.AnswerFa},
		)
	}
	return fields
}

func slugTaken(ctx context.Context, tx *gorm.DB, slug string, exceptID uint) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Service{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&count).Error
	return count > 0, err
}

func deleteServiceChildren(tx *gorm.DB, serviceID uint) error {
	for _, child := range []any{&models.ServiceBenefit{}, &models.ServiceStep{}, &models.ServiceFAQ{}} {
		if err := tx.Where("service_id = ?", serviceID).Delete(child).Error; err != nil {
			return err
		}
	}
	return nil
}

func (h *ServiceHandler) load(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	err := withChildren(h.db.WithContext(ctx)).First(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	return &svc, err
}

func (h *ServiceHandler) bind(c *gin.Context) (models.Service, bool) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed JSON body.")
		return models.Service{}, false
	}
	svc, err := req.toModel()
	if err != nil {
		respondError(c, h.log, err, "invalid_request")
		return models.Service{}, false
	}
	return svc, true
}

func (h *ServiceHandler) respondWriteError(c *gin.Context, err error, failCode string) {
	if errors.Is(err, errSlugTaken) || httperr.IsUniqueViolation(err) {
		httperr.Conflict(c, "slug_already_exists", "Another service already uses this slug.")
		return
	}
	respondError(c, h.log, err, failCode)
}

// --------- Handlers ---------

// List returns every service, published or not, for the admin panel.
func (h *ServiceHandler) List(c *gin.Context) {
	services := []models.Service{}
	if err := withChildren(h.db.WithContext(c.Request.Context())).
		Order("sort_order ASC, id ASC").
		Find(&services).Error; err != nil {

		respondError(c, h.log, err, "failed_to_list_services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc, err := h.load(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_service")
		return
	}

	c.JSON(http.StatusOK, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	svc, ok := h.bind(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slugTaken(ctx, tx, svc.Slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return errSlugTaken
		}

		if err := tx.Create(&svc).Error; err != nil {
			return err
		}
		return content.SyncTranslationScope(ctx, tx, servicePrefix(svc.Slug), serviceFields(&svc))
	})
	if err != nil {
		h.respondWriteError(c, err, "failed_to_create_service")
		return
	}

	writeAudit(h.audit, c, "service_created", "service", &svc.ID, gin.H{"slug": svc.Slug})

	out, err := h.load(ctx, svc.ID)
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_service")
		return
	}
	c.JSON(http.StatusCreated, out)
}

// Update replaces the service and its benefits, steps and FAQ.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	svc, ok := h.bind(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Service
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound
			}
			return err
		}

		taken, err := slugTaken(ctx, tx, svc.Slug, id)
		if err != nil {
			return err
		}
		if taken {
			return errSlugTaken
		}

		if err := deleteServiceChildren(tx, id); err != nil {
			return err
		}

		svc.ID = id
		svc.CreatedAt = current.CreatedAt
		for i := range svc.Benefits {
			svc.Benefits[i].ServiceID = id
		}
		for i := range svc.Steps {
			svc.Steps[i].ServiceID = id
		}
		for i := range svc.FAQs {
			svc.FAQs[i].ServiceID = id
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&svc).Error; err != nil {
			return err
		}

		if current.Slug != svc.Slug {
			if err := content.PruneTranslations(ctx, tx, servicePrefix(current.Slug)); err != nil {
				return err
			}
		}
		return content.SyncTranslationScope(ctx, tx, servicePrefix(svc.Slug), serviceFields(&svc))
	})
	if err != nil {
		h.respondWriteError(c, err, "failed_to_update_service")
		return
	}

	writeAudit(h.audit, c, "service_updated", "service", &id, gin.H{"slug": svc.Slug})

	out, err := h.load(ctx, id)
	if err != nil {
		respondError(c, h.log, err, "failed_to_get_service")
		return
	}
	c.JSON(http.StatusOK, out)
}

// Delete removes the service with its children and translations. Bookings
// keep their rows with the service cleared.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc models.Service
		if err := tx.First(&svc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound
			}
			return err
		}

		if err := deleteServiceChildren(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Booking{}).
			Where("service_id = ?", id).
			Update("service_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&svc).Error; err != nil {
			return err
		}
		return content.PruneTranslations(ctx, tx, servicePrefix(svc.Slug))
	})
	if err != nil {
		respondError(c, h.log, err, "failed_to_delete_service")
		return
	}

	writeAudit(h.audit, c, "service_deleted", "service", &id, nil)
	c.Status(http.StatusNoContent)
}
