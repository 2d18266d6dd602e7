package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Store reads and writes the bilingual site pages. Every update rewrites the
// page rows and its translations in one transaction.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Localize fills the canonical column from the locale columns. A payload
// carrying only the canonical value is taken as Persian.
func Localize(canonical, en, fa *string) {
	if strings.TrimSpace(*en) == "" && strings.TrimSpace(*fa) == "" {
		*fa = *canonical
	}
	*canonical = Canonical(*en, *fa)
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, id ASC")
}

// ======================================================
// HOME
// ======================================================

func (s *Store) Home(ctx context.Context) (*models.HomeContent, error) {
	return loadHome(ctx, s.db)
}

func loadHome(ctx context.Context, db *gorm.DB) (*models.HomeContent, error) {
	var home models.HomeContent
	err := db.WithContext(ctx).
		Preload("Stats", bySortOrder).
		Preload("Features", bySortOrder).
		First(&home, models.HomeContentID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.HomeContent{
			ID:       models.HomeContentID,
			Stats:    []models.HomeStat{},
			Features: []models.HomeFeature{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &home, nil
}

func (s *Store) UpdateHome(ctx context.Context, in *models.HomeContent) (*models.HomeContent, error) {
	in.ID = models.HomeContentID

	Localize(&in.HeroTitle, &in.HeroTitleEn, &in.HeroTitleFa)
	Localize(&in.HeroSubtitle, &in.HeroSubtitleEn, &in.HeroSubtitleFa)
	Localize(&in.CtaLabel, &in.CtaLabelEn, &in.CtaLabelFa)

	fields := []Field{
		{Key: "home.hero.title", En: in.HeroTitleEn, Fa: in.HeroTitleFa},
		{Key: "home.hero.subtitle", En: in.HeroSubtitleEn, Fa: in.HeroSubtitleFa},
		{Key: "home.cta.label", En: in.CtaLabelEn, Fa: in.CtaLabelFa},
	}

	stats := make([]models.HomeStat, 0, len(in.Stats))
	for i, st := range in.Stats {
		st.ID = 0
		st.HomeContentID = models.HomeContentID
		st.SortOrder = i
		Localize(&st.Label, &st.LabelEn, &st.LabelFa)
		stats = append(stats, st)

		fields = append(fields, Field{
			Key: fmt.Sprintf("home.stats.%d.label", i),
			En:  st.LabelEn,
			Fa:  st.LabelFa,
		})
	}

	features := make([]models.HomeFeature, 0, len(in.Features))
	for i, ft := range in.Features {
		ft.ID = 0
		ft.HomeContentID = models.HomeContentID
		ft.SortOrder = i
		Localize(&ft.Title, &ft.TitleEn, &ft.TitleFa)
		Localize(&ft.Description, &ft.DescriptionEn, &ft.DescriptionFa)
		features = append(features, ft)

		prefix := fmt.Sprintf("home.features.%d.", i)
		fields = append(fields,
			Field{Key: prefix + "title", En: ft.TitleEn, Fa: ft.TitleFa},
			Field{Key: prefix + "description", En: ft.DescriptionEn, Fa: ft.DescriptionFa},
		)
	}

	var out *models.HomeContent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(in).Error; err != nil {
			return err
		}

		if err := tx.Where("home_content_id = ?", models.HomeContentID).
			Delete(&models.HomeStat{}).Error; err != nil {
			return err
		}
		if err := tx.Where("home_content_id = ?", models.HomeContentID).
			Delete(&models.HomeFeature{}).Error; err != nil {
			return err
		}

		if len(stats) > 0 {
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		}
		if len(features) > 0 {
			if err := tx.Create(&features).Error; err != nil {
				return err
			}
		}

		if err := SyncTranslationScope(ctx, tx, "home.", fields); err != nil {
			return err
		}

		var err error
		out, err = loadHome(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ======================================================
// ABOUT
// ======================================================

func (s *Store) About(ctx context.Context) ([]models.AboutSection, error) {
	sections := []models.AboutSection{}
	if err := bySortOrder(s.db.WithContext(ctx)).Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// UpdateAbout replaces the section list. Sections are matched by slug, so a
// renamed slug is a delete plus a create.
func (s *Store) UpdateAbout(ctx context.Context, in []models.AboutSection) ([]models.AboutSection, error) {
	seen := map[string]bool{}
	var fields []Field

	for i := range in {
		sec := &in[i]
		sec.Slug = strings.TrimSpace(strings.ToLower(sec.Slug))
		if !ValidSlug(sec.Slug) {
			return nil, httperr.ErrBusiness("invalid_slug")
		}
		if seen[sec.Slug] {
			return nil, httperr.ErrBusiness("duplicate_slug")
		}
		seen[sec.Slug] = true

		sec.SortOrder = i
		Localize(&sec.Title, &sec.TitleEn, &sec.TitleFa)
		Localize(&sec.Body, &sec.BodyEn, &sec.BodyFa)

		prefix := "about.sections." + sec.Slug + "."
		fields = append(fields,
			Field{Key: prefix + "title", En: sec.TitleEn, Fa: sec.TitleFa},
			Field{Key: prefix + "body", En: sec.BodyEn, Fa: sec.BodyFa},
		)
	}

	var out []models.AboutSection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.AboutSection
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}

		ids := map[string]uint{}
		for _, e := range existing {
			ids[e.Slug] = e.ID
		}

		for i := range in {
			in[i].ID = ids[in[i].Slug]
			if err := tx.Save(&in[i]).Error; err != nil {
				return err
			}
		}

		var removed []uint
		for _, e := range existing {
			if !seen[e.Slug] {
				removed = append(removed, e.ID)
			}
		}
		if len(removed) > 0 {
			if err := tx.Delete(&models.AboutSection{}, removed).Error; err != nil {
				return err
			}
		}

		if err := SyncTranslationScope(ctx, tx, "about.sections.", fields); err != nil {
			return err
		}

		out = []models.AboutSection{}
		return bySortOrder(tx).Find(&out).Error
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ======================================================
// CONTACT
// ======================================================

func (s *Store) Contact(ctx context.Context) (*models.ContactInfo, error) {
	var info models.ContactInfo
	err := s.db.WithContext(ctx).First(&info, models.ContactInfoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ContactInfo{ID: models.ContactInfoID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *Store) UpdateContact(ctx context.Context, in *models.ContactInfo) (*models.ContactInfo, error) {
	in.ID = models.ContactInfoID

	Localize(&in.Address, &in.AddressEn, &in.AddressFa)
	Localize(&in.OpeningHours, &in.OpeningHoursEn, &in.OpeningHoursFa)

	fields := []Field{
		{Key: "contact.address", En: in.AddressEn, Fa: in.AddressFa},
		{Key: "contact.openingHours", En: in.OpeningHoursEn, Fa: in.OpeningHoursFa},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(in).Error; err != nil {
			return err
		}
		return SyncTranslations(ctx, tx, fields)
	})
	if err != nil {
		return nil, err
	}

	return in, nil
}

// ======================================================
// TRANSLATIONS
// ======================================================

func (s *Store) Translations(ctx context.Context, locale string) (map[string]string, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if !IsLocale(locale) {
		return nil, httperr.ErrBusiness("invalid_locale")
	}
	return Translations(ctx, s.db, locale)
}
