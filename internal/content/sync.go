package content

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	LocaleFa = "fa"
	LocaleEn = "en"

	DefaultLocale = LocaleFa
)

var Locales = []string{LocaleFa, LocaleEn}

// Field is one localized value addressed by a dotted translation key such as
// "home.hero.title".
type Field struct {
	Key string
	En  string
	Fa  string
}

func (f Field) value(locale string) string {
	if locale == LocaleEn {
		return strings.TrimSpace(f.En)
	}
	return strings.TrimSpace(f.Fa)
}

// Canonical is the value stored in the unsuffixed column: Persian when
// present, English otherwise.
func Canonical(en, fa string) string {
	if strings.TrimSpace(fa) != "" {
		return fa
	}
	return en
}

func IsLocale(s string) bool {
	for _, l := range Locales {
		if l == s {
			return true
		}
	}
	return false
}

type rowKey struct {
	key    string
	locale string
}

// SyncTranslations mirrors fields into the translations table using tx,
// so it commits or rolls back with the caller's update. Existing rows are
// loaded once; unchanged values are left alone and emptied values deleted.
func SyncTranslations(ctx context.Context, tx *gorm.DB, fields []Field) error {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}

	var existing []models.Translation
	if err := tx.WithContext(ctx).
		Where("key IN ?", keys).
		Find(&existing).Error; err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	return apply(ctx, tx, existing, fields)
}

// SyncTranslationScope is SyncTranslations for a list-shaped scope: every
// row under prefix that fields no longer names is deleted as well.
func SyncTranslationScope(ctx context.Context, tx *gorm.DB, prefix string, fields []Field) error {
	var existing []models.Translation
	if err := tx.WithContext(ctx).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Find(&existing).Error; err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	return apply(ctx, tx, existing, fields)
}

func apply(ctx context.Context, tx *gorm.DB, existing []models.Translation, fields []Field) error {
	current := make(map[rowKey]models.Translation, len(existing))
	for _, row := range existing {
		current[rowKey{row.Key, row.Locale}] = row
	}

	var created []models.Translation
	seen := make(map[rowKey]bool, len(fields)*len(Locales))

	for _, f := range fields {
		for _, locale := range Locales {
			k := rowKey{f.Key, locale}
			value := f.value(locale)
			row, found := current[k]
			seen[k] = value != ""

			switch {
			case value == "":
			case !found:
				created = append(created, models.Translation{
					Key:    f.Key,
					Locale: locale,
					Value:  value,
				})
			case row.Value != value:
				if err := tx.WithContext(ctx).
					Model(&models.Translation{}).
					Where("id = ?", row.ID).
					Update("value", value).Error; err != nil {
					return fmt.Errorf("update translation %s/%s: %w", f.Key, locale, err)
				}
			}
		}
	}

	var stale []uint
	for k, row := range current {
		if !seen[k] {
			stale = append(stale, row.ID)
		}
	}

	if len(stale) > 0 {
		if err := tx.WithContext(ctx).
			Where("id IN ?", stale).
			Delete(&models.Translation{}).Error; err != nil {
			return fmt.Errorf("delete translations: %w", err)
		}
	}

	if len(created) > 0 {
		if err := tx.WithContext(ctx).Create(&created).Error; err != nil {
			return fmt.Errorf("create translations: %w", err)
		}
	}

	return nil
}

// PruneTranslations removes every row under prefix, e.g. when a section is
// deleted.
func PruneTranslations(ctx context.Context, tx *gorm.DB, prefix string) error {
	return tx.WithContext(ctx).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Delete(&models.Translation{}).Error
}

// Translations returns the flat key/value map of one locale.
func Translations(ctx context.Context, db *gorm.DB, locale string) (map[string]string, error) {
	var rows []models.Translation
	if err := db.WithContext(ctx).
		Where("locale = ?", locale).
		Order("key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`%`, `\%`, `_`, `\_`).Replace(s)
}

// ValidSlug accepts lowercase ASCII letters, digits and inner dashes, which
// keeps slugs safe inside dotted translation keys.
func ValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
