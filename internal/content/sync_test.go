package content

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dbtest"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func loadRows(t *testing.T, db *gorm.DB) map[rowKey]models.Translation {
	t.Helper()

	var rows []models.Translation
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}

	out := map[rowKey]models.Translation{}
	for _, r := range rows {
		out[rowKey{r.Key, r.Locale}] = r
	}
	return out
}

func TestCanonical_PrefersPersian(t *testing.T) {
	if got := Canonical("Hello", "سلام"); got != "سلام" {
		t.Fatalf("got %q", got)
	}
	if got := Canonical("Hello", "  "); got != "Hello" {
		t.Fatalf("got %q", got)
	}
}

func TestSyncTranslations_WritesBothLocales(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	err := SyncTranslations(ctx, db, []Field{
		{Key: "home.hero.title", En: "Welcome", Fa: "خوش آمدید"},
		{Key: "home.cta.label", En: "Book now"},
	})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	rows := loadRows(t, db)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[rowKey{"home.hero.title", LocaleFa}].Value != "خوش آمدید" {
		t.Fatalf("persian title not stored")
	}
	if _, ok := rows[rowKey{"home.cta.label", LocaleFa}]; ok {
		t.Fatalf("empty value must not create a row")
	}
}

func TestSyncTranslations_SkipsUnchangedAndDeletesEmptied(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	first := []Field{
		{Key: "contact.address", En: "Tehran", Fa: "تهران"},
		{Key: "contact.openingHours", En: "9-18", Fa: "۹ تا ۱۸"},
	}
	if err := SyncTranslations(ctx, db, first); err != nil {
		t.Fatalf("sync: %v", err)
	}

	before := loadRows(t, db)
	stamp := before[rowKey{"contact.address", LocaleEn}].UpdatedAt

	time.Sleep(10 * time.Millisecond)

	second := []Field{
		{Key: "contact.address", En: "Tehran", Fa: "تهران، ونک"},
		{Key: "contact.openingHours", Fa: "۹ تا ۱۸"},
	}
	if err := SyncTranslations(ctx, db, second); err != nil {
		t.Fatalf("sync: %v", err)
	}

	after := loadRows(t, db)
	if !after[rowKey{"contact.address", LocaleEn}].UpdatedAt.Equal(stamp) {
		t.Fatalf("unchanged row was rewritten")
	}
	if after[rowKey{"contact.address", LocaleFa}].Value != "تهران، ونک" {
		t.Fatalf("changed row not updated")
	}
	if _, ok := after[rowKey{"contact.openingHours", LocaleEn}]; ok {
		t.Fatalf("emptied row not deleted")
	}
	if len(after) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(after))
	}
}

func TestSyncTranslations_RollsBackWithTransaction(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	_ = db.Transaction(func(tx *gorm.DB) error {
		if err := SyncTranslations(ctx, tx, []Field{{Key: "home.hero.title", En: "x"}}); err != nil {
			t.Fatalf("sync: %v", err)
		}
		return gorm.ErrInvalidData
	})

	if rows := loadRows(t, db); len(rows) != 0 {
		t.Fatalf("expected rollback, got %d rows", len(rows))
	}
}

func TestSyncTranslationScope_RemovesKeysNoLongerNamed(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	if err := SyncTranslationScope(ctx, db, "about.sections.", []Field{
		{Key: "about.sections.team_a.title", En: "Team"},
		{Key: "about.sections.story.title", En: "Story"},
	}); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if err := SyncTranslations(ctx, db, []Field{{Key: "aboutXsections.other", En: "keep"}}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	if err := SyncTranslationScope(ctx, db, "about.sections.", []Field{
		{Key: "about.sections.story.title", En: "Our story"},
	}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	rows := loadRows(t, db)
	if _, ok := rows[rowKey{"about.sections.team_a.title", LocaleEn}]; ok {
		t.Fatalf("dropped section translation still present")
	}
	if rows[rowKey{"about.sections.story.title", LocaleEn}].Value != "Our story" {
		t.Fatalf("story title not updated")
	}
	if _, ok := rows[rowKey{"aboutXsections.other", LocaleEn}]; !ok {
		t.Fatalf("row outside the scope was removed")
	}
}

func TestPruneTranslations(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	if err := SyncTranslations(ctx, db, []Field{
		{Key: "about.sections.a.title", En: "A"},
		{Key: "about.sections.b.title", En: "B"},
	}); err != nil {
		t.Fatalf("sync: %v", err)
	}

	if err := PruneTranslations(ctx, db, "about.sections.a."); err != nil {
		t.Fatalf("prune: %v", err)
	}

	rows := loadRows(t, db)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row left, got %d", len(rows))
	}
}

func TestValidSlug(t *testing.T) {
	cases := map[string]bool{
		"our-story":  true,
		"laser2":     true,
		"":           false,
		"-lead":      false,
		"trail-":     false,
		"has.dot":    false,
		"Upper":      false,
		"with space": false,
		"persian-فا": false,
	}
	for in, want := range cases {
		if got := ValidSlug(in); got != want {
			t.Fatalf("ValidSlug(%q) = %v, want %v", in, got, want)
		}
	}
}
