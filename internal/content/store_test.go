package content

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dbtest"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestStore_UpdateHomeReplacesChildrenAndTranslations(t *testing.T) {
	db := dbtest.Open(t)
	store := NewStore(db)
	ctx := context.Background()

	_, err := store.UpdateHome(ctx, &models.HomeContent{
		HeroTitleEn: "Skin care",
		HeroTitleFa: "مراقبت پوست",
		Stats: []models.HomeStat{
			{Value: "10+", LabelEn: "Years", LabelFa: "سال"},
			{Value: "5k", LabelEn: "Clients"},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	home, err := store.UpdateHome(ctx, &models.HomeContent{
		HeroTitleEn: "Skin care",
		Stats: []models.HomeStat{
			{Value: "12+", LabelEn: "Years"},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if home.HeroTitle != "Skin care" {
		t.Fatalf("canonical should fall back to english, got %q", home.HeroTitle)
	}
	if len(home.Stats) != 1 || home.Stats[0].Value != "12+" {
		t.Fatalf("stats not replaced: %+v", home.Stats)
	}

	fa, err := store.Translations(ctx, LocaleFa)
	if err != nil {
		t.Fatalf("translations: %v", err)
	}
	if _, ok := fa["home.hero.title"]; ok {
		t.Fatalf("cleared persian title still translated")
	}
	if _, ok := fa["home.stats.0.label"]; ok {
		t.Fatalf("cleared persian stat label still translated")
	}

	en, err := store.Translations(ctx, LocaleEn)
	if err != nil {
		t.Fatalf("translations: %v", err)
	}
	if _, ok := en["home.stats.1.label"]; ok {
		t.Fatalf("removed stat still translated")
	}
	if en["home.stats.0.label"] != "Years" {
		t.Fatalf("unexpected map %v", en)
	}
}

func TestStore_UpdateAboutMatchesBySlug(t *testing.T) {
	db := dbtest.Open(t)
	store := NewStore(db)
	ctx := context.Background()

	first, err := store.UpdateAbout(ctx, []models.AboutSection{
		{Slug: "story", TitleFa: "داستان ما"},
		{Slug: "team", TitleEn: "Team"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	storyID := first[0].ID

	second, err := store.UpdateAbout(ctx, []models.AboutSection{
		{Slug: "Story", TitleFa: "داستان ما", BodyFa: "از ۱۳۹۰"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(second) != 1 || second[0].ID != storyID {
		t.Fatalf("story section should be updated in place: %+v", second)
	}
	if second[0].Title != "داستان ما" {
		t.Fatalf("unexpected canonical %q", second[0].Title)
	}

	en, _ := store.Translations(ctx, LocaleEn)
	if _, ok := en["about.sections.team.title"]; ok {
		t.Fatalf("removed section still translated")
	}
}

func TestStore_UpdateAboutRejectsDuplicateSlug(t *testing.T) {
	store := NewStore(dbtest.Open(t))

	_, err := store.UpdateAbout(context.Background(), []models.AboutSection{
		{Slug: "story"},
		{Slug: " STORY "},
	})
	if !httperr.IsBusiness(err, "duplicate_slug") {
		t.Fatalf("expected duplicate_slug, got %v", err)
	}
}

func TestStore_UpdateContactTreatsBareValueAsPersian(t *testing.T) {
	store := NewStore(dbtest.Open(t))
	ctx := context.Background()

	info, err := store.UpdateContact(ctx, &models.ContactInfo{
		Phone:   "+98 21 0000 0000",
		Address: "تهران",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if info.AddressFa != "تهران" || info.Address != "تهران" {
		t.Fatalf("unexpected contact %+v", info)
	}

	fa, _ := store.Translations(ctx, "")
	if fa["contact.address"] != "تهران" {
		t.Fatalf("default locale should be persian: %v", fa)
	}
}

func TestStore_TranslationsRejectsUnknownLocale(t *testing.T) {
	store := NewStore(dbtest.Open(t))

	if _, err := store.Translations(context.Background(), "de"); !httperr.IsBusiness(err, "invalid_locale") {
		t.Fatalf("expected invalid_locale, got %v", err)
	}
}
