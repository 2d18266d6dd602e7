package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Models lists every table owned by AutoMigrate, parents first.
func Models() []any {
	return []any{
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.ServiceBenefit{},
		&models.ServiceStep{},
		&models.ServiceFAQ{},
		&models.Booking{},
		&models.BookingSettings{},
		&models.Translation{},
		&models.HomeContent{},
		&models.HomeStat{},
		&models.HomeFeature{},
		&models.AboutSection{},
		&models.ContactInfo{},
		&models.ContactMessage{},
		&models.Media{},
		&models.AuditLog{},
	}
}

// NewDB opens the Postgres pool, migrates and seeds it.
func NewDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     dates.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	log.Info("database migrated")

	if err := Seed(ctx, db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs AutoMigrate and, on Postgres, the embedded goose migrations
// that install the overlap exclusion constraints.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Seed creates the singleton rows and the first admin account.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings := models.BookingSettings{
			ID:                     models.BookingSettingsID,
			TimeSlots:              datatypes.JSONSlice[string]{},
			BlackoutDates:          datatypes.JSONSlice[string]{},
			DefaultDurationMinutes: 60,
		}
		if err := tx.FirstOrCreate(&settings, models.BookingSettings{ID: models.BookingSettingsID}).Error; err != nil {
			return fmt.Errorf("seed booking settings: %w", err)
		}

		home := models.HomeContent{ID: models.HomeContentID}
		if err := tx.FirstOrCreate(&home, models.HomeContent{ID: models.HomeContentID}).Error; err != nil {
			return fmt.Errorf("seed home content: %w", err)
		}

		contact := models.ContactInfo{ID: models.ContactInfoID}
		if err := tx.FirstOrCreate(&contact, models.ContactInfo{ID: models.ContactInfoID}).Error; err != nil {
			return fmt.Errorf("seed contact info: %w", err)
		}

		if cfg == nil || cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			return nil
		}

		var existing models.User
		err := tx.Where("email = ?", cfg.AdminEmail).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup admin: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin := models.User{
			Name:         "Admin",
			Email:        cfg.AdminEmail,
			PasswordHash: string(hash),
			Role:         "admin",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	})
}
