package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Stylist{},
		&models.Service{},
		&models.WorkingHours{},
		&models.TimeOff{},
		&models.Customer{},
		&models.Appointment{},
		&models.Payment{},
		&models.TenantSetting{},
		&models.AuditLog{},
	); err != nil {
		logrus.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE tenants
        SET timezone = 'America/Argentina/Buenos_Aires'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
