package db

import (
	"littlelemon/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(db); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates tables, foreign keys, constraints, columns and indexes,
// then seeds the role groups the rosters and order logic depend on
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.AuthToken{},
		&domain.Category{},
		&domain.MenuItem{},
		&domain.Cart{},
		&domain.Order{},
		&domain.OrderItem{},
	)
	if err != nil {
		return err
	}
	return SeedGroups(db)
}

// SeedGroups ensures the Manager and Delivery Crew groups exist
func SeedGroups(db *gorm.DB) error {
	for _, name := range []string{domain.GroupManager, domain.GroupDeliveryCrew} {
		group := domain.Group{Name: name}
		// FirstOrCreate keeps reruns idempotent
		if err := db.Where("name = ?", name).FirstOrCreate(&group).Error; err != nil {
			return err
		}
	}
	return nil
}
