package database

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open connects to driver/dsn. SQLite is limited to one connection so that
// writers queue instead of failing with "database is locked".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite, "":
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver != DriverMySQL {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenInMemory opens a private in-memory SQLite database with foreign keys
// enforced. Databases with different names never share rows.
func OpenInMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return Open(DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name))
}

// Migrate syncs the schema of every registered model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.WithField("models", len(models.All())).Info("AutoMigrate completed")
	return nil
}
