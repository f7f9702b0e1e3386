package database

import (
	"fmt"
	"time"

	"fyyur-service/internal/model"
	"fyyur-service/pkg/config"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and applies the pool settings
func Open(dbConfig *config.DBConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(dbConfig)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(dbConfig.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.Driver == config.DriverSQLite {
		// one writer at a time, otherwise transactions hit SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	}

	return db, nil
}

func dialectorFor(dbConfig *config.DBConfig) (gorm.Dialector, error) {
	switch dbConfig.Driver {
	case config.DriverPostgres, "":
		return postgres.New(postgres.Config{
			DSN:                  dbConfig.GetDSN(),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		}), nil
	case config.DriverMySQL:
		return mysql.Open(dbConfig.GetDSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(dbConfig.GetDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbConfig.Driver)
	}
}

// Migrate creates or updates the venue, artist and show tables
func Migrate(db *gorm.DB, log *zap.Logger) error {
	start := time.Now()
	log.Info("Starting database migration...")

	if err := db.AutoMigrate(&model.Venue{}, &model.Artist{}, &model.Show{}); err != nil {
		log.Error("Database migration failed", zap.Error(err))
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	log.Info("Database migration completed successfully",
		zap.Duration("duration", time.Since(start)))
	return nil
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
