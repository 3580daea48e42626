package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmaier/beerlog-backend/config"
	"github.com/dmaier/beerlog-backend/pkg/logger"
)

// DB is the shared connection handle, set by Initialize.
var DB *gorm.DB

// Initialize opens the postgres connection and configures the pool.
// The gorm query logger stays silent; request logging happens at the
// HTTP layer.
func Initialize(cfg *config.DatabaseConfig) error {
	logger.Info("Connecting to database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
	})

	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = conn
	logger.Info("Database connection established")
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the shared connection handle.
func GetDB() *gorm.DB {
	return DB
}
