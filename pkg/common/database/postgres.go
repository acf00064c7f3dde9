package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/synthetica-health/platform/pkg/common/config"
	"github.com/synthetica-health/platform/pkg/common/logger"
)

var (
	pg     *gorm.DB
	pgErr  error
	pgOnce sync.Once
)

// GetPostgres opens the shared gorm handle on first use. Subsequent calls
// return the same handle and the error from the initial attempt.
func GetPostgres() (*gorm.DB, error) {
	pgOnce.Do(func() {
		cfg := config.Load()
		pg, pgErr = gorm.Open(postgres.Open(postgresDSN(cfg)), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if pgErr != nil {
			logger.Log.WithError(pgErr).Error("Failed to connect to PostgreSQL")
			pgErr = fmt.Errorf("connecting to postgres: %w", pgErr)
			return
		}

		sqlDB, err := pg.DB()
		if err == nil {
			sqlDB.SetMaxOpenConns(25)
			sqlDB.SetMaxIdleConns(5)
			sqlDB.SetConnMaxLifetime(time.Hour)
		}

		logger.Log.WithField("database", cfg.PostgresDB).Info("Connected to PostgreSQL")
	})

	return pg, pgErr
}

func postgresDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresDB, cfg.PostgresPort, cfg.PostgresSSLMode,
	)
}

func ClosePostgres() error {
	if pg == nil {
		return nil
	}
	sqlDB, err := pg.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
