package storage

import (
	"os"
	"sync"

	"teamboards-backend/internal/config"
	"teamboards-backend/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var log = logger.GetLogger()

var (
	db   *gorm.DB
	once sync.Once
)

// GetDb returns the shared GORM connection. TranslateError is enabled
// so unique constraint violations surface as gorm.ErrDuplicatedKey.
func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	dsn := config.GetEnv().DatabaseDsn

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDb, err := database.DB()
	if err != nil {
		log.Error("Failed to get underlying sql.DB", "error", err)
		os.Exit(1)
	}

	sqlDb.SetMaxOpenConns(20)
	sqlDb.SetMaxIdleConns(5)

	db = database
}
