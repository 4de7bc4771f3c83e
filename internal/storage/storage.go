package storage

import (
	"sync"

	"tasktracker/internal/config"
	"tasktracker/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		env := config.GetEnv()

		gormConfig := &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		}

		connection, err := gorm.Open(postgres.Open(env.DatabaseDsn), gormConfig)
		if err != nil {
			logger.GetLogger().Error("Failed to connect to database", "error", err)
			panic(err)
		}

		db = connection
	})

	return db
}
