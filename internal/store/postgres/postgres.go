package pgstore

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/dwarvesf/funds-backend/internal/utils/config"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

// New opens the postgres pool shared by every store and exits the process
// when the database cannot be reached.
func New(appConfig *config.AppConfig, logger *logger.Logger) *gorm.DB {
	db, err := open(appConfig)
	if err != nil {
		logger.Fatal("[pgstore.New] failed to connect to postgres", map[string]string{
			"host":  appConfig.Postgres.Host,
			"error": err.Error(),
		})
	}

	logger.Info("[pgstore.New] database connected", map[string]string{
		"host":      appConfig.Postgres.Host,
		"name":      appConfig.Postgres.Name,
		"max_open":  fmt.Sprintf("%d", appConfig.Postgres.MaxOpenConns),
		"life_time": appConfig.Postgres.ConnMaxLifetime.String(),
	})
	return db
}

func dsn(c config.DBConnection) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Pass, c.Name, c.Port, c.SSLMode,
	)
}

func open(appConfig *config.AppConfig) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if appConfig.Environment.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn(appConfig.Postgres)), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         gormlogger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if appConfig.Postgres.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(appConfig.Postgres.MaxOpenConns)
	}
	if appConfig.Postgres.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(appConfig.Postgres.MaxIdleConns)
	}
	if appConfig.Postgres.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(appConfig.Postgres.ConnMaxLifetime)
	}
	return db, nil
}
