package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/festijeux/market-api/internal/config"
	"github.com/festijeux/market-api/internal/repository/dao"
)

// Open connects to the configured store and migrates the schema.
func Open(conf *config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch conf.Driver {
	case "mysql":
		db, err = OpenMySQL(conf)
	default:
		if conf.URL != "" {
			db, err = OpenPostgresWithURL(conf.URL)
		} else {
			db, err = OpenPostgres(conf)
		}
	}
	if err != nil {
		return nil, err
	}

	if err = configurePool(db, conf); err != nil {
		return nil, err
	}

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("dao.InitTables -> %w", err)
	}

	return db, nil
}

func OpenPostgres(conf *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		conf.Host, conf.User, conf.Password, conf.Name, conf.Port, conf.SSLMode, conf.TimeZone,
	)

	return OpenPostgresWithURL(dsn)
}

func OpenPostgresWithURL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(postgres) -> %w", err)
	}

	return db, nil
}

func OpenMySQL(conf *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := conf.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
			conf.User, conf.Password, conf.Host, conf.Port, conf.Name,
		)
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open(mysql) -> %w", err)
	}

	return db, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			zap.NewStdLog(zap.L().Named("gorm")),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

func configurePool(db *gorm.DB, conf *config.DatabaseConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB -> %w", err)
	}

	sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(conf.ConnMaxLifetime)

	return nil
}
