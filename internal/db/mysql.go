package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/printforge/printforge-backend/internal/config"
	"github.com/printforge/printforge-backend/internal/logger"
)

type MySQLService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMySQLService(cfg config.Config, logg *logger.Logger) (*MySQLService, error) {
	serviceLog := logg.With("service", "MySQLService")

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access MySQL connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &MySQLService{db: gdb, log: serviceLog}, nil
}

func (s *MySQLService) DB() *gorm.DB { return s.db }

func (s *MySQLService) AutoMigrateAll() error {
	s.log.Info("Auto migrating MySQL tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := ApplyMigrations(s.db, s.log); err != nil {
		s.log.Error("Schema step migration failed", "error", err)
		return err
	}
	return nil
}
