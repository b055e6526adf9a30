package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDb opens the relational database described by cfg.
func GetDb(cfg StoreConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel()),
	}

	switch cfg.Driver {
	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return nil, err
			}
		}
		logrus.Infof("opening sqlite database %s", cfg.Path)
		return gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires store.dsn")
		}
		logrus.Info("opening postgres database")
		return gorm.Open(postgres.Open(cfg.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("driver %q is not a relational driver", cfg.Driver)
	}
}

// gorm logs through its own logger, keep it quiet unless logrus is verbose
func gormLogLevel() logger.LogLevel {
	switch logrus.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return logger.Info
	case logrus.InfoLevel, logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
