package client

import (
	"fmt"
	"strings"
	"time"

	"birthday-song-service/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const mysqlScheme = "mysql://"

// InitDBClient opens the order store and migrates it. A mysql:// URL selects
// MySQL, anything else is treated as a SQLite path or DSN.
func InitDBClient(databaseURL string) (*gorm.DB, error) {
	dialector := sqlite.Open(databaseURL)
	if dsn, ok := strings.CutPrefix(databaseURL, mysqlScheme); ok {
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(model.AllTables()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
