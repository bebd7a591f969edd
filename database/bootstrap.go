package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"citronix/config"
	"citronix/entities"
	"citronix/pkg/logger"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&entities.Farm{},
		&entities.Field{},
		&entities.Tree{},
		&entities.Harvest{},
		&entities.HarvestDetail{},
		&entities.Sale{},
	}
}

func Open(cfg config.AppConfig, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}
	log.Info("opening database", "driver", cfg.DBDriver, "path", cfg.DBPath, "database_url", cfg.DatabaseURL)

	db, err := gorm.Open(dialector, gormConfig(gormLogger.Warn))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver != config.DriverPostgres {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY inside transactions
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database ready", "driver", cfg.DBDriver)
	return db, nil
}

func gormConfig(level gormLogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		// cascades run explicitly inside the service transaction
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(level),
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// OpenMemory opens a private in-memory sqlite database with the schema applied.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig(gormLogger.Silent))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
