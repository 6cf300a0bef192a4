package database

import (
	"fmt"
	"log/slog"
	"time"

	"bookshelf/internal/config"
	"bookshelf/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models in migration order. Parents come before the tables referencing them.
var Models = []any{
	&models.User{},
	&models.Shelf{},
	&models.Review{},
	&models.Like{},
	&models.Task{},
}

// ConnectDB opens the Postgres connection pool through gorm.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormLog := gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("Connected to the database successfully")
	return db, nil
}

// Migrate creates or updates the schema, including foreign keys with
// ON DELETE CASCADE, the likes (user_id, review_id) unique index and the
// category/rate CHECK constraints.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
