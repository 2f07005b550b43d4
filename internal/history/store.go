package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when no record exists for a given identifier.
	ErrNotFound = errors.New("search record not found")

	// ErrInvalidID is returned when an identifier is not syntactically valid.
	// The database is not touched in that case.
	ErrInvalidID = errors.New("invalid record identifier")
)

// Store persists SearchRecords. The underlying *gorm.DB is opened once at
// startup and shared by all requests.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// Open connects to the database described by dsn and migrates the schema.
// A DSN of the form user:pass@tcp(host:port)/db selects MySQL; anything else
// is treated as a SQLite path (":memory:" works for tests).
func Open(dsn string, log *slog.Logger) (*Store, error) {
	dialector := sqlite.Open(dsn)
	if strings.Contains(dsn, "@tcp(") {
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&SearchRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Create inserts a new record for city. A zero `at` defaults to now. Repeated
// cities always produce independent records.
func (s *Store) Create(ctx context.Context, city string, at time.Time) (*SearchRecord, error) {
	rec := &SearchRecord{City: city, Date: at}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to save search record: %w", err)
	}

	s.log.Debug("search recorded", "id", rec.ID, "city", rec.City)
	return rec, nil
}

// ListRecent returns up to limit records ordered by date descending.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]SearchRecord, error) {
	records := make([]SearchRecord, 0, limit)
	err := s.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list search records: %w", err)
	}
	return records, nil
}

// DeleteByID removes the record with the given identifier. The identifier is
// validated before any storage access.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	res := s.db.WithContext(ctx).Delete(&SearchRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete search record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.log.Debug("search deleted", "id", id)
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
