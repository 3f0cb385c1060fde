package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/tock/internal/models"
)

// ErrNotFound is returned when a stopwatch or timer does not exist
var ErrNotFound = errors.New("not found")

// Store owns the database connection and the repositories built on it
type Store struct {
	DB          *gorm.DB
	Stopwatches *StopwatchRepository
	Timers      *TimerRepository

	notifier *Notifier
	log      *zap.Logger
}

// Options tweak how Open behaves
type Options struct {
	// WatchFile enables cross-process change notifications via fsnotify
	WatchFile bool
	// Debug turns on gorm SQL logging
	Debug bool
}

// Open sets up the database connection at dbPath and runs migrations
func Open(dbPath string, log *zap.Logger, opts Options) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	logMode := logger.Silent
	if opts.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	notifier := NewNotifier(log)
	if opts.WatchFile {
		if err := notifier.WatchFile(dbPath); err != nil {
			// Live refresh from other processes is a nicety; keep going
			log.Warn("database file watch unavailable", zap.String("path", dbPath), zap.Error(err))
		}
	}

	log.Debug("database opened", zap.String("path", dbPath))

	return &Store{
		DB:          db,
		Stopwatches: NewStopwatchRepository(db, notifier, log),
		Timers:      NewTimerRepository(db, notifier, log),
		notifier:    notifier,
		log:         log,
	}, nil
}

// runMigrations creates/updates the database schema
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Stopwatch{},
		&models.Timer{},
	)
}

// Close stops change notifications and closes the database connection
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	notifyErr := s.notifier.Close()

	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return notifyErr
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
