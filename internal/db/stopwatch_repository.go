package db

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/tock/internal/models"
)

// StopwatchRepository persists stopwatches and streams changes to them
type StopwatchRepository struct {
	db       *gorm.DB
	notifier *Notifier
	log      *zap.Logger
}

// NewStopwatchRepository creates a repository on db. Writes are announced on notifier.
func NewStopwatchRepository(db *gorm.DB, notifier *Notifier, log *zap.Logger) *StopwatchRepository {
	return &StopwatchRepository{db: db, notifier: notifier, log: log}
}

// GetAll returns every stopwatch ordered by id
func (r *StopwatchRepository) GetAll(ctx context.Context) ([]models.Stopwatch, error) {
	var stopwatches []models.Stopwatch
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&stopwatches).Error; err != nil {
		return nil, err
	}
	return stopwatches, nil
}

// GetByID returns the stopwatch with id or ErrNotFound
func (r *StopwatchRepository) GetByID(ctx context.Context, id uint) (*models.Stopwatch, error) {
	var sw models.Stopwatch
	if err := r.db.WithContext(ctx).First(&sw, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sw, nil
}

// Insert creates the stopwatch when it has no id yet and replaces the stored row otherwise
func (r *StopwatchRepository) Insert(ctx context.Context, sw *models.Stopwatch) error {
	if err := r.db.WithContext(ctx).Save(sw).Error; err != nil {
		return err
	}
	r.log.Debug("stopwatch saved", zap.Uint("id", sw.ID), zap.Bool("running", sw.IsRunning()))
	r.notifier.Publish()
	return nil
}

// Delete removes the stopwatch. Deleting a missing row is not an error.
func (r *StopwatchRepository) Delete(ctx context.Context, sw *models.Stopwatch) error {
	return r.DeleteMany(ctx, []uint{sw.ID})
}

// DeleteMany removes all stopwatches with the given ids
func (r *StopwatchRepository) DeleteMany(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&models.Stopwatch{}, ids).Error; err != nil {
		return err
	}
	r.log.Debug("stopwatches deleted", zap.Uints("ids", ids))
	r.notifier.Publish()
	return nil
}

// Watch streams the full stopwatch list, first immediately and then after every change
func (r *StopwatchRepository) Watch(ctx context.Context) <-chan []models.Stopwatch {
	return watch(ctx, r.notifier, r.log, r.GetAll)
}

// WatchByID streams one stopwatch; nil is sent while it does not exist
func (r *StopwatchRepository) WatchByID(ctx context.Context, id uint) <-chan *models.Stopwatch {
	return watch(ctx, r.notifier, r.log, func(ctx context.Context) (*models.Stopwatch, error) {
		sw, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return sw, err
	})
}
