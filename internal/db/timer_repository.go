package db

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/tock/internal/models"
)

// TimerRepository persists timers and streams changes to them
type TimerRepository struct {
	db       *gorm.DB
	notifier *Notifier
	log      *zap.Logger
}

// NewTimerRepository creates a repository on db. Writes are announced on notifier.
func NewTimerRepository(db *gorm.DB, notifier *Notifier, log *zap.Logger) *TimerRepository {
	return &TimerRepository{db: db, notifier: notifier, log: log}
}

// GetAll returns every timer ordered by id
func (r *TimerRepository) GetAll(ctx context.Context) ([]models.Timer, error) {
	var timers []models.Timer
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&timers).Error; err != nil {
		return nil, err
	}
	return timers, nil
}

// GetByID returns the timer with id or ErrNotFound
func (r *TimerRepository) GetByID(ctx context.Context, id uint) (*models.Timer, error) {
	var t models.Timer
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// Insert creates the timer when it has no id yet and replaces the stored row otherwise
func (r *TimerRepository) Insert(ctx context.Context, t *models.Timer) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return err
	}
	r.log.Debug("timer saved", zap.Uint("id", t.ID), zap.Bool("running", t.IsRunning))
	r.notifier.Publish()
	return nil
}

// Delete removes the timer. Deleting a missing row is not an error.
func (r *TimerRepository) Delete(ctx context.Context, t *models.Timer) error {
	return r.DeleteMany(ctx, []uint{t.ID})
}

// DeleteMany removes all timers with the given ids
func (r *TimerRepository) DeleteMany(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Delete(&models.Timer{}, ids).Error; err != nil {
		return err
	}
	r.log.Debug("timers deleted", zap.Uints("ids", ids))
	r.notifier.Publish()
	return nil
}

// Watch streams the full timer list, first immediately and then after every change
func (r *TimerRepository) Watch(ctx context.Context) <-chan []models.Timer {
	return watch(ctx, r.notifier, r.log, r.GetAll)
}

// WatchByID streams one timer; nil is sent while it does not exist
func (r *TimerRepository) WatchByID(ctx context.Context, id uint) <-chan *models.Timer {
	return watch(ctx, r.notifier, r.log, func(ctx context.Context) (*models.Timer, error) {
		t, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return t, err
	})
}
