package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/tock/internal/models"
	"github.com/balkashynov/tock/internal/tracking"
)

// CreateTimer stores a new stopped timer set to req.Duration. With req.Start
// it is toggled on right away.
func (s *Store) CreateTimer(ctx context.Context, req CreateTimerRequest, now time.Time) (*models.Timer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = defaultName("Timer", now)
	}

	t := models.Timer{
		Name:                  req.Name,
		InitialDurationMillis: req.Duration.Milliseconds(),
		RemainingTimeMillis:   req.Duration.Milliseconds(),
	}
	if req.Start {
		t = tracking.ToggleTimer(t, now)
	}

	if err := s.Timers.Insert(ctx, &t); err != nil {
		return nil, fmt.Errorf("failed to create timer: %w", err)
	}
	return &t, nil
}

// ToggleTimer starts or pauses the timer with id
func (s *Store) ToggleTimer(ctx context.Context, id uint, now time.Time) (*models.Timer, error) {
	return s.updateTimer(ctx, id, func(t models.Timer) models.Timer {
		return tracking.ToggleTimer(t, now)
	})
}

// ResetTimer restores the timer's initial duration and stops it
func (s *Store) ResetTimer(ctx context.Context, id uint) (*models.Timer, error) {
	return s.updateTimer(ctx, id, tracking.ResetTimer)
}

// RenameTimer changes the timer's name
func (s *Store) RenameTimer(ctx context.Context, req RenameRequest) (*models.Timer, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.updateTimer(ctx, req.ID, func(t models.Timer) models.Timer {
		t.Name = req.Name
		return t
	})
}

// DeleteTimers removes the given timers
func (s *Store) DeleteTimers(ctx context.Context, ids ...uint) error {
	if err := s.Timers.DeleteMany(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete timers: %w", err)
	}
	return nil
}

func (s *Store) updateTimer(ctx context.Context, id uint, fn func(models.Timer) models.Timer) (*models.Timer, error) {
	current, err := s.Timers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("timer #%d: %w", id, err)
	}

	updated := fn(*current)
	if err := s.Timers.Insert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save timer #%d: %w", id, err)
	}
	return &updated, nil
}
