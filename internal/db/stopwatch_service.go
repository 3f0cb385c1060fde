package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/tock/internal/models"
	"github.com/balkashynov/tock/internal/tracking"
)

// CreateStopwatch stores a new stopwatch at zero elapsed time. With req.Start
// it is toggled on right away.
func (s *Store) CreateStopwatch(ctx context.Context, req CreateStopwatchRequest, now time.Time) (*models.Stopwatch, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = defaultName("Stopwatch", now)
	}

	sw := tracking.ResetStopwatch(models.Stopwatch{Name: req.Name}, now)
	if req.Start {
		sw = tracking.ToggleStopwatch(sw, now)
	}

	if err := s.Stopwatches.Insert(ctx, &sw); err != nil {
		return nil, fmt.Errorf("failed to create stopwatch: %w", err)
	}
	return &sw, nil
}

// ToggleStopwatch starts or pauses the stopwatch with id
func (s *Store) ToggleStopwatch(ctx context.Context, id uint, now time.Time) (*models.Stopwatch, error) {
	return s.updateStopwatch(ctx, id, func(sw models.Stopwatch) models.Stopwatch {
		return tracking.ToggleStopwatch(sw, now)
	})
}

// ResetStopwatch zeroes the stopwatch with id and leaves it stopped
func (s *Store) ResetStopwatch(ctx context.Context, id uint, now time.Time) (*models.Stopwatch, error) {
	return s.updateStopwatch(ctx, id, func(sw models.Stopwatch) models.Stopwatch {
		return tracking.ResetStopwatch(sw, now)
	})
}

// RenameStopwatch changes the stopwatch's name
func (s *Store) RenameStopwatch(ctx context.Context, req RenameRequest) (*models.Stopwatch, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.updateStopwatch(ctx, req.ID, func(sw models.Stopwatch) models.Stopwatch {
		sw.Name = req.Name
		return sw
	})
}

// DeleteStopwatches removes the given stopwatches
func (s *Store) DeleteStopwatches(ctx context.Context, ids ...uint) error {
	if err := s.Stopwatches.DeleteMany(ctx, ids); err != nil {
		return fmt.Errorf("failed to delete stopwatches: %w", err)
	}
	return nil
}

func (s *Store) updateStopwatch(ctx context.Context, id uint, fn func(models.Stopwatch) models.Stopwatch) (*models.Stopwatch, error) {
	current, err := s.Stopwatches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("stopwatch #%d: %w", id, err)
	}

	updated := fn(*current)
	if err := s.Stopwatches.Insert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save stopwatch #%d: %w", id, err)
	}
	return &updated, nil
}
