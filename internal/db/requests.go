package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxTimerDuration is the longest countdown that fits the HH:MM:SS display
const MaxTimerDuration = 99*time.Hour + 59*time.Minute + 59*time.Second

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateStopwatchRequest holds the data needed to create a stopwatch
type CreateStopwatchRequest struct {
	Name  string `validate:"max=100"`
	Start bool
}

// CreateTimerRequest holds the data needed to create a timer
type CreateTimerRequest struct {
	Name     string        `validate:"max=100"`
	Duration time.Duration `validate:"min=0s,max=359999s"`
	Start    bool
}

// RenameRequest changes the display name of a stopwatch or timer
type RenameRequest struct {
	ID   uint   `validate:"required"`
	Name string `validate:"required,max=100"`
}

// validateRequest runs struct validation and turns validator output into a
// short user-facing message. Callers trim names first.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "max":
		if field == "duration" {
			return fmt.Errorf("duration must be at most %s", "99:59:59")
		}
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Errorf("%s must not be negative", field)
	default:
		return fmt.Errorf("invalid %s", field)
	}
}

func defaultName(kind string, now time.Time) string {
	return fmt.Sprintf("%s %d", kind, now.UnixMilli())
}
