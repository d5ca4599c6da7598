package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded completion of a habit on a specific calendar day.
// CompletedOn is the day the completion was for; LoggedAt is when it was
// recorded, which may be later (backfilled entries).
type Entry struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	LoggedAt    time.Time `json:"logged_at"`
	CompletedOn time.Time `json:"completed_on"`
	Value       int       `json:"value,omitempty"`
	Intensity   int       `json:"intensity,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// NewEntry creates a validated entry. Value and Intensity of 0 mean unset.
func NewEntry(habitID string, completedOn time.Time, value, intensity int, notes string) (*Entry, error) {
	completedOn = DateOf(completedOn)
	today := Today()

	if completedOn.After(today) {
		return nil, fmt.Errorf("%w: cannot log habits for future dates", ErrValidation)
	}
	if completedOn.Before(today.AddDate(0, 0, -365)) {
		return nil, fmt.Errorf("%w: cannot log habits more than 1 year in the past", ErrValidation)
	}
	if value < 0 || value > 100000 {
		return nil, fmt.Errorf("%w: value must be between 0 and 100000", ErrValidation)
	}
	if intensity != 0 && (intensity < 1 || intensity > 10) {
		return nil, fmt.Errorf("%w: intensity must be between 1 and 10", ErrValidation)
	}
	if len(notes) > 500 {
		return nil, fmt.Errorf("%w: notes cannot be longer than 500 characters", ErrValidation)
	}

	return &Entry{
		ID:          uuid.NewString(),
		HabitID:     habitID,
		LoggedAt:    timeNow().UTC(),
		CompletedOn: completedOn,
		Value:       value,
		Intensity:   intensity,
		Notes:       notes,
	}, nil
}
