package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The predefined habit categories. A category outside this set is stored
// as "custom:<name>".
var categories = map[string]bool{
	"health":       true,
	"productivity": true,
	"social":       true,
	"creative":     true,
	"mindfulness":  true,
	"financial":    true,
	"household":    true,
	"personal":     true,
}

// Habit is something the user wants to do regularly. The Frequency drives
// how streaks and completion rates are computed from its entries.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Frequency   Frequency `json:"frequency"`
	TargetValue int       `json:"target_value,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active"`
}

// NewHabit creates a validated habit with a fresh ID. TargetValue of 0
// means no numeric target.
func NewHabit(name, description, category string, freq Frequency, targetValue int, unit string) (*Habit, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if err := freq.Validate(); err != nil {
		return nil, err
	}
	if err := validateTarget(targetValue, unit); err != nil {
		return nil, err
	}

	return &Habit{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Category:    cat,
		Frequency:   freq,
		TargetValue: targetValue,
		Unit:        strings.TrimSpace(unit),
		CreatedAt:   timeNow().UTC(),
		Active:      true,
	}, nil
}

// HabitUpdate holds partial changes for Habit.Apply. Nil fields are left
// unchanged.
type HabitUpdate struct {
	Name        *string
	Description *string
	Frequency   *Frequency
	TargetValue *int
	Unit        *string
	Active      *bool
}

// Apply validates and applies a partial update. Either everything is
// applied or the habit is left untouched.
func (h *Habit) Apply(u HabitUpdate) error {
	if u.Name != nil {
		if err := validateName(*u.Name); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := validateDescription(*u.Description); err != nil {
			return err
		}
	}
	if u.Frequency != nil {
		if err := u.Frequency.Validate(); err != nil {
			return err
		}
	}
	target := h.TargetValue
	unit := h.Unit
	if u.TargetValue != nil {
		target = *u.TargetValue
	}
	if u.Unit != nil {
		unit = *u.Unit
	}
	if err := validateTarget(target, unit); err != nil {
		return err
	}

	if u.Name != nil {
		h.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		h.Description = strings.TrimSpace(*u.Description)
	}
	if u.Frequency != nil {
		h.Frequency = *u.Frequency
	}
	h.TargetValue = target
	h.Unit = strings.TrimSpace(unit)
	if u.Active != nil {
		h.Active = *u.Active
	}
	return nil
}

// HasTarget reports whether the habit has a numeric target.
func (h *Habit) HasTarget() bool { return h.TargetValue > 0 }

// TargetDisplay renders the target as "30 minutes", "30", or "".
func (h *Habit) TargetDisplay() string {
	switch {
	case h.TargetValue > 0 && h.Unit != "":
		return fmt.Sprintf("%d %s", h.TargetValue, h.Unit)
	case h.TargetValue > 0:
		return fmt.Sprintf("%d", h.TargetValue)
	default:
		return ""
	}
}

// ParseCategory normalizes and validates a category string. Predefined
// categories are lowercased; anything else must use the custom:<name> form.
func ParseCategory(s string) (string, error) {
	cat := strings.ToLower(strings.TrimSpace(s))
	if categories[cat] {
		return cat, nil
	}
	if name, ok := strings.CutPrefix(cat, "custom:"); ok {
		if strings.TrimSpace(name) == "" {
			return "", fmt.Errorf("%w: custom category name cannot be empty", ErrValidation)
		}
		return cat, nil
	}
	return "", fmt.Errorf("%w: invalid category %q (valid: health, productivity, social, creative, mindfulness, financial, household, personal, or custom:name)", ErrValidation, s)
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: habit name cannot be empty", ErrValidation)
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("%w: habit name cannot be longer than 100 characters", ErrValidation)
	}
	return nil
}

func validateDescription(desc string) error {
	if len(desc) > 500 {
		return fmt.Errorf("%w: description cannot be longer than 500 characters", ErrValidation)
	}
	return nil
}

func validateTarget(target int, unit string) error {
	if target < 0 {
		return fmt.Errorf("%w: target value must be greater than 0", ErrValidation)
	}
	if target > 10000 {
		return fmt.Errorf("%w: target value cannot exceed 10000", ErrValidation)
	}
	if unit != "" {
		trimmed := strings.TrimSpace(unit)
		if trimmed == "" {
			return fmt.Errorf("%w: unit cannot be blank if specified", ErrValidation)
		}
		if len(trimmed) > 20 {
			return fmt.Errorf("%w: unit cannot be longer than 20 characters", ErrValidation)
		}
	}
	return nil
}
