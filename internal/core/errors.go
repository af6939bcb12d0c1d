package core

import "errors"

var (
	// Operational/errors for control flow.
	ErrInvalidUser         = errors.New("user_id is required")
	ErrInvalidAmount       = errors.New("intake_ml must be a positive number")
	ErrInvalidFilter       = errors.New("unknown date filter")
	ErrInvalidGoal         = errors.New("goal must be a positive number")
	ErrFeedbackUnavailable = errors.New("ai feedback is not configured")
)

// IsValidation reports whether err was caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidUser) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrInvalidGoal)
}

// IsFeedbackUnavailable reports whether err means no feedback client is wired.
func IsFeedbackUnavailable(err error) bool { return errors.Is(err, ErrFeedbackUnavailable) }
