package core

import (
	"context"
	"time"
)

// DateLayout is the persisted calendar-day format.
const DateLayout = "2006-01-02"

// UnknownWeekday marks a record whose stored date could not be parsed.
const UnknownWeekday = "Unknown"

// Record is one intake event as returned by history queries.
type Record struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Weekday  string  `json:"weekday"`
	AmountML float64 `json:"amount_ml"`
}

// LogRequest is the input to log a water intake.
type LogRequest struct {
	UserID    string     `json:"user_id"`
	IntakeML  float64    `json:"intake_ml"`
	Timestamp *time.Time `json:"timestamp,omitempty"` // Optional; defaults to now
}

// LogResult describes a stored intake plus optional AI feedback.
type LogResult struct {
	UserID        string  `json:"user_id"`
	IntakeML      float64 `json:"intake_ml"`
	Date          string  `json:"date"`
	TodayML       float64 `json:"today_ml"`
	Analysis      string  `json:"analysis,omitempty"`
	AnalysisError string  `json:"analysis_error,omitempty"`
}

// Progress is today's intake measured against a daily goal.
type Progress struct {
	UserID   string  `json:"user_id"`
	Date     string  `json:"date"`
	TodayML  float64 `json:"today_ml"`
	GoalML   float64 `json:"goal_ml"`
	Progress float64 `json:"progress"` // 0..1
}

// Store abstracts persistence for intake events.
type Store interface {
	// Insert appends one event; a zero at means "now". No validation is done.
	Insert(ctx context.Context, userID string, amountML float64, at time.Time) error
	// Query returns the user's events matching filter, relative to today.
	Query(ctx context.Context, userID string, filter Filter) ([]Record, error)
	// TodayTotal sums today's events for the user; zero when there are none.
	TodayTotal(ctx context.Context, userID string) (float64, error)
}

// Feedback turns a daily intake into a natural-language comment.
type Feedback interface {
	Analyze(ctx context.Context, litersPerDay float64) (string, error)
}
