package core

import (
	"context"
	"math"
	"strings"
	"time"
)

// Service implements the business logic for logging and reviewing water intake.
// It validates input before it reaches the Store, which stores whatever it is given.
type Service struct {
	store    Store
	feedback Feedback // nil when no API key is configured
	nowFunc  func() time.Time
}

// NewService wires a store and an optional feedback client.
func NewService(store Store, feedback Feedback) *Service {
	return &Service{
		store:    store,
		feedback: feedback,
		nowFunc:  time.Now,
	}
}

// WithClock replaces the service clock (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.nowFunc = now
	return s
}

// FeedbackEnabled reports whether AI feedback is wired.
func (s *Service) FeedbackEnabled() bool { return s.feedback != nil }

// LogIntake validates and stores one intake, then asks for feedback on today's
// total. A feedback failure is reported in the result; the intake stays stored.
func (s *Service) LogIntake(ctx context.Context, in LogRequest) (*LogResult, error) {
	user := strings.TrimSpace(in.UserID)
	if user == "" {
		return nil, ErrInvalidUser
	}
	if !validAmount(in.IntakeML) {
		return nil, ErrInvalidAmount
	}

	at := s.nowFunc()
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		at = *in.Timestamp
	}
	if err := s.store.Insert(ctx, user, in.IntakeML, at); err != nil {
		return nil, err
	}

	total, err := s.store.TodayTotal(ctx, user)
	if err != nil {
		return nil, err
	}

	res := &LogResult{
		UserID:   user,
		IntakeML: in.IntakeML,
		Date:     at.Format(DateLayout),
		TodayML:  total,
	}
	if s.feedback != nil {
		analysis, err := s.feedback.Analyze(ctx, total/1000)
		if err != nil {
			res.AnalysisError = err.Error()
		} else {
			res.Analysis = analysis
		}
	}
	return res, nil
}

// History returns the user's records for the filter.
func (s *Service) History(ctx context.Context, userID string, filter Filter) ([]Record, error) {
	user := strings.TrimSpace(userID)
	if user == "" {
		return nil, ErrInvalidUser
	}
	if !validFilter(filter) {
		return nil, ErrInvalidFilter
	}
	return s.store.Query(ctx, user, filter)
}

// TodayTotal returns the user's intake for the current day in ml.
func (s *Service) TodayTotal(ctx context.Context, userID string) (float64, error) {
	user := strings.TrimSpace(userID)
	if user == "" {
		return 0, ErrInvalidUser
	}
	return s.store.TodayTotal(ctx, user)
}

// Progress measures today's total against goalML, capped at 1.
func (s *Service) Progress(ctx context.Context, userID string, goalML float64) (*Progress, error) {
	if math.IsNaN(goalML) || math.IsInf(goalML, 0) || goalML < 0 {
		return nil, ErrInvalidGoal
	}
	total, err := s.TodayTotal(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := &Progress{
		UserID:  strings.TrimSpace(userID),
		Date:    s.nowFunc().Format(DateLayout),
		TodayML: total,
		GoalML:  goalML,
	}
	if goalML > 0 {
		p.Progress = math.Min(total/goalML, 1)
	}
	return p, nil
}

// Analyze asks the feedback client about a daily intake in liters.
func (s *Service) Analyze(ctx context.Context, litersPerDay float64) (string, error) {
	if s.feedback == nil {
		return "", ErrFeedbackUnavailable
	}
	if !validAmount(litersPerDay) {
		return "", ErrInvalidAmount
	}
	return s.feedback.Analyze(ctx, litersPerDay)
}

// ---- helpers ----

func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func validFilter(f Filter) bool {
	for _, known := range Filters {
		if f == known {
			return true
		}
	}
	return false
}
