package core

import (
	"strings"
	"time"
)

// Filter selects a date window for history queries.
type Filter string

const (
	FilterToday      Filter = "Today"
	FilterLast7Days  Filter = "Last 7 days"
	FilterLast30Days Filter = "Last 30 days"
	FilterAllTime    Filter = "All time"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterToday, FilterLast7Days, FilterLast30Days, FilterAllTime}

var filterAliases = map[string]Filter{
	"today":        FilterToday,
	"last 7 days":  FilterLast7Days,
	"7d":           FilterLast7Days,
	"week":         FilterLast7Days,
	"last 30 days": FilterLast30Days,
	"30d":          FilterLast30Days,
	"month":        FilterLast30Days,
	"all time":     FilterAllTime,
	"all":          FilterAllTime,
}

// ParseFilter accepts the display labels case-insensitively and a few short
// aliases. An empty string means FilterAllTime.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAllTime, nil
	}
	if f, ok := filterAliases[s]; ok {
		return f, nil
	}
	return "", ErrInvalidFilter
}

// Since returns the first day (inclusive) covered by the filter, relative to
// today. exact is true when only that day matches. ok is false when the filter
// places no constraint on dates. Windows have no upper bound, so future-dated
// rows fall inside "Last N days".
func (f Filter) Since(today time.Time) (day string, exact, ok bool) {
	switch f {
	case FilterToday:
		return today.Format(DateLayout), true, true
	case FilterLast7Days:
		return today.AddDate(0, 0, -7).Format(DateLayout), false, true
	case FilterLast30Days:
		return today.AddDate(0, 0, -30).Format(DateLayout), false, true
	default:
		return "", false, false
	}
}

// Weekday returns the English weekday name for a stored date, or
// UnknownWeekday when the value does not parse.
func Weekday(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return UnknownWeekday
	}
	return d.Weekday().String()
}
