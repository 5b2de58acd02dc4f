package summaries

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kuitang/crm-notes/internal/errs"
)

var weekdayByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a case-insensitive weekday name. Matching is exact,
// no abbreviations; an unrecognized name is a validation error, never a
// silent no-match.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errs.New(errs.InvalidArgument, fmt.Sprintf("invalid day of week: %q", name))
	}
	return day, nil
}

// Filter narrows records by the criteria's predicates, sorts the survivors
// by CreatedAt descending (ties keep their original relative order), and
// truncates to Limit when set. The same engine serves listing,
// update-target resolution, and delete-target resolution; callers differ
// only in which predicates they populate.
func Filter(records []Record, c Criteria) ([]Record, error) {
	var (
		wantDay time.Weekday
		byDay   bool
	)
	if c.DayOfWeek != "" {
		day, err := ParseWeekday(c.DayOfWeek)
		if err != nil {
			return nil, err
		}
		wantDay = day
		byDay = true
	}
	if c.Limit != nil && *c.Limit <= 0 {
		return nil, errs.New(errs.InvalidArgument, "limit must be positive")
	}

	query := strings.ToLower(c.Query)
	byTime := c.TimeStart != "" || c.TimeEnd != ""

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if c.Date != "" && rec.CreatedAt.UTC().Format("2006-01-02") != c.Date {
			continue
		}
		if byDay && rec.CreatedAt.Weekday() != wantDay {
			continue
		}
		if byTime {
			// Lexicographic comparison on zero-padded HH:MM. Correct only
			// because of the padding; do not switch to numeric comparison.
			hhmm := rec.CreatedAt.Format("15:04")
			if hhmm < c.TimeStart || hhmm > c.TimeEnd {
				continue
			}
		}
		if query != "" && !strings.Contains(strings.ToLower(rec.Body), query) {
			continue
		}
		out = append(out, rec)
	}

	// Newest first; the store does not specify order among equal timestamps,
	// so the stable sort keeps their incoming relative order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if c.Limit != nil && len(out) > *c.Limit {
		out = out[:*c.Limit]
	}
	return out, nil
}
