package summaries

import (
	"testing"
	"time"

	"github.com/kuitang/crm-notes/internal/errs"
	"pgregory.net/rapid"
)

func intPtr(v int) *int { return &v }

// rec builds a record at a fixed UTC instant.
func rec(id string, t time.Time, body string) Record {
	return Record{ID: id, CreatedAt: t, Body: body}
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []Record, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("result mismatch: got %v want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("result mismatch at %d: got %v want %v", i, gotIDs, want)
		}
	}
}

func TestFilter_ByDateUsesUTCCalendarDate(t *testing.T) {
	t.Parallel()
	records := []Record{
		rec("prev", time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC), "leap day"),
		rec("match", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "target day"),
		rec("next", time.Date(2024, 3, 2, 0, 30, 0, 0, time.UTC), "day after"),
	}

	got, err := Filter(records, Criteria{Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertIDs(t, got, "match")
}

func TestFilter_ByDayOfWeek(t *testing.T) {
	t.Parallel()
	// 2024-03-04 is a Monday, 2024-03-05 a Tuesday.
	records := []Record{
		rec("mon", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), "standup"),
		rec("tue", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), "retro"),
	}

	for _, name := range []string{"monday", "Monday", "MONDAY"} {
		got, err := Filter(records, Criteria{DayOfWeek: name})
		if err != nil {
			t.Fatalf("Filter(%q) failed: %v", name, err)
		}
		assertIDs(t, got, "mon")
	}
}

func TestFilter_InvalidDayOfWeekIsValidationError(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"funday", "mon", "sundays"} {
		_, err := Filter(nil, Criteria{DayOfWeek: name})
		if err == nil {
			t.Fatalf("expected validation error for day %q", name)
		}
		if got := errs.CodeOf(err); got != errs.InvalidArgument {
			t.Fatalf("day %q: unexpected error code %q", name, got)
		}
	}
}

func TestFilter_TimeRangeInclusiveBounds(t *testing.T) {
	t.Parallel()
	day := func(hour, min int) time.Time {
		return time.Date(2024, 3, 4, hour, min, 0, 0, time.UTC)
	}
	records := []Record{
		rec("before", day(8, 59), ""),
		rec("start", day(9, 0), ""),
		rec("mid", day(9, 30), ""),
		rec("end", day(10, 0), ""),
		rec("after", day(10, 1), ""),
	}

	got, err := Filter(records, Criteria{TimeStart: "09:00", TimeEnd: "10:00"})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	// Newest first within the inclusive window.
	assertIDs(t, got, "end", "mid", "start")
}

func TestFilter_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()
	records := []Record{
		rec("a", time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), "Title: Budget review\nSummary: ok\nAuthor: Dana"),
		rec("b", time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), "Title: Standup\nSummary: nothing\nAuthor: Lee"),
	}

	got, err := Filter(records, Criteria{Query: "bUdGeT"})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertIDs(t, got, "a")
}

func TestFilter_SortsNewestFirstAndTruncates(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	records := []Record{
		rec("r1", base.Add(1*time.Hour), ""),
		rec("r4", base.Add(4*time.Hour), ""),
		rec("r2", base.Add(2*time.Hour), ""),
		rec("r5", base.Add(5*time.Hour), ""),
		rec("r3", base.Add(3*time.Hour), ""),
	}

	got, err := Filter(records, Criteria{Limit: intPtr(2)})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertIDs(t, got, "r5", "r4")

	// Absent limit means no cap.
	all, err := Filter(records, Criteria{})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertIDs(t, all, "r5", "r4", "r3", "r2", "r1")
}

func TestFilter_NonPositiveLimitIsValidationError(t *testing.T) {
	t.Parallel()
	for _, limit := range []int{0, -1} {
		_, err := Filter(nil, Criteria{Limit: intPtr(limit)})
		if err == nil {
			t.Fatalf("expected error for limit %d", limit)
		}
		if got := errs.CodeOf(err); got != errs.InvalidArgument {
			t.Fatalf("limit %d: unexpected error code %q", limit, got)
		}
		if got := errs.MessageOf(err); got != "limit must be positive" {
			t.Fatalf("limit %d: unexpected message %q", limit, got)
		}
	}
}

func TestFilter_EqualTimestampsKeepOriginalOrder(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	records := []Record{
		rec("first", at, ""),
		rec("second", at, ""),
		rec("third", at, ""),
	}

	got, err := Filter(records, Criteria{})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertIDs(t, got, "first", "second", "third")
}

func TestFilter_PredicatesAreANDCombined(t *testing.T) {
	t.Parallel()
	records := []Record{
		// Monday in the window, body matches.
		rec("hit", time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC), "budget sync"),
		// Monday in the window, body does not match.
		rec("wrong-body", time.Date(2024, 3, 4, 9, 45, 0, 0, time.UTC), "standup"),
		// Monday, body matches, outside the window.
		rec("wrong-time", time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC), "budget sync"),
		// Tuesday, otherwise identical.
		rec("wrong-day", time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC), "budget sync"),
	}

	got, err := Filter(records, Criteria{
		DayOfWeek: "monday",
		TimeStart: "09:00",
		TimeEnd:   "10:00",
		Query:     "budget",
	})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	assertIDs(t, got, "hit")
}

func testFilter_OutputSortedSubsetOfInput(t *rapid.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	n := rapid.IntRange(0, 30).Draw(t, "n")
	records := make([]Record, 0, n)
	byID := map[string]Record{}
	for i := 0; i < n; i++ {
		offset := rapid.Int64Range(0, 60*24*14).Draw(t, "offsetMinutes")
		r := rec(
			rapid.StringMatching(`id-[0-9]{1,4}`).Draw(t, "id"),
			base.Add(time.Duration(offset)*time.Minute),
			rapid.StringMatching(`[a-z ]{0,40}`).Draw(t, "body"),
		)
		records = append(records, r)
		byID[r.ID] = r
	}

	c := Criteria{}
	if rapid.Bool().Draw(t, "withQuery") {
		c.Query = rapid.StringMatching(`[a-z]{1,5}`).Draw(t, "query")
	}
	if rapid.Bool().Draw(t, "withLimit") {
		c.Limit = intPtr(rapid.IntRange(1, 10).Draw(t, "limit"))
	}

	got, err := Filter(records, c)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if c.Limit != nil && len(got) > *c.Limit {
		t.Fatalf("limit %d exceeded: %d results", *c.Limit, len(got))
	}
	for i, r := range got {
		if _, ok := byID[r.ID]; !ok {
			t.Fatalf("result %q not in input", r.ID)
		}
		if i > 0 && got[i-1].CreatedAt.Before(r.CreatedAt) {
			t.Fatalf("results not sorted newest-first at %d", i)
		}
	}
}

func TestFilter_OutputSortedSubsetOfInput(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testFilter_OutputSortedSubsetOfInput)
}
