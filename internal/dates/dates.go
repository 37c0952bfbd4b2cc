package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Format is the wire format for dates in prompts, ledger rows and replies.
const Format = "2006-01-02"

// Display renders a date as DD/MM/YYYY for user-facing messages.
func Display(d civil.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, d.Month, d.Year)
}

// dayNames maps Indonesian and English weekday words onto Monday=0 ..
// Sunday=6 indices. Scanned in declaration order, first hit wins.
var dayNames = []struct {
	name string
	day  int
}{
	{"senin", 0}, {"monday", 0},
	{"selasa", 1}, {"tuesday", 1},
	{"rabu", 2}, {"wednesday", 2},
	{"kamis", 3}, {"thursday", 3},
	{"jumat", 4}, {"friday", 4},
	{"sabtu", 5}, {"saturday", 5},
	{"minggu", 6}, {"sunday", 6},
}

var (
	daysAgoPattern        = regexp.MustCompile(`(\d+)\s+hari\s+(?:yang\s+)?lalu`)
	daysAgoEnglishPattern = regexp.MustCompile(`(\d+)\s+days\s+ago`)
	dayMonthYearPattern   = regexp.MustCompile(`(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})`)
	yearMonthDayPattern   = regexp.MustCompile(`(\d{4})[/.-](\d{1,2})[/.-](\d{1,2})`)
	firstIntPattern       = regexp.MustCompile(`\d+`)
)

// Today returns the current date in the given location.
func Today(loc *time.Location) civil.Date {
	return civil.DateOf(time.Now().In(loc))
}

// Relative resolves the two relative-day words the fallback parser
// understands. Anything else is today.
func Relative(text string, today civil.Date) civil.Date {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "kemarin", "yesterday"):
		return today.AddDays(-1)
	case containsAny(lower, "besok", "tomorrow"):
		return today.AddDays(1)
	}
	return today
}

// ResolveContext resolves a free-text time phrase the model could not turn
// into a date itself ("kemarin sore", "senin lalu", "3 hari yang lalu").
// The second return is false when the phrase carries no recognizable cue.
func ResolveContext(phrase string, today civil.Date) (civil.Date, bool) {
	lower := strings.ToLower(phrase)

	var resolved civil.Date
	ok := false
	switch {
	case containsAny(lower, "kemarin", "yesterday"):
		resolved, ok = today.AddDays(-1), true
	case containsAny(lower, "besok", "tomorrow"):
		resolved, ok = today.AddDays(1), true
	case containsAny(lower, "lusa", "day after tomorrow"):
		resolved, ok = today.AddDays(2), true
	case containsAny(lower, "hari yang lalu", "days ago"):
		if m := firstIntPattern.FindString(lower); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				resolved, ok = today.AddDays(-n), true
			}
		}
	case containsAny(lower, "minggu lalu", "last week"):
		resolved, ok = today.AddDays(-7), true
	}

	// A named weekday overrides the coarse resolution above. Note that
	// "minggu lalu" lands here too: it reads as last Sunday, not a flat
	// seven days back.
	for _, dn := range dayNames {
		if !strings.Contains(lower, dn.name) {
			continue
		}
		if containsAny(lower, "depan", "next") {
			fwd := mod7(dn.day - weekdayIndex(today))
			if fwd == 0 {
				fwd = 7
			}
			return today.AddDays(fwd), true
		}
		back := mod7(weekdayIndex(today) - dn.day)
		if back == 0 && containsAny(lower, "lalu", "last") {
			back = 7
		}
		return today.AddDays(-back), true
	}

	return resolved, ok
}

// FromText extracts a date from arbitrary user text: relative words, "N
// hari lalu", and literal DD/MM/YYYY or YYYY-MM-DD forms (any of "/", "-",
// "." as separator). Falls back to today when nothing parses.
func FromText(text string, today civil.Date) civil.Date {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "kemarin", "yesterday"):
		return today.AddDays(-1)
	case containsAny(lower, "hari ini", "today"):
		return today
	case containsAny(lower, "besok", "tomorrow"):
		return today.AddDays(1)
	case containsAny(lower, "lusa", "day after tomorrow"):
		return today.AddDays(2)
	}

	m := daysAgoPattern.FindStringSubmatch(lower)
	if m == nil {
		m = daysAgoEnglishPattern.FindStringSubmatch(lower)
	}
	if m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return today.AddDays(-n)
		}
	}

	if m := dayMonthYearPattern.FindStringSubmatch(lower); m != nil {
		if d, valid := makeDate(m[3], m[2], m[1]); valid {
			return d
		}
	}
	if m := yearMonthDayPattern.FindStringSubmatch(lower); m != nil {
		if d, valid := makeDate(m[1], m[2], m[3]); valid {
			return d
		}
	}

	return today
}

// weekdayIndex converts to Monday=0 .. Sunday=6.
func weekdayIndex(d civil.Date) int {
	return (int(d.In(time.UTC).Weekday()) + 6) % 7
}

func mod7(n int) int {
	return ((n % 7) + 7) % 7
}

// makeDate builds a date and rejects impossible components like 32/13.
func makeDate(ys, ms, ds string) (civil.Date, bool) {
	y, _ := strconv.Atoi(ys)
	mo, _ := strconv.Atoi(ms)
	d, _ := strconv.Atoi(ds)
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
