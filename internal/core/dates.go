package core

// dates.go converts the "month name + year" pair of the export into calendar
// dates and adds free-text maintenance periods to them.
//
// "No date" is carried as an explicit ok flag next to the time.Time, so
// every calendar date (year 1 included) stays representable. Every function
// here degrades to "" or to its input instead of failing, so a bad date cell
// never aborts an ingestion run.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// monthIndex maps normalized (trimmed, lower-cased) Russian month names.
var monthIndex = map[string]time.Month{
	"январь":   time.January,
	"февраль":  time.February,
	"март":     time.March,
	"апрель":   time.April,
	"май":      time.May,
	"июнь":     time.June,
	"июль":     time.July,
	"август":   time.August,
	"сентябрь": time.September,
	"октябрь":  time.October,
	"ноябрь":   time.November,
	"декабрь":  time.December,
}

// monthNames is indexed by time.Month - 1.
var monthNames = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// periodPattern matches the first "<count> <unit>" pair of a period text.
var periodPattern = regexp.MustCompile(`(\d+)\s*(год|года|лет|месяц|месяцев|месяца)`)

type periodUnit int

const (
	unitYears periodUnit = iota
	unitMonths
)

var periodUnits = map[string]periodUnit{
	"год":     unitYears,
	"года":    unitYears,
	"лет":     unitYears,
	"месяц":   unitMonths,
	"месяцев": unitMonths,
	"месяца":  unitMonths,
}

// ParseMonthYear returns the first day of the named month. It reports false
// when either text is empty, the month name is unknown, or the year has no
// leading integer. The year is not range checked.
func ParseMonthYear(monthText, yearText string) (time.Time, bool) {
	if monthText == "" || yearText == "" {
		return time.Time{}, false
	}

	month, ok := monthIndex[strings.ToLower(strings.TrimSpace(monthText))]
	if !ok {
		return time.Time{}, false
	}

	year, ok := parseLeadingInt(yearText)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows, so "2024 г." parses as 2024.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatDate renders t as "<Месяц> <год> г.", or "" when ok is false.
func FormatDate(t time.Time, ok bool) string {
	if !ok {
		return ""
	}
	return monthNames[t.Month()-1] + " " + strconv.Itoa(t.Year()) + " г."
}

// AddPeriod adds the first "<N> years|months" found in period to t.
//
// Text without a match (including phrasings with no leading number, such as
// "раз в год") leaves t unchanged. Month arithmetic rolls over the way
// time.AddDate does: day 31 plus one month can land in the month after next.
func AddPeriod(t time.Time, period string) time.Time {
	if period == "" {
		return t
	}

	m := periodPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(period)))
	if m == nil {
		return t
	}

	n, err := strconv.Atoi(m[1])
	if err != nil {
		return t
	}

	switch periodUnits[m[2]] {
	case unitYears:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, n, 0)
	}
}
