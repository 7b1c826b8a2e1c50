package core

import (
	"testing"
	"time"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestParseMonthYear(t *testing.T) {
	tests := []struct {
		name   string
		month  string
		year   string
		want   time.Time
		wantOK bool
	}{
		{"plain", "Март", "2024", date(2024, time.March), true},
		{"lower case", "март", "2024", date(2024, time.March), true},
		{"upper case with spaces", "  ДЕКАБРЬ ", "2023", date(2023, time.December), true},
		{"year with suffix", "Май", "2024 г.", date(2024, time.May), true},
		{"year with leading space", "Июль", " 2022", date(2022, time.July), true},
		{"empty month", "", "2024", time.Time{}, false},
		{"empty year", "Март", "", time.Time{}, false},
		{"unknown month", "Мартобрь", "2024", time.Time{}, false},
		{"genitive form", "марта", "2024", time.Time{}, false},
		{"english month", "March", "2024", time.Time{}, false},
		{"non numeric year", "Март", "двадцать", time.Time{}, false},
		{"sign only", "Март", "-", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMonthYear(tt.month, tt.year)
			if ok != tt.wantOK {
				t.Fatalf("ParseMonthYear(%q, %q) ok = %v, want %v", tt.month, tt.year, ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseMonthYear(%q, %q) = %v, want %v", tt.month, tt.year, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		ok   bool
		want string
	}{
		{date(2024, time.March), true, "Март 2024 г."},
		{date(2025, time.January), true, "Январь 2025 г."},
		{date(1999, time.December), true, "Декабрь 1999 г."},
		{time.Date(2024, time.August, 31, 15, 0, 0, 0, time.UTC), true, "Август 2024 г."},
		{date(2024, time.March), false, ""},
		{time.Time{}, false, ""},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.in, tt.ok); got != tt.want {
			t.Errorf("FormatDate(%v, %v) = %q, want %q", tt.in, tt.ok, got, tt.want)
		}
	}
}

func TestAddPeriod(t *testing.T) {
	base := date(2024, time.March)

	tests := []struct {
		name   string
		period string
		want   time.Time
	}{
		{"months", "12 месяцев", date(2025, time.March)},
		{"one year", "1 год", date(2025, time.March)},
		{"two years", "2 года", date(2026, time.March)},
		{"five years", "5 лет", date(2029, time.March)},
		{"one month", "1 месяц", date(2024, time.April)},
		{"three months", "3 месяца", date(2024, time.June)},
		{"no space", "6месяцев", date(2024, time.September)},
		{"upper case", "1 ГОД", date(2025, time.March)},
		{"surrounding text", "раз в 6 месяцев", date(2024, time.September)},
		{"first match wins", "1 год или 6 месяцев", date(2025, time.March)},
		{"month rollover", "10 месяцев", date(2025, time.January)},
		{"no number", "раз в год", base},
		{"no unit", "12", base},
		{"empty", "", base},
		{"garbage", "ежеквартально", base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddPeriod(base, tt.period)
			if !got.Equal(tt.want) {
				t.Errorf("AddPeriod(%v, %q) = %v, want %v", base, tt.period, got, tt.want)
			}
		})
	}
}

func TestYearOne(t *testing.T) {
	d, ok := ParseMonthYear("Январь", "1")
	if !ok {
		t.Fatal("ParseMonthYear(Январь, 1) ok = false")
	}
	if got := FormatDate(d, ok); got != "Январь 1 г." {
		t.Errorf("FormatDate(year 1) = %q, want %q", got, "Январь 1 г.")
	}
	if got := FormatDate(AddPeriod(d, "1 год"), ok); got != "Январь 2 г." {
		t.Errorf("FormatDate(year 1 + 1 год) = %q, want %q", got, "Январь 2 г.")
	}
}

func TestAddPeriod_DayOverflow(t *testing.T) {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	if got := AddPeriod(start, "1 месяц"); !got.Equal(want) {
		t.Errorf("AddPeriod(Jan 31, 1 месяц) = %v, want %v", got, want)
	}
}
