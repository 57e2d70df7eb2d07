package locale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5", "R$ 5,00"},
		{"999.999", "R$ 1.000,00"},
		{"1234.5", "R$ 1.234,50"},
		{"5000", "R$ 5.000,00"},
		{"123456", "R$ 123.456,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-42.1", "-R$ 42,10"},
	}
	for _, c := range cases {
		got := FormatBRL(decimal.RequireFromString(c.in))
		if got != c.want {
			t.Errorf("FormatBRL(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatAndParseDate(t *testing.T) {
	d, err := ParseDate("05/03/2025")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 5 {
		t.Fatalf("unexpected date %v", d)
	}
	if got := FormatDate(d); got != "05/03/2025" {
		t.Fatalf("FormatDate = %q", got)
	}

	if _, err := ParseDate("2025-03-05"); err == nil {
		t.Fatalf("expected error for ISO date")
	}
}

func TestFormatDateUsesUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d := time.Date(2025, 3, 5, 23, 30, 0, 0, loc) // 06/03 02:30 UTC
	if got := FormatDate(d); got != "06/03/2025" {
		t.Fatalf("FormatDate = %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1234.56":     "1234.56",
		"1234,56":     "1234.56",
		"1.234,56":    "1234.56",
		" R$ 10,5 ":   "10.5",
		"0":           "0",
		"-3":          "-3",
		"1.000.000,0": "1000000",
		"10,005":      "10.01",
		"0,004":       "0",
		"2.5":         "2.5",
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil {
			t.Errorf("ParseAmount(%q): %v", in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}

	for _, in := range []string{"", "abc", "12,3,4"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) should fail", in)
		}
	}
}

func TestMonthHelpers(t *testing.T) {
	m, err := ParseMonth("2025-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if got := MonthName(m); got != "março de 2025" {
		t.Fatalf("MonthName = %q", got)
	}
	if got := Month(time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)); !got.Equal(m) {
		t.Fatalf("Month = %v", got)
	}
}
