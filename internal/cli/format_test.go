package cli

import (
	"math"
	"strings"
	"testing"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-60000, "-60,000"},
		{math.MinInt64, "-9,223,372,036,854,775,808"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1750, "$1,750.00"},
		{576.5, "$576.50"},
		{0, "$0.00"},
		{60000, "$60,000.00"},
		{-12.5, "-$12.50"},
		{1e17, "$100,000,000,000,000,000.00"},
		{-1e20, "-$100,000,000,000,000,000,000.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDollars(t *testing.T) {
	if got := FormatDollars(1750.4); got != "$1,750" {
		t.Errorf("FormatDollars(1750.4) = %q", got)
	}
	if got := FormatDollars(-1); got != "-$1" {
		t.Errorf("FormatDollars(-1) = %q", got)
	}
	if got := FormatSignedDollars(750); got != "+$750" {
		t.Errorf("FormatSignedDollars(750) = %q", got)
	}
	if got := FormatSignedDollars(-1); got != "-$1" {
		t.Errorf("FormatSignedDollars(-1) = %q", got)
	}
	if got := FormatSignedDollars(0.2); got != "±$0" {
		t.Errorf("FormatSignedDollars(0.2) = %q", got)
	}
	if got := FormatDollars(1e17); got != "$100,000,000,000,000,000" {
		t.Errorf("FormatDollars(1e17) = %q", got)
	}
	if got := FormatSignedDollars(-1.2e18); got != "-$1,200,000,000,000,000,000" {
		t.Errorf("FormatSignedDollars(-1.2e18) = %q", got)
	}
	if got := FormatMoney(math.Inf(1)); got != "$--" {
		t.Errorf("FormatMoney(+Inf) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(11.538461, 1); got != "11.5%" {
		t.Errorf("FormatPercent(11.538461, 1) = %q", got)
	}
	if got := FormatPercent(35, 0); got != "35%" {
		t.Errorf("FormatPercent(35, 0) = %q", got)
	}
	if got := FormatPercent(math.NaN(), 1); got != "--%" {
		t.Errorf("FormatPercent(NaN) = %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{" 1,250.50 ", 1250.5},
		{"$80", 80},
		{"35%", 35},
		{"-12", -12},
		{"1_000", 1000},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "abc", "12abc", "$", "NaN"} {
		if got := ParseNumber(bad); !math.IsNaN(got) {
			t.Errorf("ParseNumber(%q) = %v, want NaN", bad, got)
		}
	}
}

func TestRenderTableAlignsEmoji(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Monthly"},
		Rows: [][]string{
			{"🏠 Housing", "$1,750.00"},
			{"---"},
			{"Total", "$5,000.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table has %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "Housing") || !strings.Contains(out, "$5,000.00") {
		t.Errorf("table missing cells:\n%s", out)
	}
}

func TestRenderShareBar(t *testing.T) {
	bar := RenderShareBar(35, 20)
	if n := strings.Count(bar, "█"); n != 7 {
		t.Errorf("filled cells = %d, want 7", n)
	}
	if n := strings.Count(bar, "░"); n != 13 {
		t.Errorf("empty cells = %d, want 13", n)
	}
	if RenderShareBar(50, 0) != "" {
		t.Error("zero-width bar should be empty")
	}
}
