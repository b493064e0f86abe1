package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"999999.99", "$999,999.99"},
		{"-75", "-$75.00"},
		{"0.005", "$0.01"},
	}
	for _, tt := range tests {
		if got := FormatAmount("$", dec(t, tt.in)); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedAmount(t *testing.T) {
	if got := FormatSignedAmount("€", dec(t, "150")); got != "+€150.00" {
		t.Errorf("got %q, want %q", got, "+€150.00")
	}
	if got := FormatSignedAmount("€", dec(t, "-75")); got != "-€75.00" {
		t.Errorf("got %q, want %q", got, "-€75.00")
	}
}

func TestFormatMonths(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0 months"},
		{1, "1 month"},
		{7, "7 months"},
		{12, "1y"},
		{14, "1y 2m"},
		{60, "5y"},
	}
	for _, tt := range tests {
		if got := FormatMonths(tt.in); got != tt.want {
			t.Errorf("FormatMonths(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSparklineRange(t *testing.T) {
	got := RenderSparkline([]float64{-300, 0, 300})
	if len([]rune(got)) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len([]rune(got)))
	}
	runes := []rune(got)
	if runes[0] != '▁' {
		t.Errorf("lowest value rune = %q, want ▁", runes[0])
	}
	if runes[2] != '█' {
		t.Errorf("highest value rune = %q, want █", runes[2])
	}
}
