package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/finplan/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))

	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 3},
		{80, 1},
	} {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d): got %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d): widths sum to %d", tc.total, tc.n, sum)
		}
	}
}

func TestTabVisualWidth(t *testing.T) {
	overview := Tabs[0]
	if got := TabVisualWidth(overview, true); got != len("Overview") {
		t.Errorf("active Overview width = %d, want %d", got, len("Overview"))
	}
	if got := TabVisualWidth(overview, false); got != len("Overview")+2 {
		t.Errorf("inactive Overview width = %d, want %d", got, len("Overview")+2)
	}

	settings := Tabs[len(Tabs)-1]
	if settings.KeyPos >= 0 {
		t.Fatal("test expects Settings shortcut key outside its name")
	}
	if got := TabVisualWidth(settings, false); got != len(settings.Name)+3 {
		t.Errorf("inactive Settings width = %d, want %d", got, len(settings.Name)+3)
	}
}
