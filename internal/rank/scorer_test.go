package rank

import (
	"math"
	"strings"
	"testing"

	"github.com/dgallion1/docsift/internal/persona"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLengthScore(t *testing.T) {
	tests := []struct {
		n             int
		allowNegative bool
		want          float64
	}{
		{0, false, 0},
		{50, false, 0.5},
		{100, false, 1},
		{1000, false, 1},
		{2000, false, 0.5},
		{2500, false, 0.25},
		{3000, false, 0},
		{4000, false, 0},
		{4000, true, -0.5},
	}
	for _, tc := range tests {
		s := Scorer{AllowNegativeLength: tc.allowNegative}
		if got := s.LengthScore(tc.n); !almostEqual(got, tc.want) {
			t.Errorf("LengthScore(%d, negative=%v): expected %v, got %v", tc.n, tc.allowNegative, tc.want, got)
		}
	}
}

func TestKeywordScore(t *testing.T) {
	p := persona.NewProfile("Travel Planner", "Plan a trip")
	if got := KeywordScore("Planning the trip itinerary", p); !almostEqual(got, 2.0/3.0) {
		t.Errorf("expected 2/3, got %v", got)
	}
	if got := KeywordScore("the and of", p); got != 0 {
		t.Errorf("expected 0 for stop-word-only text, got %v", got)
	}
}

func TestScore_LongSectionNotBoosted(t *testing.T) {
	p := persona.NewProfile("Travel Planner", "Plan a trip")
	text := strings.Repeat("zzzz ", 500)
	if got := (Scorer{}).Score(text, p); !almostEqual(got, 0.1*0.25) {
		t.Errorf("expected %v, got %v", 0.1*0.25, got)
	}

	veryLong := strings.Repeat("zzzz ", 1000)
	if got := (Scorer{}).Score(veryLong, p); got != 0 {
		t.Errorf("expected clamped score 0, got %v", got)
	}
	if got := (Scorer{AllowNegativeLength: true}).Score(veryLong, p); got >= 0 {
		t.Errorf("expected negative score with negative length allowed, got %v", got)
	}
}

func TestScore_Components(t *testing.T) {
	p := persona.NewProfile("PhD Researcher", "Prepare a literature review")
	text := "Methodology: the study results"
	// Stems methodolog and result match; studi is not a substring of "study".
	want := 0.5*(2.0/3.0) + 0.4*0.5 + 0.1*(float64(len(text))/100)
	if got := (Scorer{}).Score(text, p); !almostEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
