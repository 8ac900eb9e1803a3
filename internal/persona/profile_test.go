package persona

import (
	"math"
	"reflect"
	"testing"
)

func TestNewProfile_ResearcherLiteratureReview(t *testing.T) {
	p := NewProfile("PhD Researcher in Computational Biology", "Prepare a literature review")
	if p.Archetype != "researcher" {
		t.Errorf("expected researcher archetype, got %q", p.Archetype)
	}
	for _, kw := range []string{"methodology", "results", "conclusion", "analysis", "comparison", "research", "study"} {
		if !p.Has(kw) {
			t.Errorf("expected keyword %q in profile %v", kw, p.Keywords())
		}
	}
	for _, stem := range []string{"prepar", "literatur", "review"} {
		if !p.Has(stem) {
			t.Errorf("expected job stem %q in profile %v", stem, p.Keywords())
		}
	}
}

func TestDetectArchetype(t *testing.T) {
	tests := []struct {
		persona string
		want    string
	}{
		{"Investment Analyst", "analyst"},
		{"Undergraduate Chemistry Student", "student"},
		{"Portfolio manager focused on revenue", "investment"},
		{"Systems architecture lead", "technical"},
		{"Professor working on theory", "academic"},
		{"Travel Planner", GeneralArchetype},
		{"", GeneralArchetype},
	}
	for _, tc := range tests {
		if got := DetectArchetype(tc.persona).Name; got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.persona, tc.want, got)
		}
	}
}

func TestNewProfile_GeneralHasOnlyJobKeywords(t *testing.T) {
	p := NewProfile("Travel Planner", "Plan a trip for friends")
	want := []string{"friend", "plan", "trip"}
	if got := p.Keywords(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewProfile_JobStemCap(t *testing.T) {
	job := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar papa quebec romeo sierra tango uniform victor whiskey"
	p := NewProfile("Travel Planner", job)
	if got := len(p.Keywords()); got != MaxJobStems {
		t.Errorf("expected %d keywords, got %d", MaxJobStems, got)
	}
	if p.Has("uniform") || p.Has("victor") {
		t.Error("expected stems past the cap to be dropped")
	}
}

func TestNewProfile_Augmentation(t *testing.T) {
	tests := []struct {
		job  string
		want []string
	}{
		{"Identify key concepts for exam preparation", []string{"concept", "definition", "example", "theory", "practice"}},
		{"Analyze revenue trends", []string{"revenue", "profit", "growth", "market", "financial"}},
	}
	for _, tc := range tests {
		p := NewProfile("Travel Planner", tc.job)
		for _, kw := range tc.want {
			if !p.Has(kw) {
				t.Errorf("%q: expected keyword %q", tc.job, kw)
			}
		}
	}
}

func TestProfile_Matches(t *testing.T) {
	p := &Profile{keywords: toSet("methodolog", "summar")}
	tests := []struct {
		token string
		want  bool
	}{
		{"methodolog", true},
		{"method", true},
		{"methodologies", true},
		{"summar", true},
		{"trip", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := p.Matches(tc.token); got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.token, tc.want, got)
		}
	}
}

func TestProfile_ContextScore(t *testing.T) {
	tests := []struct {
		name    string
		persona string
		job     string
		text    string
		want    float64
	}{
		{"research and literature review", "PhD Researcher", "Prepare a literature review", "Our methodology and results", 0.5},
		{"student and exam", "Chemistry Student", "Prepare for the exam", "A definition with an example", 0.5},
		{"analyst and financial", "Investment Analyst", "Summarize financial outlook", "Revenue grew", 0.5},
		{"no overlap", "Travel Planner", "Plan a trip", "Beaches and museums", 0},
		{"persona only", "Research lead", "Plan a trip", "The study concludes", 0.3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProfile(tc.persona, tc.job)
			if got := p.ContextScore(tc.text); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
