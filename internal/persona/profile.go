// Package persona derives a keyword profile from a reader persona and the
// task they need done, and scores text against it.
package persona

import (
	"sort"
	"strings"
)

// MaxJobStems caps how many job-description stems enter a profile.
const MaxJobStems = 20

// Profile is the keyword set built once per run and shared read-only by
// every document scored in that run.
type Profile struct {
	Persona   string
	Job       string
	Archetype string

	keywords map[string]struct{}
}

// NewProfile detects the persona archetype, extracts job stems and applies
// job-pattern augmentation.
func NewProfile(persona, job string) *Profile {
	p := &Profile{
		Persona:  persona,
		Job:      job,
		keywords: make(map[string]struct{}),
	}

	arch := DetectArchetype(persona)
	p.Archetype = arch.Name
	p.add(arch.Keywords...)

	stems := Stems(job)
	if len(stems) > MaxJobStems {
		stems = stems[:MaxJobStems]
	}
	p.add(stems...)

	jobLower := strings.ToLower(job)
	for _, a := range augmentations {
		if containsAny(jobLower, a.triggers) {
			p.add(a.keywords...)
		}
	}
	return p
}

// DetectArchetype returns the first archetype whose name or one of whose
// leading keywords occurs in the persona text, else the general archetype.
func DetectArchetype(persona string) Archetype {
	lower := strings.ToLower(persona)
	for _, a := range Archetypes {
		cues := a.Keywords
		if len(cues) > MatchKeywords {
			cues = cues[:MatchKeywords]
		}
		if strings.Contains(lower, a.Name) || containsAny(lower, cues) {
			return a
		}
	}
	return Archetype{Name: GeneralArchetype}
}

// Keywords returns the profile keywords sorted alphabetically.
func (p *Profile) Keywords() []string {
	out := make([]string, 0, len(p.keywords))
	for k := range p.keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Has reports whether kw is in the profile exactly.
func (p *Profile) Has(kw string) bool {
	_, ok := p.keywords[kw]
	return ok
}

// Matches reports whether token contains, or is contained in, any keyword.
// The loose match absorbs differences between stemmed and surface forms.
func (p *Profile) Matches(token string) bool {
	if token == "" {
		return false
	}
	if p.Has(token) {
		return true
	}
	for kw := range p.keywords {
		if strings.Contains(kw, token) || strings.Contains(token, kw) {
			return true
		}
	}
	return false
}

// ContextScore sums the persona and job bonuses earned by a section's text.
func (p *Profile) ContextScore(text string) float64 {
	lower := strings.ToLower(text)
	personaLower := strings.ToLower(p.Persona)
	jobLower := strings.ToLower(p.Job)

	var score float64
	for _, b := range personaBonuses {
		if containsAny(personaLower, b.cues) && containsAny(lower, b.terms) {
			score += b.bonus
		}
	}
	for _, b := range jobBonuses {
		if containsAny(jobLower, b.cues) && containsAny(lower, b.terms) {
			score += b.bonus
		}
	}
	return score
}

func (p *Profile) add(words ...string) {
	for _, w := range words {
		if w != "" {
			p.keywords[w] = struct{}{}
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
