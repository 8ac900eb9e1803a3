package persona

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"The State-of-the-Art in AI, 2024!", []string{"state", "art", "2024"}},
		{"It is what it is", nil},
		{"Résumé writing", []string{"sum", "writing"}},
		{"", nil},
	}
	for _, tc := range tests {
		if got := Tokenize(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"running":     "run",
		"studies":     "studi",
		"connections": "connect",
		"plan":        "plan",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestStems_KeepsOrderAndDuplicates(t *testing.T) {
	got := Stems("plans and planning plans")
	want := []string{"plan", "plan", "plan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
