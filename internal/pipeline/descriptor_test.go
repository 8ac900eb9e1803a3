package pipeline

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		yaml    bool
		wantErr bool
	}{
		{"valid json", `{"documents":[{"filename":"a.pdf"}],"persona":{"role":"Analyst"},"job_to_be_done":{"task":"Compare"}}`, false, false},
		{"extra fields allowed", `{"challenge_info":{"id":"x"},"documents":[],"persona":{"role":"A","extra":1},"job_to_be_done":{"task":"B"}}`, false, false},
		{"missing persona", `{"documents":[],"job_to_be_done":{"task":"B"}}`, false, true},
		{"empty role", `{"documents":[],"persona":{"role":""},"job_to_be_done":{"task":"B"}}`, false, true},
		{"filename wrong type", `{"documents":[{"filename":3}],"persona":{"role":"A"},"job_to_be_done":{"task":"B"}}`, false, true},
		{"not json", `{`, false, true},
		{"valid yaml", "documents:\n  - filename: a.pdf\npersona:\n  role: Student\njob_to_be_done:\n  task: Revise\n", true, false},
		{"yaml missing task", "documents: []\npersona:\n  role: Student\njob_to_be_done: {}\n", true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDescriptor([]byte(tc.data), tc.yaml)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDescriptor) {
					t.Errorf("expected ErrInvalidDescriptor, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDescriptor_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "input.yml"), "documents:\n  - filename: a.pdf\n  - filename: b.pdf\npersona:\n  role: Student\njob_to_be_done:\n  task: Revise for the exam\n")
	d, err := LoadDescriptor(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(d.Filenames(), []string{"a.pdf", "b.pdf"}) {
		t.Errorf("unexpected filenames %v", d.Filenames())
	}
	if d.Persona.Role != "Student" || d.JobToBeDone.Task != "Revise for the exam" {
		t.Errorf("unexpected descriptor %+v", d)
	}
}

func TestLoadDescriptor_PrefersJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "input.json"), `{"documents":[{"filename":"j.pdf"}],"persona":{"role":"A"},"job_to_be_done":{"task":"B"}}`)
	writeFile(t, filepath.Join(dir, "input.yaml"), "documents:\n  - filename: y.pdf\npersona:\n  role: A\njob_to_be_done:\n  task: B\n")
	d, err := LoadDescriptor(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Filenames()[0] != "j.pdf" {
		t.Errorf("expected input.json to win, got %v", d.Filenames())
	}
}
