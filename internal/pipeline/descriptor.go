package pipeline

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoDescriptor means the input directory has no collection descriptor.
	ErrNoDescriptor = errors.New("no collection descriptor found")
	// ErrInvalidDescriptor means the descriptor does not match its schema.
	ErrInvalidDescriptor = errors.New("invalid collection descriptor")
)

// DescriptorNames are tried in order when looking for a descriptor.
var DescriptorNames = []string{"input.json", "input.yaml", "input.yml"}

//go:embed schema/descriptor.schema.json
var descriptorSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// DocumentRef names one document of the collection.
type DocumentRef struct {
	Filename string `json:"filename" yaml:"filename"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Descriptor is the collection request read from the input directory.
type Descriptor struct {
	ChallengeInfo map[string]any `json:"challenge_info,omitempty" yaml:"challenge_info,omitempty"`
	Documents     []DocumentRef  `json:"documents" yaml:"documents"`
	Persona       struct {
		Role string `json:"role" yaml:"role"`
	} `json:"persona" yaml:"persona"`
	JobToBeDone struct {
		Task string `json:"task" yaml:"task"`
	} `json:"job_to_be_done" yaml:"job_to_be_done"`
}

// Filenames lists the requested documents in order.
func (d *Descriptor) Filenames() []string {
	out := make([]string, 0, len(d.Documents))
	for _, doc := range d.Documents {
		out = append(out, doc.Filename)
	}
	return out
}

// FindDescriptor returns the path of the first descriptor present in dir.
func FindDescriptor(dir string) (string, error) {
	for _, name := range DescriptorNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoDescriptor, dir)
}

// LoadDescriptor finds, reads and validates the descriptor in dir.
func LoadDescriptor(dir string) (*Descriptor, error) {
	path, err := FindDescriptor(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}
	ext := filepath.Ext(path)
	return ParseDescriptor(data, ext == ".yaml" || ext == ".yml")
}

// ParseDescriptor decodes JSON, or YAML when isYAML is set, and validates it
// against the embedded schema.
func ParseDescriptor(data []byte, isYAML bool) (*Descriptor, error) {
	if isYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
		}
		data = converted
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	schema, err := descriptorValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	return &d, nil
}

func descriptorValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("descriptor.schema.json", bytes.NewReader(descriptorSchema)); err != nil {
			schemaErr = fmt.Errorf("load descriptor schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("descriptor.schema.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile descriptor schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
