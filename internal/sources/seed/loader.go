package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/bookshelf/internal/domain"
)

// Loader reads books from a YAML seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file.
// ${VAR} references are expanded from the environment first, and unknown
// keys are rejected so that typos in field names do not go unnoticed.
func (l *Loader) Load() ([]domain.Payload, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil // empty file
		}
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return file.Books, nil
}

// Creator is the part of the book service seeding needs.
type Creator interface {
	Create(ctx context.Context, p domain.Payload) (string, error)
}

// Seed creates every payload through c, in order, and stops at the first
// rejected entry. It returns how many books were created.
func Seed(ctx context.Context, c Creator, payloads []domain.Payload) (int, error) {
	for i, p := range payloads {
		if _, err := c.Create(ctx, p); err != nil {
			return i, fmt.Errorf("seed entry %d (%q): %w", i, p.Name, err)
		}
	}
	return len(payloads), nil
}
