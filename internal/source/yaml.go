package source

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riverfjs/autolink-go/internal/types"
)

// thingsFile is the on-disk layout:
//
//	things:
//	  - key: notes/rust.md
//	    alias: Rust
//	  - key: notes/go.md
//	    aliases: [Go, Golang]
type thingsFile struct {
	Things []thing `yaml:"things"`
}

type thing struct {
	Key     string   `yaml:"key"`
	Alias   string   `yaml:"alias"`
	Aliases []string `yaml:"aliases"`
}

// ParseYAML decodes an entity file. A thing yields one entity per alias, alias
// first and then aliases in order; a thing with neither yields one entity with
// an empty alias, which the index rejects.
func ParseYAML(data []byte) ([]types.Entity, error) {
	var f thingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode entities: %w", err)
	}
	entities := make([]types.Entity, 0, len(f.Things))
	for _, t := range f.Things {
		if t.Alias == "" && len(t.Aliases) == 0 {
			entities = append(entities, types.Entity{Key: t.Key})
			continue
		}
		if t.Alias != "" {
			entities = append(entities, types.Entity{Key: t.Key, Alias: t.Alias})
		}
		for _, a := range t.Aliases {
			entities = append(entities, types.Entity{Key: t.Key, Alias: a})
		}
	}
	return entities, nil
}

// YAMLFile is a Source backed by a YAML file, re-read on every Refresh.
type YAMLFile struct {
	snapshot
	path string
}

// NewYAMLFile creates a YAMLFile source. Nothing is read until Refresh.
func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

// Refresh implements Source.
func (s *YAMLFile) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read entities file: %w", err)
	}
	entities, err := ParseYAML(data)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	s.set(entities)
	return nil
}

// Entities implements Source.
func (s *YAMLFile) Entities() []types.Entity {
	return s.get()
}
