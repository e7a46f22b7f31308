// Package seedfile reads the default status workflow from YAML.
package seedfile

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"repairdesk/internal/core/application/usecases/commands"
	"repairdesk/internal/core/domain/model/status"

	"gopkg.in/yaml.v3"
)

const supportedVersion = 1

//go:embed default_statuses.yaml
var defaultStatuses []byte

// ErrUnsupportedVersion is returned for seed files written for another format version.
var ErrUnsupportedVersion = errors.New("unsupported seed file version")

// File models a status seed file.
type File struct {
	Version  int          `yaml:"version"`
	Statuses []StatusSeed `yaml:"statuses"`
}

// StatusSeed is one status entry.
type StatusSeed struct {
	Name          string   `yaml:"name"`
	Order         int      `yaml:"order"`
	Color         string   `yaml:"color"`
	Icon          string   `yaml:"icon,omitempty"`
	Initial       bool     `yaml:"initial,omitempty"`
	Final         bool     `yaml:"final,omitempty"`
	Pickup        bool     `yaml:"pickup,omitempty"`
	TriggersEmail bool     `yaml:"triggers_email,omitempty"`
	Next          []string `yaml:"next,omitempty"`
	Previous      []string `yaml:"previous,omitempty"`
}

// Load reads the seed file at path, or the built-in workflow when path is empty.
func Load(path string) ([]commands.StatusSeed, error) {
	if path == "" {
		return Parse(defaultStatuses)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML. Unknown keys are rejected so typos in flag names
// do not silently produce a different workflow.
func Parse(data []byte) ([]commands.StatusSeed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if file.Version != supportedVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, file.Version)
	}

	seeds := make([]commands.StatusSeed, 0, len(file.Statuses))
	for _, s := range file.Statuses {
		seeds = append(seeds, commands.StatusSeed{
			Name:  s.Name,
			Order: s.Order,
			Color: s.Color,
			Icon:  s.Icon,
			Flags: status.Flags{
				Initial:       s.Initial,
				Final:         s.Final,
				Pickup:        s.Pickup,
				TriggersEmail: s.TriggersEmail,
			},
			Next:     s.Next,
			Previous: s.Previous,
		})
	}
	return seeds, nil
}
