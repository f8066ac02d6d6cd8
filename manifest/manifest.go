// Package manifest loads command specs from a YAML document, as an
// alternative registration source to doc comments. A manifest carries only
// the declarative half of a command; handlers stay in code and are paired
// with their command by name at bind time.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"climenu"
)

// Manifest is the top-level YAML document listing command definitions.
type Manifest struct {
	Commands []Command `yaml:"commands"`
}

// Command is one command definition in a manifest.
type Command struct {
	Name        string  `yaml:"name"`
	Summary     string  `yaml:"summary"`
	Description string  `yaml:"description"`
	Params      []Param `yaml:"params"`
}

// Param is one parameter definition in a manifest. Type must resolve against
// the registry's closed primitive type set.
type Param struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
	Help     string `yaml:"help"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses manifest data and validates every command definition, so a
// malformed manifest is rejected as a whole before anything is registered.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]bool, len(m.Commands))
	for _, cmd := range m.Commands {
		if cmd.Name == "" {
			return climenu.NewRegistrationError("", "manifest command has no name", nil)
		}
		if cmd.Summary == "" {
			return climenu.NewRegistrationError(cmd.Name, "manifest command has no summary", nil)
		}
		if seen[cmd.Name] {
			return climenu.NewRegistrationError(cmd.Name, "duplicate manifest command", nil)
		}
		seen[cmd.Name] = true

		for _, p := range cmd.Params {
			if p.Name == "" {
				return climenu.NewRegistrationError(cmd.Name, "manifest parameter has no name", nil)
			}
			if _, err := climenu.ResolveType(p.Type); err != nil {
				return climenu.NewRegistrationError(cmd.Name,
					fmt.Sprintf("parameter %q has an unresolvable type", p.Name), err)
			}
		}
	}
	return nil
}

// Specs pairs each manifest command with its handler and returns registrable
// command specs. A command without a matching handler is an error.
func (m *Manifest) Specs(handlers map[string]climenu.Handler) ([]climenu.CommandSpec, error) {
	specs := make([]climenu.CommandSpec, 0, len(m.Commands))
	for _, cmd := range m.Commands {
		run, ok := handlers[cmd.Name]
		if !ok {
			return nil, climenu.NewRegistrationError(cmd.Name, "no handler bound for manifest command", nil)
		}
		spec := climenu.CommandSpec{
			Name:        cmd.Name,
			Summary:     cmd.Summary,
			Description: cmd.Description,
			Run:         run,
		}
		for _, p := range cmd.Params {
			tag, err := climenu.ResolveType(p.Type)
			if err != nil {
				// validate() already vetted the type names.
				return nil, climenu.NewRegistrationError(cmd.Name,
					fmt.Sprintf("parameter %q has an unresolvable type", p.Name), err)
			}
			spec.Args = append(spec.Args, climenu.ArgSpec{
				Name:     p.Name,
				Type:     tag,
				Optional: p.Optional,
				Help:     p.Help,
			})
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Bind registers every manifest command against reg using the given handler
// map. Registration stops at the first failure.
func (m *Manifest) Bind(reg *climenu.Registry, handlers map[string]climenu.Handler) error {
	specs, err := m.Specs(handlers)
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if err := reg.Register(spec); err != nil {
			return err
		}
	}
	return nil
}
