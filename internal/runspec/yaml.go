package runspec

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phorms/enki/internal/modtable"
)

type yamlSelection struct {
	Table  string            `yaml:"table"`
	Params map[string]string `yaml:"params"`
}

// UnmarshalYAML accepts either a bare string naming a table or group,
// or a mapping with table and params.
func (s *yamlSelection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&s.Table)
	}
	type plain yamlSelection
	return node.Decode((*plain)(s))
}

type yamlRunSpec struct {
	N      int64           `yaml:"n"`
	Select []yamlSelection `yaml:"select"`
}

// LoadYAML decodes a YAML run spec file. Unknown fields are rejected.
func LoadYAML(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run spec: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes run spec YAML from memory.
func ParseYAML(data []byte) (*RunSpec, error) {
	var raw yamlRunSpec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, &LoadError{
			Field:   "yaml",
			Message: err.Error(),
		}
	}

	spec := &RunSpec{N: raw.N}
	for _, s := range raw.Select {
		sel := modtable.Selection{Table: s.Table}
		if len(s.Params) > 0 {
			sel.Params = modtable.Params(s.Params)
		}
		spec.Selections = append(spec.Selections, sel)
	}
	return normalize(spec)
}
