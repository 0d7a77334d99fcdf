package value

import (
	"fmt"

	"sigs.k8s.io/yaml"
)

// ParseYAML decodes a YAML document by converting it to JSON first. Only the
// JSON compatible subset of YAML is supported.
func ParseYAML(data []byte) (Value, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return Parse(js)
}

// ToYAML encodes v as a YAML document.
func ToYAML(v Value) ([]byte, error) {
	js, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(js)
}
