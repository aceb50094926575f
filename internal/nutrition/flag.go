package nutrition

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Flag is a yes/no label attribute. Catalog files in the wild encode it
// either as a boolean or as 0/1, so both forms decode. Any other number is
// rejected.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", "0":
		*f = false
		return nil
	case "true", "1":
		*f = true
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return f.fromNumber(n, string(data))
	}
	return fmt.Errorf("nutrition.Flag: invalid value %s", data)
}

func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	var b bool
	if err := node.Decode(&b); err == nil {
		*f = Flag(b)
		return nil
	}
	var n float64
	if err := node.Decode(&n); err == nil {
		if err := f.fromNumber(n, node.Value); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		return nil
	}
	return fmt.Errorf("nutrition.Flag: line %d: invalid value %q", node.Line, node.Value)
}

func (f *Flag) fromNumber(n float64, raw string) error {
	switch n {
	case 0:
		*f = false
	case 1:
		*f = true
	default:
		return fmt.Errorf("nutrition.Flag: invalid value %s (want 0 or 1)", raw)
	}
	return nil
}
