package vessel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseDesign decodes a YAML design document.
func ParseDesign(data []byte) (*Design, error) {
	var d Design
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("vessel: decoding design: %w", err)
	}
	return &d, nil
}

// LoadDesign reads a YAML design file. The design is not validated. A
// design without a name is named after the file.
func LoadDesign(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vessel: reading design: %w", err)
	}
	d, err := ParseDesign(data)
	if err != nil {
		return nil, err
	}
	if d.Name == "" {
		d.Name = NameFromPath(path)
	}
	return d, nil
}

// NameFromPath derives a design name from a file path: the base name
// without its extension.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Marshal encodes the design as YAML.
func (d Design) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
