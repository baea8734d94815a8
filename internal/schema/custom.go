package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CustomTypes maps table name -> column name -> target type.
type CustomTypes map[string]map[string]string

type customTypesFile struct {
	Tables []struct {
		Name    string            `yaml:"name"`
		Columns map[string]string `yaml:"columns"`
	} `yaml:"tables"`
}

// LoadCustomTypes reads a YAML override file:
//
//	tables:
//	  - name: Singers
//	    columns:
//	      SingerInfo: "*pb.SingerInfo"
func LoadCustomTypes(path string) (CustomTypes, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read custom types: %w", err)
	}
	return ParseCustomTypes(buf)
}

// ParseCustomTypes decodes the YAML override format read by LoadCustomTypes.
func ParseCustomTypes(buf []byte) (CustomTypes, error) {
	var f customTypesFile
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("failed to parse custom types: %w", err)
	}
	custom := make(CustomTypes, len(f.Tables))
	for _, t := range f.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("failed to parse custom types: table entry without name")
		}
		if custom[t.Name] == nil {
			custom[t.Name] = make(map[string]string, len(t.Columns))
		}
		for col, typ := range t.Columns {
			custom[t.Name][col] = typ
		}
	}
	return custom, nil
}
