package ipmeta

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// countriesJSON is the bundled ISO 3166-1 alpha-2 code to display name
// mapping, shipped inside the binary so a default Handler needs no files on
// disk.
//
//go:embed countries.json
var countriesJSON []byte

// loadCountries reads the country table from path, or from the bundled
// dataset when path is empty. It is called once per Handler; a missing file
// or invalid JSON fails Handler construction, there is no partial fallback.
func loadCountries(path string) (map[string]string, error) {
	data := countriesJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read countries file: %w", err)
		}
		data = b
	}

	var countries map[string]string
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, fmt.Errorf("parse countries file: %w", err)
	}
	return countries, nil
}
