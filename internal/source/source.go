// Package source reads vendor export files: JSON arrays of product objects
// with no schema version tag.
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"catalog-reseeder/internal/models"
)

var (
	// ErrRead marks a file that is missing or unreadable. Non-fatal to the
	// run: the file contributes zero products.
	ErrRead = errors.New("source file unreadable")
	// ErrParse marks malformed file content. Downstream stages assume
	// well-formed input, so this escalates to abort the run.
	ErrParse = errors.New("source file malformed")
)

// Load reads and parses one export file into raw records.
func Load(path string) ([]models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	var records []models.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return records, nil
}
