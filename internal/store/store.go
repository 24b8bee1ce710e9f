// Package store loads the heuristic tables used by the pre-filter: the
// travel-anchor keyword list and the ZIP-prefix city table. Both ship with
// compiled-in defaults; YAML files, when present, replace them wholesale.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"ventus/travel-enrich/internal/logging"

	"gopkg.in/yaml.v3"
)

// HeuristicStore is the interface the pre-filter wiring depends on.
type HeuristicStore interface {
	LoadAnchorKeywords() ([]string, error)
	LoadCityPrefixes() (map[string]string, error)
}

// anchorsFile is the on-disk shape of the anchor keyword list.
type anchorsFile struct {
	Keywords []string `yaml:"keywords"`
}

// citiesFile is the on-disk shape of the ZIP-prefix table.
type citiesFile struct {
	Prefixes map[string]string `yaml:"prefixes"`
}

// defaultAnchorKeywords lists lowercase substrings that identify
// travel-infrastructure merchants: hotel and lodging brands, airlines,
// car rentals, and the generic terms.
var defaultAnchorKeywords = []string{
	"hotel", "motel", "resort", "inn ",
	"marriott", "hilton", "hyatt", "westin", "sheraton", "holiday inn",
	"best western", "four seasons", "ritz-carlton", "wyndham",
	"airbnb", "vrbo",
	"airline", "airlines", "airways", "air ",
	"united", "delta", "american airlines", "southwest", "jetblue",
	"alaska air", "spirit air", "frontier air",
	"hertz", "avis", "enterprise rent", "budget rent", "national car",
	"airport", "parking",
}

// FileStore reads the heuristic tables from YAML files, falling back to the
// built-in defaults when a file is absent.
type FileStore struct {
	AnchorsFile string
	CitiesFile  string
	log         logging.Logger
}

// NewFileStore builds a store over the given file names. Either name may be
// empty, which pins that table to its default.
func NewFileStore(anchorsFile, citiesFile string, log logging.Logger) *FileStore {
	return &FileStore{AnchorsFile: anchorsFile, CitiesFile: citiesFile, log: log}
}

// LoadAnchorKeywords returns the anchor keyword list, from file if configured
// and readable, otherwise the defaults. A copy is returned either way.
func (s *FileStore) LoadAnchorKeywords() ([]string, error) {
	if s.AnchorsFile == "" {
		return append([]string{}, defaultAnchorKeywords...), nil
	}

	path, err := findConfigFile(s.AnchorsFile)
	if err != nil {
		s.log.WithField("file", s.AnchorsFile).Debug("Anchor keyword file not found, using defaults")
		return append([]string{}, defaultAnchorKeywords...), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading anchor keywords: %w", err)
	}

	var parsed anchorsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing anchor keywords: %w", err)
	}
	if len(parsed.Keywords) == 0 {
		return nil, fmt.Errorf("anchor keyword file %s contains no keywords", path)
	}

	s.log.WithFields(
		logging.F("file", path),
		logging.F("count", len(parsed.Keywords)),
	).Debug("Loaded anchor keywords")
	return parsed.Keywords, nil
}

// LoadCityPrefixes returns the ZIP-prefix table from file if configured and
// readable; an empty map signals the caller to use the built-in metro table.
func (s *FileStore) LoadCityPrefixes() (map[string]string, error) {
	if s.CitiesFile == "" {
		return map[string]string{}, nil
	}

	path, err := findConfigFile(s.CitiesFile)
	if err != nil {
		s.log.WithField("file", s.CitiesFile).Debug("City prefix file not found, using defaults")
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading city prefixes: %w", err)
	}

	var parsed citiesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing city prefixes: %w", err)
	}

	s.log.WithFields(
		logging.F("file", path),
		logging.F("count", len(parsed.Prefixes)),
	).Debug("Loaded city prefixes")
	return parsed.Prefixes, nil
}

// DefaultAnchorKeywords exposes a copy of the built-in keyword list.
func DefaultAnchorKeywords() []string {
	return append([]string{}, defaultAnchorKeywords...)
}

// findConfigFile searches the standard locations for a configuration file.
func findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "travel-enrich", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}
