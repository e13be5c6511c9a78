package settings

import (
	"encoding/json"
	"os"
)

// Settings represents user-tunable configuration that should persist across
// application restarts. Add additional fields here as new settings are
// introduced.
type Settings struct {
	Manifest   string `json:"manifest"`   // manifest source: http(s) URL, s3://bucket/key, or local path
	StartIndex int    `json:"startIndex"` // global feed index to open on
}

var defaultSettings = Settings{
	Manifest:   "manifest.json",
	StartIndex: 0,
}

const filename = "settings.json"

// Load reads the settings file from disk. When the file is missing or cannot
// be parsed, sane defaults are returned instead so the application can
// continue running.
func Load() Settings {
	return LoadFrom(filename)
}

// LoadFrom reads settings from an explicit path; see Load.
func LoadFrom(path string) Settings {
	f, err := os.Open(path)
	if err != nil {
		// No existing file - return defaults.
		return defaultSettings
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		// Malformed file - fall back to defaults.
		return defaultSettings
	}

	// Ensure zero-values are replaced by defaults so that partially written
	// configuration files do not break behaviour when new fields are added.
	if s.Manifest == "" {
		s.Manifest = defaultSettings.Manifest
	}

	return s
}

// Save writes the provided settings to disk, creating the file when
// necessary. Any error is returned to the caller so it can be logged.
func Save(s Settings) error {
	return SaveTo(filename, s)
}

// SaveTo writes settings to an explicit path; see Save.
func SaveTo(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
