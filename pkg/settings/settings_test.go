package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	s := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if s != defaultSettings {
		t.Errorf("got %+v, want defaults %+v", s, defaultSettings)
	}
}

func TestLoadFromMalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if s := LoadFrom(path); s != defaultSettings {
		t.Errorf("got %+v, want defaults %+v", s, defaultSettings)
	}
}

func TestLoadFromBackfillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"startIndex": 4}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := LoadFrom(path)
	if s.StartIndex != 4 {
		t.Errorf("StartIndex = %d, want 4", s.StartIndex)
	}
	if s.Manifest != defaultSettings.Manifest {
		t.Errorf("Manifest = %q, want default %q", s.Manifest, defaultSettings.Manifest)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Settings{Manifest: "s3://feeds/manifest.json", StartIndex: -2}

	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	if got := LoadFrom(path); got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}
