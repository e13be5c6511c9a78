package manifest

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["https://cdn.example/a.mp4","https://cdn.example/b.mp4"]`))
	}))
	defer srv.Close()

	locators, err := Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(locators) != 2 || locators[0] != "https://cdn.example/a.mp4" {
		t.Errorf("unexpected locators: %v", locators)
	}
}

func TestFetchHTTPFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not": "a list"}`))
			},
		},
		{
			name: "empty list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if _, err := Fetch(srv.URL); !errors.Is(err, ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte(`["local/a.mp4"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	locators, err := Fetch(path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(locators) != 1 || locators[0] != "local/a.mp4" {
		t.Errorf("unexpected locators: %v", locators)
	}
}

func TestFetchFileMissing(t *testing.T) {
	if _, err := Fetch(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestFetchS3MalformedSource(t *testing.T) {
	for _, source := range []string{"s3://", "s3://bucket-only", "s3:///key-only"} {
		if _, err := Fetch(source); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Fetch(%q): expected ErrUnavailable, got %v", source, err)
		}
	}
}
