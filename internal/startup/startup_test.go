package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestLoadConfigDefaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SourceURL != "https://picsum.photos" {
		t.Errorf("SourceURL = %q, want https://picsum.photos", cfg.SourceURL)
	}
	if cfg.FetchConcurrency != 5 {
		t.Errorf("FetchConcurrency = %d, want 5", cfg.FetchConcurrency)
	}
	if cfg.DownloadTimeout != 2*time.Minute {
		t.Errorf("DownloadTimeout = %v, want 2m", cfg.DownloadTimeout)
	}
	if cfg.DatabasePath != filepath.Join(dataDir, "gallery.db") {
		t.Errorf("DatabasePath = %q, want under %q", cfg.DatabasePath, dataDir)
	}
	if cfg.ImagesDir != filepath.Join(dataDir, "images") {
		t.Errorf("ImagesDir = %q, want under %q", cfg.ImagesDir, dataDir)
	}
}

func TestLoadConfigCreatesImagesDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	info, err := os.Stat(cfg.ImagesDir)
	if err != nil {
		t.Fatalf("images dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("images path is not a directory")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("SOURCE_URL", "http://localhost:1234/")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("DOWNLOAD_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.SourceURL != "http://localhost:1234" {
		t.Errorf("SourceURL = %q, want trailing slash trimmed", cfg.SourceURL)
	}
	if cfg.FetchConcurrency != 8 {
		t.Errorf("FetchConcurrency = %d, want 8", cfg.FetchConcurrency)
	}
	if cfg.DownloadTimeout != 30*time.Second {
		t.Errorf("DownloadTimeout = %v, want 30s", cfg.DownloadTimeout)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("FETCH_CONCURRENCY", "not-a-number")
	t.Setenv("DOWNLOAD_TIMEOUT", "forever")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.FetchConcurrency != 5 {
		t.Errorf("FetchConcurrency = %d, want default 5", cfg.FetchConcurrency)
	}
	if cfg.DownloadTimeout != 2*time.Minute {
		t.Errorf("DownloadTimeout = %v, want default 2m", cfg.DownloadTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want default true")
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/images", func(http.ResponseWriter, *http.Request) {}).Methods(http.MethodGet)
	router.HandleFunc("/api/images/fetch", func(http.ResponseWriter, *http.Request) {}).Methods(http.MethodPost)

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes failed: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}
	if routes[0].Method != http.MethodGet || routes[0].Path != "/api/images" {
		t.Errorf("unexpected first route: %+v", routes[0])
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/images", "api/images"},
		{"/api/images/fetch", "api/images"},
		{"/health", "health"},
		{"/metrics", "metrics"},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := getRouteGroup(tt.path); got != tt.want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion is empty")
	}
}
