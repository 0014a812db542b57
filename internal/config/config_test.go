package config

import (
	"os"
	"path/filepath"
	"testing"
)

// testConfigDir points os.UserConfigDir at a temp dir and returns the
// directory Load and Init will use.
func testConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, DirName)
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	testConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Pipeline.StalenessHours != 48 {
		t.Errorf("staleness_hours = %d", cfg.Pipeline.StalenessHours)
	}
	if cfg.Pipeline.DefaultHoursPerWeek != 15 {
		t.Errorf("default_hours_per_week = %v", cfg.Pipeline.DefaultHoursPerWeek)
	}
	if len(cfg.Pipeline.Sources) != 2 {
		t.Errorf("sources = %v", cfg.Pipeline.Sources)
	}
	if cfg.Network.TimeoutSeconds != 30 {
		t.Errorf("timeout_seconds = %d", cfg.Network.TimeoutSeconds)
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	dir := testConfigDir(t)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	file := `{
  // comments and trailing commas are fine here
  database: { driver: "postgres", dsn: "postgres://localhost/fracjobs?sslmode=disable" },
  pipeline: { max_pages: 2, },
}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FRACJOBS_MAX_PAGES", "7")
	t.Setenv("FRACJOBS_STALENESS_HOURS", "24")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %q, want file value", cfg.Database.Driver)
	}
	if cfg.Pipeline.MaxPages != 7 {
		t.Errorf("max_pages = %d, want env to beat file", cfg.Pipeline.MaxPages)
	}
	if cfg.Pipeline.StalenessHours != 24 {
		t.Errorf("staleness_hours = %d, want env value", cfg.Pipeline.StalenessHours)
	}
	if cfg.Pipeline.DefaultHoursPerWeek != 15 {
		t.Errorf("default_hours_per_week = %v, want untouched default", cfg.Pipeline.DefaultHoursPerWeek)
	}
}

func TestInitCreatesFilesOnce(t *testing.T) {
	testConfigDir(t)

	created, err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 created files, got %v", created)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() after Init error = %v", err)
	}
	if cfg.Pipeline.Schedule != "0 7 * * *" {
		t.Errorf("schedule = %q", cfg.Pipeline.Schedule)
	}

	again, err := Init()
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second Init should create nothing, got %v", again)
	}
}

func TestResolvedDSN(t *testing.T) {
	dir := testConfigDir(t)

	cfg := DefaultConfig()
	dsn, err := cfg.ResolvedDSN()
	if err != nil {
		t.Fatalf("ResolvedDSN() error = %v", err)
	}
	if want := filepath.Join(dir, DatabaseName); dsn != want {
		t.Errorf("default dsn = %q, want %q", dsn, want)
	}

	cfg.Database.DSN = "postgres://localhost/fracjobs"
	dsn, err = cfg.ResolvedDSN()
	if err != nil {
		t.Fatalf("ResolvedDSN() error = %v", err)
	}
	if dsn != "postgres://localhost/fracjobs" {
		t.Errorf("explicit dsn = %q", dsn)
	}
}

func TestLoadProxies(t *testing.T) {
	testConfigDir(t)

	proxies, err := LoadProxies(" http://p1:8080 , http://p2:8080 ", "")
	if err != nil {
		t.Fatalf("LoadProxies(flag) error = %v", err)
	}
	if len(proxies) != 2 || proxies[0] != "http://p1:8080" {
		t.Fatalf("flag proxies = %v", proxies)
	}

	t.Setenv("FRACJOBS_PROXIES", "socks5://p3:1080")
	proxies, err = LoadProxies("", "")
	if err != nil {
		t.Fatalf("LoadProxies(env) error = %v", err)
	}
	if len(proxies) != 1 || proxies[0] != "socks5://p3:1080" {
		t.Fatalf("env proxies = %v", proxies)
	}
	t.Setenv("FRACJOBS_PROXIES", "")

	path := filepath.Join(t.TempDir(), "proxies.txt")
	if err := os.WriteFile(path, []byte("# staging pool\nhttp://p4:3128\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	proxies, err = LoadProxies("", path)
	if err != nil {
		t.Fatalf("LoadProxies(file) error = %v", err)
	}
	if len(proxies) != 1 || proxies[0] != "http://p4:3128" {
		t.Fatalf("file proxies = %v", proxies)
	}

	proxies, err = LoadProxies("", "")
	if err != nil {
		t.Fatalf("LoadProxies(missing) error = %v", err)
	}
	if proxies != nil {
		t.Fatalf("missing default file should yield nil, got %v", proxies)
	}
}
