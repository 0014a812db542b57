package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "fracjobs"
	ConfigFileName  = "config.json5"
	ProxiesFileName = "proxies.txt"
	DatabaseName    = "fracjobs.db"
)

// Config is the full settings tree: defaults, then the config file, then
// FRACJOBS_* environment overrides, strongest last.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Pipeline PipelineConfig `json:"pipeline"`
	Network  NetworkConfig  `json:"network"`
}

type DatabaseConfig struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
}

type PipelineConfig struct {
	StalenessHours      int      `json:"staleness_hours"`
	DefaultHoursPerWeek float64  `json:"default_hours_per_week"`
	MinCompSample       int      `json:"min_comp_sample"`
	MonthlyThreshold    float64  `json:"monthly_threshold"`
	AnnualThreshold     float64  `json:"annual_threshold"`
	Sources             []string `json:"sources"`
	MaxPages            int      `json:"max_pages"`
	Schedule            string   `json:"schedule"`
}

type NetworkConfig struct {
	TimeoutSeconds int      `json:"timeout_seconds"`
	ProxiesFile    string   `json:"proxies_file"`
	UserAgents     []string `json:"user_agents"`
}

func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: "sqlite3",
		},
		Pipeline: PipelineConfig{
			StalenessHours:      48,
			DefaultHoursPerWeek: 15,
			MinCompSample:       3,
			MonthlyThreshold:    1000,
			AnnualThreshold:     50000,
			Sources:             []string{"fractionaljobs", "indeed"},
			MaxPages:            3,
			Schedule:            "0 7 * * *",
		},
		Network: NetworkConfig{
			TimeoutSeconds: 30,
		},
	}
}

// Staleness converts the configured hours into the cutoff duration used by
// the reconciliation engine.
func (p PipelineConfig) Staleness() time.Duration {
	return time.Duration(p.StalenessHours) * time.Hour
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// ResolvedDSN returns the configured DSN, or the database file next to the
// config file when none is set.
func (c Config) ResolvedDSN() (string, error) {
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		return dsn, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DatabaseName), nil
}

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Database.Driver = envString("FRACJOBS_DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = envString("FRACJOBS_DB_DSN", cfg.Database.DSN)
	cfg.Pipeline.StalenessHours = envInt("FRACJOBS_STALENESS_HOURS", cfg.Pipeline.StalenessHours)
	cfg.Pipeline.DefaultHoursPerWeek = envFloat("FRACJOBS_DEFAULT_HOURS_PER_WEEK", cfg.Pipeline.DefaultHoursPerWeek)
	cfg.Pipeline.MinCompSample = envInt("FRACJOBS_MIN_COMP_SAMPLE", cfg.Pipeline.MinCompSample)
	cfg.Pipeline.MonthlyThreshold = envFloat("FRACJOBS_MONTHLY_THRESHOLD", cfg.Pipeline.MonthlyThreshold)
	cfg.Pipeline.AnnualThreshold = envFloat("FRACJOBS_ANNUAL_THRESHOLD", cfg.Pipeline.AnnualThreshold)
	if env := strings.TrimSpace(os.Getenv("FRACJOBS_SOURCES")); env != "" {
		cfg.Pipeline.Sources = splitCSV(env)
	}
	cfg.Pipeline.MaxPages = envInt("FRACJOBS_MAX_PAGES", cfg.Pipeline.MaxPages)
	cfg.Pipeline.Schedule = envString("FRACJOBS_SCHEDULE", cfg.Pipeline.Schedule)
	cfg.Network.TimeoutSeconds = envInt("FRACJOBS_HTTP_TIMEOUT_SECONDS", cfg.Network.TimeoutSeconds)
	cfg.Network.ProxiesFile = envString("FRACJOBS_PROXIES_FILE", cfg.Network.ProxiesFile)
}

const defaultConfigTemplate = `{
  // Storage. driver is sqlite3 or postgres; an empty dsn keeps the
  // database next to this file.
  database: {
    driver: "sqlite3",
    dsn: "",
  },

  // Ingestion and normalization knobs.
  pipeline: {
    staleness_hours: 48,
    default_hours_per_week: 15,
    min_comp_sample: 3,
    monthly_threshold: 1000,
    annual_threshold: 50000,
    sources: ["fractionaljobs", "indeed"],
    max_pages: 3,
    schedule: "0 7 * * *",
  },

  // Outbound HTTP. An empty user_agents list uses the built-in pool.
  network: {
    timeout_seconds: 30,
    proxies_file: "",
    user_agents: [],
  },
}
`

// Init writes a commented default config and an empty proxies file, skipping
// anything that already exists.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o644); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

// LoadProxies resolves the proxy list: an explicit comma-separated flag
// value wins, then FRACJOBS_PROXIES, then the configured file, then the
// default proxies file. File lines starting with # are comments.
func LoadProxies(flagValue, configuredPath string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("FRACJOBS_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path := strings.TrimSpace(configuredPath)
	if path == "" {
		var err error
		path, err = ProxiesPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
