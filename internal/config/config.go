package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	TokenPath   string
	OrgPath     string
	NetworkName string
	OutputPath  string
	PDFPath     string
	CSVPath     string
	ArchivePath string
	BaseURL     string
	Timeout     time.Duration
	Lookback    time.Duration
	MockMode    bool
	Trace       bool
	Debug       bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables. An optional .env file in
// the working directory seeds the environment before lookup.
func Load() *Config {
	// Ignore a missing .env; it is purely optional.
	_ = godotenv.Load()

	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.TokenPath = getEnv("APUTIL_TOKEN_FILE", "token.txt")
	cfg.OrgPath = getEnv("APUTIL_ORG_FILE", "org.txt")
	cfg.NetworkName = getEnv("APUTIL_NETWORK", "")
	cfg.OutputPath = getEnv("APUTIL_OUTPUT", "aputil-report.html")
	cfg.BaseURL = getEnv("APUTIL_BASE_URL", "https://api.meraki.com/api/v1")
	cfg.Timeout = getEnvDuration("APUTIL_TIMEOUT", 30*time.Second)
	cfg.Lookback = getEnvDuration("APUTIL_LOOKBACK", 10*time.Minute)
	cfg.MockMode = getEnvBool("APUTIL_MOCK", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.TokenPath, "token-file", cfg.TokenPath, "Path to the API key file")
	flag.StringVar(&cfg.OrgPath, "org-file", cfg.OrgPath, "Path to the organization ID file")
	flag.StringVar(&cfg.NetworkName, "network", cfg.NetworkName, "Network name to report on (defaults to the only network)")
	flag.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "Output HTML file")
	flag.StringVar(&cfg.PDFPath, "pdf", "", "Also write a summary PDF to this path (empty to disable)")
	flag.StringVar(&cfg.CSVPath, "csv", "", "Also write report rows as CSV to this path (empty to disable)")
	flag.StringVar(&cfg.ArchivePath, "archive", "", "Append this run's rows to a SQLite snapshot archive (empty to disable)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Dashboard API base URL")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request HTTP timeout")
	flag.DurationVar(&cfg.Lookback, "lookback", cfg.Lookback, "History window queried for the latest sample")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run against a built-in mock dashboard (no credentials needed)")
	flag.BoolVar(&cfg.Trace, "trace", false, "Emit OpenTelemetry traces to stdout")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
