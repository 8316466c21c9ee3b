package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/goseed/internal/config"
	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
)

// Config holds the application configuration loaded from the seedctl
// config file, environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the seedctl config file (~/.seedctl.yaml).
	ConfigFile string

	// Connection is the path of the service connection file
	// (seed-config.json). Empty means SEED_* variables only.
	Connection     string
	OrganizationID int
	Timeout        time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (SEEDCTL_*, plus LOG_*)
//  3. .env files
//  4. Config file (~/.seedctl.yaml or ./.seedctl.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix("SEEDCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	v.SetDefault("organization_id", 0)
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".seedctl")
	}

	if err := v.ReadInConfig(); err != nil {
		// only an explicitly named file has to exist
		if configFile != "" {
			return nil, errors.NewConfigError("seedctl", "cannot read "+configFile, err)
		}
	}

	return &Config{
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		NoColor:        v.GetBool("no-color"),
		Format:         v.GetString("format"),
		ConfigFile:     v.ConfigFileUsed(),
		Connection:     v.GetString("connection"),
		OrganizationID: v.GetInt("organization_id"),
		Timeout:        v.GetDuration("timeout"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:      getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// Flags only win when they were set.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// LoadConnection reads the service connection settings named by the config.
func (c *Config) LoadConnection() (*config.Connection, error) {
	conn, err := config.Load(c.Connection)
	if err != nil {
		return nil, err
	}
	if c.Timeout > 0 {
		conn.Timeout = c.Timeout
	}
	return conn, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
