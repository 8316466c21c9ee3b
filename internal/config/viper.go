// Package config loads the connection settings for the remote service.
//
// Settings come from a JSON or YAML file (the service's own
// "seed-config.json" layout), overridden by SEED_* environment variables,
// which may in turn come from .env files.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
)

// EnvPrefix is the prefix of environment variables that override file settings.
const EnvPrefix = "SEED"

// Connection holds everything needed to reach the service.
type Connection struct {
	Name     string        `mapstructure:"name"`
	BaseURL  string        `mapstructure:"base_url"`
	Username string        `mapstructure:"username"`
	APIKey   string        `mapstructure:"api_key"`
	Port     int           `mapstructure:"port"`
	UseSSL   bool          `mapstructure:"use_ssl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// keys lists every setting so AutomaticEnv can see variables that are not
// in the file.
var keys = []string{"name", "base_url", "username", "api_key", "port", "use_ssl", "timeout"}

// Load reads the connection settings. path may be empty, in which case only
// environment variables (and .env files) are consulted.
func Load(path string) (*Connection, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, errors.NewConfigError("connection", "bind "+k, err)
		}
	}
	v.SetDefault("name", "seed")
	v.SetDefault("timeout", constants.DefaultHTTPTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
			v.SetConfigType("json")
		}
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr != nil {
				return nil, errors.NewConfigError("connection", "config file "+path+" not found", statErr)
			}
			return nil, errors.NewConfigError("connection", "cannot read "+path, err)
		}
	}

	var conn Connection
	if err := v.Unmarshal(&conn); err != nil {
		return nil, errors.NewConfigError("connection", "cannot decode settings", err)
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	return &conn, nil
}

// Validate checks that the required settings are present.
func (c *Connection) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "base_url")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if len(missing) > 0 {
		return errors.NewConfigError("connection", "missing "+strings.Join(missing, ", "), nil)
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.NewConfigError("connection", fmt.Sprintf("port %d out of range", c.Port), nil)
	}
	return nil
}

// URL returns the service root. A scheme in BaseURL wins over UseSSL, and a
// non-zero Port replaces any port in BaseURL.
func (c *Connection) URL() string {
	raw := c.BaseURL
	if !strings.Contains(raw, "://") {
		scheme := "http"
		if c.UseSSL {
			scheme = "https"
		}
		raw = scheme + "://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if c.Port > 0 && !isDefaultPort(u.Scheme, c.Port) {
		u.Host = fmt.Sprintf("%s:%d", u.Hostname(), c.Port)
	}
	return strings.TrimRight(u.String(), "/")
}

func isDefaultPort(scheme string, port int) bool {
	return (scheme == "http" && port == 80) || (scheme == "https" && port == 443)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is read first so its values win; godotenv never overrides
// variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
