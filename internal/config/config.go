// Package config loads server settings from an optional YAML file and the
// environment. Environment variables always win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type AdminConfig struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	JWTSecret string `yaml:"jwt_secret"`
}

// SMTPConfig configures the outbound relay. ContactEmail receives every
// contact form submission.
type SMTPConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	ContactEmail string `yaml:"contact_email"`
}

// Configured reports whether enough is set to dial the relay.
func (s SMTPConfig) Configured() bool {
	return s.Host != "" && s.Username != "" && s.Password != "" && s.ContactEmail != ""
}

type Config struct {
	Port        string      `yaml:"port"`
	Env         string      `yaml:"env"`
	DataFile    string      `yaml:"data_file"`
	PublicDir   string      `yaml:"public_dir"`
	DistDir     string      `yaml:"dist_dir"`
	AnalyticsDB string      `yaml:"analytics_db"`
	CORSOrigins []string    `yaml:"cors_origins"`
	Admin       AdminConfig `yaml:"admin"`
	SMTP        SMTPConfig  `yaml:"smtp"`
}

// Default returns the non-secret defaults. Credentials are never defaulted.
func Default() *Config {
	return &Config{
		Port:        "3000",
		Env:         "development",
		DataFile:    "data/portfolio.json",
		PublicDir:   "public",
		DistDir:     "dist",
		AnalyticsDB: "data/analytics.db",
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// Load reads path (if non-empty and present) on top of Default and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Port, "PORT")
	setString(&c.Env, "APP_ENV")
	setString(&c.DataFile, "PORTFOLIO_DATA_FILE")
	setString(&c.PublicDir, "PUBLIC_DIR")
	setString(&c.DistDir, "DIST_DIR")
	if v, ok := os.LookupEnv("ANALYTICS_DB"); ok {
		// an explicitly empty value turns tracking off
		c.AnalyticsDB = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); v != "" {
		c.CORSOrigins = splitList(v)
	}

	setString(&c.Admin.Username, "ADMIN_EMAIL", "ADMIN_USERNAME")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setString(&c.Admin.JWTSecret, "JWT_SECRET")

	setString(&c.SMTP.Host, "SMTP_HOST")
	if v := strings.TrimSpace(os.Getenv("SMTP_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = p
		}
	}
	setString(&c.SMTP.Username, "EMAIL_USER", "SMTP_USER")
	setString(&c.SMTP.Password, "EMAIL_PASS", "SMTP_PASS")
	setString(&c.SMTP.ContactEmail, "TO_EMAIL", "CONTACT_EMAIL")
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Validate checks what the HTTP server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port is empty"))
	}
	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, errors.New("data file is empty"))
	}
	if c.Admin.Username == "" {
		errs = append(errs, errors.New("ADMIN_USERNAME is not set"))
	}
	if c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is not set"))
	}
	if c.Admin.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	return errors.Join(errs...)
}

// setString assigns the non-empty env vars among names in order, so the last
// one set wins.
func setString(dst *string, names ...string) {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
