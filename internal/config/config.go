// Package config, uygulama ayarlarını varsayılanlar, isteğe bağlı bir YAML
// dosyası ve ortam değişkenlerinden bu sırayla okur.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Oturum deposu seçenekleri
const (
	SessionStoreMemory = "memory"
	SessionStoreSQL    = "sql"
)

// SMTP, e-posta sunucusu ayarları
type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Config, sunucunun tüm ayarları
type Config struct {
	Port          string `yaml:"port"`
	DBDriver      string `yaml:"db_driver"`
	DatabaseURL   string `yaml:"database_url"`
	CatalogPath   string `yaml:"catalog_path"`
	SessionStore  string `yaml:"session_store"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	SecurityLog   string `yaml:"security_log"`
	TLS           bool   `yaml:"tls"`
	SMTP          SMTP   `yaml:"smtp"`
}

// Default, varsayılan ayarları döndürür
func Default() Config {
	return Config{
		Port:         "8080",
		DBDriver:     "sqlite",
		DatabaseURL:  "storefront.db",
		SessionStore: SessionStoreSQL,
		SecurityLog:  "security.log",
		SMTP:         SMTP{Port: 587},
	}
}

// Load, varsayılanların üzerine dosyayı (path boş değilse) ve ortam
// değişkenlerini uygular
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"PORT":           &c.Port,
		"DB_DRIVER":      &c.DBDriver,
		"DATABASE_URL":   &c.DatabaseURL,
		"CATALOG_PATH":   &c.CatalogPath,
		"SESSION_STORE":  &c.SessionStore,
		"ADMIN_EMAIL":    &c.AdminEmail,
		"ADMIN_PASSWORD": &c.AdminPassword,
		"SECURITY_LOG":   &c.SecurityLog,
		"SMTP_HOST":      &c.SMTP.Host,
		"SMTP_USER":      &c.SMTP.User,
		"SMTP_PASS":      &c.SMTP.Password,
		"SMTP_FROM":      &c.SMTP.From,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	if v, ok := os.LookupEnv("SMTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMTP_PORT: %w", err)
		}
		c.SMTP.Port = port
	}
	if v, ok := os.LookupEnv("TLS"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TLS: %w", err)
		}
		c.TLS = enabled
	}
	return nil
}

// Validate, ayarların tutarlı olup olmadığını kontrol eder
func (c Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		errs = append(errs, fmt.Errorf("unsupported db driver %q", c.DBDriver))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database url is required"))
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreSQL:
	default:
		errs = append(errs, fmt.Errorf("unknown session store %q", c.SessionStore))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("admin email and password must be set together"))
	}
	return errors.Join(errs...)
}

// Addr, http.Server için dinleme adresi
func (c Config) Addr() string {
	return ":" + c.Port
}
