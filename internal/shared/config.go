package shared

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"

	httpserver "hotel_content/internal/adapters/http_server"
	"hotel_content/internal/adapters/suppliers"
	"hotel_content/internal/reference"
)

const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// SupplierConfig is the per-supplier credential block.
type SupplierConfig struct {
	BaseURL      string        `koanf:"base_url"`
	APIKey       string        `koanf:"api_key"`
	Secret       string        `koanf:"secret"`
	Username     string        `koanf:"username"`
	Password     string        `koanf:"password"`
	Agency       string        `koanf:"agency"`
	Organisation string        `koanf:"organisation"`
	RPS          int           `koanf:"rps"`
	Timeout      time.Duration `koanf:"timeout"`
}

type ReferenceConfig struct {
	DOTWCSV     string `koanf:"dotw_csv"`
	InnstantCSV string `koanf:"innstant_csv"`
	IRIXXML     string `koanf:"irix_xml"`
}

type Config struct {
	AppEnv      string        `koanf:"app_env"`
	LogLevel    string        `koanf:"log_level"`
	HTTPAddr    string        `koanf:"http_addr"`
	MetricsAddr string        `koanf:"metrics_addr"`
	MySQLDSN    string        `koanf:"mysql_dsn"`
	RedisAddr   string        `koanf:"redis_addr"`
	RedisDB     int           `koanf:"redis_db"`
	RedisPass   string        `koanf:"redis_password"`
	RawBaseDir  string        `koanf:"raw_base_dir"`
	JWTSecret   string        `koanf:"jwt_secret"`
	Workers     int           `koanf:"ingest_workers"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
	RateLimit   int           `koanf:"rate_limit"`
	AuditBuffer int           `koanf:"audit_buffer"`
	// TrustedProxies may be a YAML list or a comma-separated env value.
	TrustedProxies []string `koanf:"trusted_proxies"`

	Reference ReferenceConfig           `koanf:"reference"`
	Suppliers map[string]SupplierConfig `koanf:"suppliers"`
}

func defaultConfig() Config {
	return Config{
		AppEnv:      "prod",
		LogLevel:    "info",
		HTTPAddr:    ":8080",
		MetricsAddr: ":9100",
		MySQLDSN:    "root:root@tcp(localhost:3306)/hotel_content?parseTime=true&charset=utf8mb4&loc=UTC",
		RedisAddr:   "localhost:6379",
		RawBaseDir:  "raw_data",
		Workers:     8,
		CacheTTL:    15 * time.Minute,
		RateLimit:   120,
		AuditBuffer: 1024,
		Reference: ReferenceConfig{
			DOTWCSV:     "static/dotw/hotels.csv",
			InnstantCSV: "static/innstant/hotels.csv",
			IRIXXML:     "static/irix/destinations.xml",
		},
	}
}

// legacyEnv maps the flat variable names onto nested keys.
var legacyEnv = map[string]string{
	"dotw_reference_csv":     "reference.dotw_csv",
	"innstant_reference_csv": "reference.innstant_csv",
	"irix_reference_xml":     "reference.irix_xml",
}

// envKey lowercases a variable name and turns "__" into a nesting level, so
// SUPPLIERS__HOTELBEDS__API_KEY becomes suppliers.hotelbeds.api_key.
func envKey(key string) string {
	k := strings.ToLower(key)
	if mapped, ok := legacyEnv[k]; ok {
		return mapped
	}
	return strings.ReplaceAll(k, "__", ".")
}

// Load layers defaults, an optional YAML file, then the environment.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	if err := splitLists(k); err != nil {
		return Config{}, err
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c, nil
}

// listKeys hold string lists; the environment supplies them comma-separated.
var listKeys = []string{"trusted_proxies"}

func splitLists(k *koanf.Koanf) error {
	for _, key := range listKeys {
		v, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		var out []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(key, out); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("ingest_workers must be positive, got %d", c.Workers))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must not be negative"))
	}
	if strings.TrimSpace(c.RawBaseDir) == "" {
		errs = append(errs, errors.New("raw_base_dir is required"))
	}
	if _, err := httpserver.ParseTrustedProxies(c.TrustedProxies); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SupplierCredentials converts the supplier blocks into transport credentials.
func (c Config) SupplierCredentials() map[string]suppliers.Credentials {
	out := make(map[string]suppliers.Credentials, len(c.Suppliers))
	for code, s := range c.Suppliers {
		out[strings.ToLower(code)] = suppliers.Credentials{
			BaseURL:      s.BaseURL,
			APIKey:       s.APIKey,
			Secret:       s.Secret,
			Username:     s.Username,
			Password:     s.Password,
			Agency:       s.Agency,
			Organisation: s.Organisation,
			RPS:          s.RPS,
			Timeout:      s.Timeout,
		}
	}
	return out
}

func (c Config) ReferencePaths() reference.Paths {
	return reference.Paths{
		DOTW:     c.Reference.DOTWCSV,
		Innstant: c.Reference.InnstantCSV,
		IRIX:     c.Reference.IRIXXML,
	}
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
