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
)

const (
	DefaultSessionSecret = "dev_secret_change_me"
	configPathEnv        = "CONFIG_PATH"
)

type Config struct {
	AppEnv        string        `koanf:"app_env"`
	Port          int           `koanf:"port"`
	MetricsAddr   string        `koanf:"metrics_addr"`
	MongoURI      string        `koanf:"mongo_uri"`
	DBName        string        `koanf:"db_name"`
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	AdminUsername string        `koanf:"admin_username"`
	AdminPassword string        `koanf:"admin_password"`
	AuthEnabled   bool          `koanf:"auth_enabled"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPass     string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	CacheTTLSec   int           `koanf:"cache_ttl_seconds"`
	ViewsDir      string        `koanf:"views_dir"`
	PublicDir     string        `koanf:"public_dir"`
	CORSOrigins   []string      `koanf:"cors_origins"`
	LoginRate     float64       `koanf:"login_rate_per_sec"`
	LogLevel      string        `koanf:"log_level"`
}

func defaults() Config {
	return Config{
		AppEnv:        "development",
		Port:          3000,
		MongoURI:      "mongodb://localhost:27017",
		DBName:        "easybooking",
		SessionSecret: DefaultSessionSecret,
		SessionTTL:    6 * time.Hour,
		AdminUsername: "admin",
		AdminPassword: "admin12345",
		AuthEnabled:   true,
		CacheTTLSec:   900,
		ViewsDir:      "views",
		PublicDir:     "public",
		CORSOrigins:   []string{},
		LoginRate:     5,
		LogLevel:      "info",
	}
}

// Load layers defaults, an optional YAML file (CONFIG_PATH or ./config.yaml)
// and the environment, in that order.
func Load() (Config, error) {
	k := koanf.New(".")

	d := defaults()
	if err := k.Load(structs.Provider(&d, "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if path := configFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}
	if err := splitList(k, "cors_origins"); err != nil {
		return Config{}, err
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if c.Production() && c.SessionSecret == DefaultSessionSecret {
		log.Warn().Msg("SESSION_SECRET is the development default")
	}
	return c, nil
}

// Production reports whether APP_ENV selects production mode.
func (c Config) Production() bool {
	return c.AppEnv == "production" || c.AppEnv == "prod"
}

func (c Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSec) * time.Second }

func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is empty"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is empty"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive: %s", c.SessionTTL))
	}
	if c.LoginRate <= 0 {
		errs = append(errs, fmt.Errorf("LOGIN_RATE_PER_SEC must be positive: %v", c.LoginRate))
	}
	return errors.Join(errs...)
}

func configFile() string {
	if p := os.Getenv(configPathEnv); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

var envKeys = map[string]struct{}{
	"app_env": {}, "port": {}, "metrics_addr": {}, "mongo_uri": {}, "db_name": {},
	"session_secret": {}, "session_ttl": {}, "admin_username": {}, "admin_password": {},
	"auth_enabled": {}, "redis_addr": {}, "redis_password": {}, "redis_db": {},
	"cache_ttl_seconds": {}, "views_dir": {}, "public_dir": {}, "cors_origins": {},
	"login_rate_per_sec": {}, "log_level": {},
}

// envKey maps PORT to port and drops variables the config does not know.
func envKey(key string) string {
	key = strings.ToLower(key)
	if _, ok := envKeys[key]; ok {
		return key
	}
	return ""
}

// splitList turns a comma-separated string value into a trimmed list.
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}
