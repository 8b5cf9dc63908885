package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"log"
	"os"
	"time"
)

const defaultConfigPath = "config.yaml"

type HTTP struct {
	Host          string `yaml:"host" env:"HTTP_HOST"`
	Port          string `yaml:"port" env:"HTTP_PORT" env-default:"3001"`
	AllowedOrigin string `yaml:"allowed_origin" env:"HTTP_ALLOWED_ORIGIN" env-default:"http://localhost:3001"`
	// MaxBodyBytes caps request bodies; 0 turns the limit off.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"102400"`
}

// DB describes the player store. DSN wins over the discrete fields when set.
type DB struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	DSN    string `yaml:"dsn" env:"DB_DSN"`
	User   string `yaml:"user" env:"DB_USER"`
	Pass   string `yaml:"password" env:"DB_PASSWORD"`
	Host   string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port   string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name   string `yaml:"name" env:"DB_NAME" env-default:"players"`
	Ssl    string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"10h"`
}

// Redis is optional, the handle cache stays off while Addr is empty.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

type Log struct {
	FilePath string `yaml:"logger_file_path" env:"LOG_FILE_PATH"`
}

type Config struct {
	Env   string `yaml:"env" env:"ENV" env-default:"local"`
	HTTP  HTTP   `yaml:"http"`
	DB    DB     `yaml:"db"`
	JWT   JWT    `yaml:"jwt"`
	Redis Redis  `yaml:"redis"`
	Log   Log    `yaml:"logger"`
}

var ErrNoSecret = errors.New("jwt secret is not configured")

// Validate checks what every command needs. Token settings are checked
// separately by ValidateJWT since only the server signs anything.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	return nil
}

func (c *Config) ValidateJWT() error {
	if c.JWT.Secret == "" {
		return ErrNoSecret
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %v", c.JWT.TTL)
	}
	return nil
}

// Addr is the listen address of the REST server.
func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// Load reads the YAML file at path and applies env overrides on top of it.
// An empty path falls back to CONFIG_PATH and then to config.yaml; when the
// default file is absent only the environment is read.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigPath
	}

	var cfg Config
	if _, err := os.Stat(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad(path string) *Config {
	// .env is a convenience for local runs, a missing file is fine
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
