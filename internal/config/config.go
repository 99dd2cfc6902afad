// Package config assembles playarcade's settings. Values are layered:
// built-in defaults, then an optional YAML file, then a .env file, then
// PLAYARCADE_* environment variables. Command-line flags are applied last by
// the cmd package, which re-validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/playarcade/internal/llm"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the full set of settings.
type Config struct {
	// DBPath is the SQLite file. Empty resolves to the XDG data dir.
	DBPath string      `yaml:"db"`
	Store  StoreConfig `yaml:"store"`

	// ContentDir holds <grade>/<subject>.json level files. Empty uses the
	// built-in sample pack.
	ContentDir string `yaml:"content_dir"`

	Student     string        `yaml:"student"`
	Log         LogConfig     `yaml:"log"`
	Scoring     ScoringConfig `yaml:"scoring"`
	MetricsAddr string        `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	LLM         llm.Config    `yaml:"llm"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend" validate:"oneof=sqlite redis memory"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0,lte=15"`
	Prefix   string `yaml:"prefix"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
	File   string `yaml:"file"`
}

// ScoringConfig holds the per-answer weights and the auto-advance delay.
type ScoringConfig struct {
	BattleWeight int           `yaml:"battle_weight" validate:"gte=1,lte=100"`
	QuizWeight   int           `yaml:"quiz_weight" validate:"gte=1,lte=100"`
	AdvanceDelay time.Duration `yaml:"advance_delay" validate:"gte=0"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendSQLite,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "playarcade:"},
		},
		Student: "Student",
		Log:     LogConfig{Level: "info", Format: "console"},
		Scoring: ScoringConfig{
			BattleWeight: 10,
			QuizWeight:   5,
			AdvanceDelay: 900 * time.Millisecond,
		},
		LLM: llm.DefaultConfig(),
	}
}

// Options control where Load looks.
type Options struct {
	// File is a YAML config file. A missing file is an error only when
	// Required is set.
	File     string
	Required bool

	// DotEnv is a .env file read behind the real environment. Missing is
	// fine.
	DotEnv string

	// Lookup reads the environment; nil means os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load layers the sources in opts over Default and validates the result.
func Load(opts Options) (Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.readFile(opts.File); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || opts.Required {
				return Config{}, err
			}
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if opts.DotEnv != "" {
		dot, err := godotenv.Read(opts.DotEnv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", opts.DotEnv, err)
		}
		lookup = behind(lookup, dot)
	}
	cfg.ApplyEnv(lookup)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// behind returns a lookup that prefers primary and falls back to vars.
func behind(primary func(string) (string, bool), vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		if v, ok := primary(k); ok {
			return v, true
		}
		v, ok := vars[k]
		return v, ok
	}
}

// ApplyEnv overrides fields from PLAYARCADE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("PLAYARCADE_DB", &c.DBPath)
	str("PLAYARCADE_STORE", &c.Store.Backend)
	str("PLAYARCADE_REDIS_ADDR", &c.Store.Redis.Addr)
	str("PLAYARCADE_REDIS_PASSWORD", &c.Store.Redis.Password)
	num("PLAYARCADE_REDIS_DB", &c.Store.Redis.DB)
	str("PLAYARCADE_CONTENT_DIR", &c.ContentDir)
	str("PLAYARCADE_STUDENT", &c.Student)
	str("PLAYARCADE_LOG_LEVEL", &c.Log.Level)
	str("PLAYARCADE_LOG_FORMAT", &c.Log.Format)
	str("PLAYARCADE_LOG_FILE", &c.Log.File)
	str("PLAYARCADE_METRICS_ADDR", &c.MetricsAddr)
	num("PLAYARCADE_BATTLE_WEIGHT", &c.Scoring.BattleWeight)
	num("PLAYARCADE_QUIZ_WEIGHT", &c.Scoring.QuizWeight)
	if v, ok := lookup("PLAYARCADE_ADVANCE_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.Scoring.AdvanceDelay = d
		}
	}

	c.LLM.ApplyEnv(lookup)
	c.LLM.Discover(lookup)
}

var validate = validator.New()

// Validate checks field ranges and the selected LLM provider.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Store.Backend == BackendRedis && c.Store.Redis.Addr == "" {
		return errors.New("invalid config: the redis backend needs store.redis.addr")
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
