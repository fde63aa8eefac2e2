package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	dirName        = ".holoalarm"
	configFileName = "config.yml"

	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type (
	Config struct {
		HomePath string `yaml:"-"`
		DataDir  string `yaml:"data_dir" env:"HOLOALARM_DATA_DIR"`
		Store    Store  `yaml:"store"`
		Log      Log    `yaml:"log"`
		Gemini   Gemini `yaml:"gemini"`
		Audio    Audio  `yaml:"audio"`
		Clock    Clock  `yaml:"clock"`
	}

	Store struct {
		Backend    string `yaml:"backend"     env:"HOLOALARM_STORE"       env-default:"file"`
		SQLitePath string `yaml:"sqlite_path" env:"HOLOALARM_SQLITE_PATH"`
		Redis      Redis  `yaml:"redis"`
	}

	Redis struct {
		Addr     string `yaml:"addr"     env:"HOLOALARM_REDIS_ADDR"     env-default:"localhost:6379"`
		Password string `yaml:"password" env:"HOLOALARM_REDIS_PASSWORD"`
		DB       int    `yaml:"db"       env:"HOLOALARM_REDIS_DB"       env-default:"0"`
		Prefix   string `yaml:"prefix"   env:"HOLOALARM_REDIS_PREFIX"   env-default:"holoalarm:"`
	}

	Log struct {
		Level  string `yaml:"level"  env:"HOLOALARM_LOG_LEVEL"  env-default:"info"`
		Format string `yaml:"format" env:"HOLOALARM_LOG_FORMAT" env-default:"console"`
		File   string `yaml:"file"   env:"HOLOALARM_LOG_FILE"`
	}

	Gemini struct {
		APIKey      string        `yaml:"api_key"      env:"GEMINI_API_KEY"`
		SpeechModel string        `yaml:"speech_model" env:"HOLOALARM_SPEECH_MODEL" env-default:"gemini-2.5-flash-preview-tts"`
		ImageModel  string        `yaml:"image_model"  env:"HOLOALARM_IMAGE_MODEL"  env-default:"gemini-2.5-flash-image"`
		Timeout     time.Duration `yaml:"timeout"      env:"HOLOALARM_AI_TIMEOUT"   env-default:"90s"`
	}

	Audio struct {
		Dir    string `yaml:"dir"    env:"HOLOALARM_AUDIO_DIR"`
		Player string `yaml:"player" env:"HOLOALARM_PLAYER"`
	}

	Clock struct {
		Tick time.Duration `yaml:"tick" env:"HOLOALARM_TICK" env-default:"1s"`
	}
)

// New loads configuration for the given home directory. configPath may be
// empty, in which case <home>/.holoalarm/config.yml is read when present and
// the environment alone is used otherwise.
func New(homePath, configPath string) (Config, error) {
	if homePath == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	defaultDir := filepath.Join(homePath, dirName)
	_ = godotenv.Load(filepath.Join(homePath, ".env"))

	cfg := Config{}
	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(defaultDir, configFileName)
	}
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config env: %w", err)
	}

	cfg.HomePath = homePath
	cfg.applyDefaults(defaultDir)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults(defaultDir string) {
	if c.DataDir == "" {
		c.DataDir = defaultDir
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = filepath.Join(c.DataDir, "holoalarm.db")
	}
	if c.Audio.Dir == "" {
		c.Audio.Dir = filepath.Join(c.DataDir, "audio")
	}
	if c.Audio.Player == "" {
		c.Audio.Player = defaultPlayer(runtime.GOOS)
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "holoalarm.log")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = firstEnv("API_KEY", "GOOGLE_API_KEY")
	}
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q (want file|sqlite|redis)", c.Store.Backend)
	}
	if c.Clock.Tick <= 0 {
		return fmt.Errorf("clock tick must be positive, got %s", c.Clock.Tick)
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("gemini timeout must not be negative")
	}
	return nil
}

// YAML renders the effective configuration with secrets masked.
func (c Config) YAML() (string, error) {
	masked := c
	masked.Gemini.APIKey = mask(c.Gemini.APIKey)
	masked.Store.Redis.Password = mask(c.Store.Redis.Password)
	raw, err := yaml.Marshal(masked)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(raw), nil
}

func defaultPlayer(goos string) string {
	switch goos {
	case "darwin":
		return "afplay"
	case "linux":
		return "aplay"
	default:
		return ""
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
