package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode          string        `mapstructure:"mode"`
	Port          int           `mapstructure:"port"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
	Debug         bool          `mapstructure:"debug"`
	LogLevel      string        `mapstructure:"log_level"`
	StaticPath    string        `mapstructure:"static_path"`
	BoardsPath    string        `mapstructure:"boards_path"`
	WordsFile     string        `mapstructure:"words_file"`
	ReadLimit     int64         `mapstructure:"read_limit"`
	PingPeriod    time.Duration `mapstructure:"ping_period"`
	SendBuffer    int           `mapstructure:"send_buffer"`
	RateLimit     float64       `mapstructure:"rate_limit"`
	RateBurst     int           `mapstructure:"rate_burst"`
	Secret        string        `mapstructure:"secret"`
}

// Load reads config/config.<CONFIG_ENV>.yaml (dev by default). Every key can be
// overridden by a DOODLE_ prefixed environment variable, e.g. DOODLE_PORT.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("DOODLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("allowed_origin", "*")
	v.SetDefault("debug", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("static_path", "./web")
	v.SetDefault("boards_path", "./web/boards")
	v.SetDefault("words_file", "")
	v.SetDefault("read_limit", 4<<20)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("rate_limit", 20)
	v.SetDefault("rate_burst", 40)
	v.SetDefault("secret", "doodle-dev-secret")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Bool("debug", cfg.Debug).Msg("config ready")
	return &cfg, nil
}
