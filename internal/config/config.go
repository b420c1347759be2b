package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// AppDirName — каталог приложения внутри пользовательского конфиг-каталога.
const AppDirName = "PrizeKeeper"

type Config struct {
	DBPath            string `env:"PRIZE_DB_PATH"`
	PrefsDir          string `env:"PRIZE_PREFS_DIR"`
	LogLevel          string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFile           string `env:"LOG_FILE"`
	ImageMaxDimension int    `env:"IMAGE_MAX_DIMENSION" validate:"gte=0"`
	Version           bool   `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// значения из env становятся дефолтами флагов
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the prize SQLite database")
	flag.StringVar(&cfg.PrefsDir, "prefs-dir", cfg.PrefsDir, "directory for CLI preferences")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "optional rotated JSON log file")
	flag.IntVar(&cfg.ImageMaxDimension, "image-max-dim", cfg.ImageMaxDimension, "downscale attached images to this many pixels per side (0 keeps originals)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	// Defaults
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	base := defaultBaseDir()
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(base, "prizes.sqlite")
	}
	if cfg.PrefsDir == "" {
		cfg.PrefsDir = base
	}

	return cfg
}

// Validate проверяет значения после слияния env и флагов.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Newf("invalid config: %s=%v (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
		}
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("db=%s prefs=%s log=%s image-max-dim=%d", c.DBPath, c.PrefsDir, c.LogLevel, c.ImageMaxDimension)
}

func defaultBaseDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+strings.ToLower(AppDirName))
}
