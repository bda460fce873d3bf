package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis             Redis         `yaml:"redis"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"tictactoe.db"`
	HistoryTTL        time.Duration `yaml:"history-ttl" env:"HISTORY_TTL" env-default:"24h"`
	StrictTurnAuth    bool          `yaml:"strict-turn-auth" env:"STRICT_TURN_AUTH" env-default:"false"`
	Reminder          Reminder      `yaml:"reminder"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Reminder struct {
	SweepInterval time.Duration `yaml:"sweep-interval" env:"REMINDER_SWEEP_INTERVAL" env-default:"5m"`
	SMTP          SMTP          `yaml:"smtp"`
}

// SMTP - reminder mail settings. With an empty host the sweep only logs.
type SMTP struct {
	Host string `yaml:"host" env:"SMTP_HOST" env-default:""`
	Port string `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	From string `yaml:"from" env:"SMTP_FROM" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *SMTP) GetSMTPAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
