package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel       string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	RulesCacheSize int    `yaml:"rules-cache-size" env:"RULES_CACHE_SIZE" env-default:"16"`
	Redis          Redis  `yaml:"redis"`
	Game           Game   `yaml:"game"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
	// LockTTL bounds how long a crashed driver can keep a game locked.
	LockTTL time.Duration `yaml:"lock-ttl" env:"REDIS_LOCK_TTL" env-default:"30s"`
}

// Game holds the defaults for new games and the limits that guard the server.
type Game struct {
	Size       int `yaml:"size" env:"GAME_SIZE" env-default:"4"`
	Dimensions int `yaml:"dimensions" env:"GAME_DIMENSIONS" env-default:"3"`
	Players    int `yaml:"players" env:"GAME_PLAYERS" env-default:"3"`
	MaxPlayers int `yaml:"max-players" env:"GAME_MAX_PLAYERS" env-default:"26"`
	// MaxSlots caps the cell count of a requested board.
	MaxSlots int `yaml:"max-slots" env:"GAME_MAX_SLOTS" env-default:"100000"`
	// MaxLines caps the winning line count of a requested board.
	MaxLines int `yaml:"max-lines" env:"GAME_MAX_LINES" env-default:"100000"`
	// MaxPlies stops a run after that many plies; 0 disables the cap.
	MaxPlies int `yaml:"max-plies" env:"GAME_MAX_PLIES" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file, after .env if present.
func MustLoad(path string) *Config {
	_ = godotenv.Load()

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
