package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeServer  = "server"
	ModeConsole = "console"
)

type Config struct {
	LogLevel          string  `yaml:"log-level" env-default:"info"`
	Mode              string  `yaml:"mode" env-default:"server"`
	HTTPPort          string  `yaml:"http-port" env-default:"9090"`
	SocketPort        string  `yaml:"socket-port" env-default:"8080"`
	BoardSize         int     `yaml:"board-size" env-default:"8"`
	Redis             Redis   `yaml:"redis"`
	Console           Console `yaml:"console"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Console struct {
	Player1Name string `yaml:"player1-name" env-default:"Player 1"`
	Player2Name string `yaml:"player2-name" env-default:"Player 2"`
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
