package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/utils"
)

// Config is the full runtime configuration. Values come from an optional
// YAML file (CONFIG_FILE, default config.yaml) with environment variables
// taking precedence over anything the file sets.
type Config struct {
	Port         string   `yaml:"port"`
	DBHost       string   `yaml:"db_host"`
	DBPort       string   `yaml:"db_port"`
	DBUser       string   `yaml:"db_user"`
	DBPassword   string   `yaml:"db_password"`
	DBName       string   `yaml:"db_name"`
	DBMaxOpen    int      `yaml:"db_max_open_conns"`
	DBMaxIdle    int      `yaml:"db_max_idle_conns"`
	RedisAddr    string   `yaml:"redis_addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

func Load(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:      "8080",
		DBHost:    "localhost",
		DBPort:    "3306",
		DBUser:    "root",
		DBName:    "printing",
		DBMaxOpen: 25,
		DBMaxIdle: 5,
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
	}

	path := utils.GetEnv("CONFIG_FILE", "config.yaml", log)
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	case os.IsNotExist(err):
		log.Debug("No config file, using env and defaults", "path", path)
	default:
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.DBHost = utils.GetEnv("DB_HOST", cfg.DBHost, log)
	cfg.DBPort = utils.GetEnv("DB_PORT", cfg.DBPort, log)
	cfg.DBUser = utils.GetEnv("DB_USER", cfg.DBUser, log)
	cfg.DBPassword = utils.GetEnv("DB_PASS", cfg.DBPassword, log)
	cfg.DBName = utils.GetEnv("DB_NAME", cfg.DBName, log)
	cfg.DBMaxOpen = utils.GetEnvAsInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpen, log)
	cfg.DBMaxIdle = utils.GetEnvAsInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdle, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)
	if origins := utils.GetEnv("ALLOW_ORIGINS", "", log); origins != "" {
		cfg.AllowOrigins = splitAndTrim(origins)
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
