package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "tasktracker/internal/util/env"
	"tasktracker/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	BackendRootPath string

	DatabaseDsn string            `env:"DATABASE_DSN"     required:"true"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"         required:"true"`
	JwtSecret   string            `env:"JWT_SECRET"       required:"true"`
	ClientURL   string            `env:"CLIENT_URL"       required:"true"`

	// identity provider
	GoogleClientID string `env:"GOOGLE_CLIENT_ID" required:"true"`

	// cache
	ValkeyHost     string `env:"VALKEY_HOST"      required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"      required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME"  required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"  required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"    required:"true"`

	// outbound email
	SmtpHost     string `env:"SMTP_HOST"     required:"true"`
	SmtpPort     int    `env:"SMTP_PORT"     required:"true"`
	SmtpEmail    string `env:"SMTP_EMAIL"    required:"true"`
	SmtpPassword string `env:"SMTP_PASSWORD" required:"false"`

	// object storage (S3-compatible)
	S3Endpoint  string `env:"S3_ENDPOINT"   required:"true"`
	S3AccessKey string `env:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `env:"S3_SECRET_KEY" required:"true"`
	S3Bucket    string `env:"S3_BUCKET"     required:"true"`
	S3UseSsl    bool   `env:"S3_USE_SSL"    required:"true"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Error("Error loading .env file: could not find .env in any location")
		os.Exit(1)
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.JwtSecret == "" {
		log.Error("JWT_SECRET is empty")
		os.Exit(1)
	}

	if env.ClientURL == "" {
		log.Error("CLIENT_URL is empty")
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)
}
