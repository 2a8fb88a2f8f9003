package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type APIServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	MinioCfg    MinioConfig
	RabbitMQCfg RabbitMQConfig
	AuthCfg     AuthConfig
}

type DashboardConfig struct {
	Port string
	// Base URL of the remote AgriScan REST API.
	APIBaseURL string
	// Path of the file holding the persisted access token.
	TokenFile string
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioUrl       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type AuthConfig struct {
	JWTSecret string
}

func NewAPIService() *APIServiceConfig {
	godotenv.Load()
	return &APIServiceConfig{
		Port: getEnv("PORT", "8080"),
		PostgresCfg: PostgresConfig{
			DBname:   os.Getenv("DB_NAME"),
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PWD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
		},
		RedisCfg: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PWD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioUrl:       os.Getenv("MINIO_URL"),
			MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinioLocation:  os.Getenv("MINIO_LOCATION"),
			MinioSecure:    os.Getenv("MINIO_SECURE"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: os.Getenv("RABBITMQ_USER"),
			Password: os.Getenv("RABBITMQ_PWD"),
			Host:     os.Getenv("RABBITMQ_HOST"),
			Port:     os.Getenv("RABBITMQ_PORT"),
		},
		AuthCfg: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
	}
}

func NewDashboard() *DashboardConfig {
	godotenv.Load()
	return &DashboardConfig{
		Port:       getEnv("DASHBOARD_PORT", "3000"),
		APIBaseURL: getEnv("API_BASE_URL", "https://api.droughtfight.app/v1"),
		TokenFile:  getEnv("TOKEN_FILE", ".agriscan_token"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
