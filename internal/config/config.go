package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Client   ClientConfig
	Speech   SpeechConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

// ClientConfig drives the terminal chat client.
type ClientConfig struct {
	ServerURL      string
	RequestTimeout int // seconds
}

type SpeechConfig struct {
	Enabled     bool
	SpeakerCmd  string // external TTS binary, e.g. "say" or "espeak"
	ListenerCmd string // external STT binary, empty disables voice input
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", "default_secret"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Client: ClientConfig{
			ServerURL:      getEnv("ASSISTANT_SERVER_URL", "http://localhost:5000"),
			RequestTimeout: getEnvAsInt("CLIENT_REQUEST_TIMEOUT", 15),
		},
		Speech: SpeechConfig{
			Enabled:     getEnvAsBool("SPEECH_ENABLED", false),
			SpeakerCmd:  getEnv("SPEECH_SPEAKER_CMD", ""),
			ListenerCmd: getEnv("SPEECH_LISTENER_CMD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
