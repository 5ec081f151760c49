package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret     string
	JWTExpiration time.Duration

	LogLevel  string
	LogFormat string

	// TransitionPolicy selects how strict the bed status lifecycle is
	// ("permissive" or "strict").
	TransitionPolicy string
	// WriteTimeout bounds registry write operations so a contended bed row
	// fails fast instead of hanging.
	WriteTimeout time.Duration

	AWSRegion string
	// CleaningQueueURL enables SQS dispatch of cleaning jobs when non-empty.
	CleaningQueueURL string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	jwtExpHours, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	writeTimeoutSecs, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SECONDS", "5"))

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "beds"),
		DBPassword: getEnv("DB_PASSWORD", "beds"),
		DBName:     getEnv("DB_NAME", "bed_management"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		JWTExpiration: time.Duration(jwtExpHours) * time.Hour,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		TransitionPolicy: getEnv("BED_TRANSITION_POLICY", "permissive"),
		WriteTimeout:     time.Duration(writeTimeoutSecs) * time.Second,

		AWSRegion:        getEnv("AWS_REGION", "ap-southeast-1"),
		CleaningQueueURL: getEnv("CLEANING_SQS_QUEUE_URL", ""),
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
