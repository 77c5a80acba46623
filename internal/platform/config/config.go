package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LeetCodeAPIURL string

	// TrackTimezone labels the calendar day a summary is stored under.
	// The counting window itself is a rolling 24h lookback and does not
	// depend on this.
	TrackTimezoneName string
	TrackTimezone     *time.Location

	TrackFanout          int
	TrackQueueName       string
	TrackLockKey         string
	TrackLockTTLSeconds  int
	SchedulerEnabled     bool
	TrackIntervalMinutes int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:              getEnv("API_PORT", "8080"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "user"),
		DBPassword:           getEnv("DB_PASSWORD", "password"),
		DBName:               getEnv("DB_NAME", "leettrack_db"),
		DBSslMode:            getEnv("DB_SSLMODE", "disable"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		LeetCodeAPIURL:       getEnv("LEETCODE_API_URL", "https://leetcode.com/graphql"),
		TrackTimezoneName:    getEnv("TRACK_TIMEZONE", "Asia/Kolkata"),
		TrackFanout:          getEnvAsInt("TRACK_FANOUT", 1),
		TrackQueueName:       getEnv("TRACK_QUEUE_NAME", "track_runs_queue"),
		TrackLockKey:         getEnv("TRACK_LOCK_KEY", "track_run_lock"),
		TrackLockTTLSeconds:  getEnvAsInt("TRACK_LOCK_TTL_SECONDS", 600),
		SchedulerEnabled:     getEnvAsBool("SCHEDULER_ENABLED", false),
		TrackIntervalMinutes: getEnvAsInt("TRACK_INTERVAL_MINUTES", 60),
	}

	loc, err := time.LoadLocation(AppConfig.TrackTimezoneName)
	if err != nil {
		log.Fatalf("Invalid TRACK_TIMEZONE %q: %v", AppConfig.TrackTimezoneName, err)
	}
	AppConfig.TrackTimezone = loc

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
