package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"worktrack/internal/core/scoring"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort        string
	DbDriver       string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	SqlitePath     string
	JwtSecret      string
	TrustedProxies []string

	Scoring                 scoring.Rules
	ReviewRetryAttempts     int
	EscalationSweepSchedule string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	defaults := scoring.DefaultRules()

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbDriver:       parseDriver(os.Getenv("DB_DRIVER")),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "worktrack"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "worktrack"),
		DbName:         getEnv("MYSQL_DATABASE", "worktrack"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true&loc=UTC"),
		SqlitePath:     getEnv("SQLITE_PATH", "worktrack.db"),
		JwtSecret:      getEnv("JWT_SECRET", ""),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		Scoring: scoring.Rules{
			OnTimeBasePoints:         getEnvInt("ONTIME_BASE_POINTS", defaults.OnTimeBasePoints),
			QualityPointsMax:         getEnvInt("QUALITY_POINTS_MAX", defaults.QualityPointsMax),
			BonusPointsMax:           getEnvInt("BONUS_POINTS_MAX", defaults.BonusPointsMax),
			EscalationThresholdHours: getEnvInt("ESCALATION_THRESHOLD_HOURS", defaults.EscalationThresholdHours),
		},
		ReviewRetryAttempts:     getEnvInt("REVIEW_RETRY_ATTEMPTS", 3),
		EscalationSweepSchedule: getEnv("ESCALATION_SWEEP_SCHEDULE", ""),
	}
}

// parseDriver treats a blank DB_DRIVER as unset.
func parseDriver(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return DriverMySQL
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt keeps the fallback for missing, malformed or negative values.
func getEnvInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return fallback
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		zap.L().Warn("invalid integer in environment, using default",
			zap.String("key", key),
			zap.String("value", raw),
			zap.Int("default", fallback),
		)
		return fallback
	}
	return value
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
