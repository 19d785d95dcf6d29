package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// JWTExpireHours is the token lifetime in hours (default 24). Set via JWT_EXPIRE_HOURS.
	JWTExpireHours int

	// SMTPAddr is the mail relay in host:port form. SMTPFrom is the sender address.
	SMTPAddr string
	SMTPFrom string

	// AdminEmail receives escalations and delivery-failure fallbacks. When
	// empty, those notifications are skipped.
	AdminEmail string

	// EscalationDays is how many days an event may stay overdue before it is
	// escalated to the administrator (default 3).
	EscalationDays int

	// SweepCronEnabled runs the daily overdue sweep inside the API process.
	// Leave false when an external scheduler triggers `jobs sweep` instead.
	SweepCronEnabled bool

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated).
	// When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "guarddb"),
		DBUser: getEnv("DB_USER", "guarduser"),
		DBPass: getEnv("DB_PASS", "guardpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		Env:            getEnv("ENV", "dev"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		SMTPAddr:   getEnv("SMTP_ADDR", "localhost:25"),
		SMTPFrom:   getEnv("SMTP_FROM", "guardsys@localhost"),
		AdminEmail: getEnv("ADMIN_EMAIL", ""),

		EscalationDays:   getEnvInt("ESCALATION_DAYS", 3),
		SweepCronEnabled: getEnv("SWEEP_CRON_ENABLED", "") == "true",

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
