package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the API server. Each field maps
// to one environment variable; optional values fall back to the defaults
// applied in Load.
type Config struct {
	Env            string        // application environment (dev, test, prod)
	Port           string        // HTTP port to listen on
	DBDriver       string        // "mysql" or "memory"
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign JWTs
	JWTIssuer      string        // iss claim written and enforced on access tokens
	JWTAudience    string        // aud claim written and enforced on access tokens
	JWTTTL         time.Duration // access token lifetime
	RefreshTTLDays int           // refresh token lifetime in days
	BcryptCost     int           // bcrypt cost for password hashing
	LogLevel       string
	LogFormat      string
	SeedOnStart    bool
	CORSOrigins    []string
	SeatLinkBase   string        // base URL encoded into seat QR labels
	RequestTimeout time.Duration // per-request deadline applied by handlers
}

// Load reads .env (when present) and the process environment. Missing
// required variables are reported together in the returned error.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env file is not an error

	env := envStr("APP_ENV", "dev")
	cfg := Config{
		Env:            env,
		Port:           firstNonEmpty(os.Getenv("PORT"), os.Getenv("APP_PORT"), "8080"),
		DBDriver:       strings.ToLower(envStr("DB_DRIVER", "mysql")),
		DBUser:         os.Getenv("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envStr("DB_PORT", "3306"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTIssuer:      envStr("JWT_ISSUER", "office-seating"),
		JWTAudience:    envStr("JWT_AUDIENCE", "office-seating-clients"),
		JWTTTL:         envDur("JWT_TTL", 24*time.Hour),
		RefreshTTLDays: envInt("REFRESH_TTL_DAYS", 7),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		LogFormat:      envStr("LOG_FORMAT", "json"),
		SeedOnStart:    envBool("SEED_ON_START", env == "dev"),
		CORSOrigins:    splitList(envStr("CORS_ORIGINS", "http://localhost:3000")),
		SeatLinkBase:   strings.TrimRight(envStr("SEAT_LINK_BASE_URL", "http://localhost:3000"), "/"),
		RequestTimeout: envDur("REQUEST_TIMEOUT", 5*time.Second),
	}

	var errs []error
	if cfg.JWTSecret == "" {
		errs = append(errs, missing("JWT_SECRET"))
	}
	switch cfg.DBDriver {
	case "mysql":
		for key, v := range map[string]string{"DB_USER": cfg.DBUser, "DB_HOST": cfg.DBHost, "DB_NAME": cfg.DBName} {
			if v == "" {
				errs = append(errs, missing(key))
			}
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("invalid BCRYPT_COST %d", cfg.BcryptCost))
	}
	return cfg, errors.Join(errs...)
}

func missing(key string) error { return fmt.Errorf("missing required env var: %s", key) }

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
