package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // optional .env file loading for local development
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	SessionTTLDays int    // session token time-to-live in days
	ResetTTLMin    int    // password-reset token time-to-live in minutes
	BcryptCost     int    // bcrypt cost for password hashing
	AdminEmail     string // bootstrap administrator email
	AdminPassword  string // bootstrap administrator password
	SMTPHost       string // SMTP relay host for reset mails (optional)
	SMTPPort       string // SMTP relay port (optional)
	SMTPUser       string // SMTP username (optional)
	SMTPPass       string // SMTP password (optional)
	SMTPFrom       string // From address on outgoing mail (optional)
	AuthRateLimit  int    // max auth requests per client per window (0 disables)
	AuthRateWinSec int    // auth rate-limit window length in seconds
	RankingTTLSec  int    // ranking response cache lifetime in seconds (0 disables)
}

// Load reads configuration values from environment variables and returns a
// Config. A .env file in the working directory is merged in first when
// present. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine; real env always wins

	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		SessionTTLDays: intDefault("SESSION_TOKEN_TTL_DAYS", 7),
		ResetTTLMin:    intDefault("RESET_TOKEN_TTL_MIN", 60),
		BcryptCost:     mustInt("BCRYPT_COST"),
		AdminEmail:     must("ADMIN_EMAIL"),
		AdminPassword:  must("ADMIN_PASSWORD"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getenv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
		AuthRateLimit:  intDefault("AUTH_RATE_LIMIT", 30),
		AuthRateWinSec: intDefault("AUTH_RATE_WINDOW_SEC", 60),
		RankingTTLSec:  intDefault("RANKING_CACHE_TTL_SEC", 30),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the variable's value or the given default when unset.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intDefault reads an optional integer variable, falling back to def when
// the variable is unset. A set-but-unparsable value is still fatal so a
// typo does not silently change token lifetimes.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
