package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Storage   string // postgres|memory
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret string
	TokenTTL  string

	Log      string
	LogLevel string
	Env      string // dev|prod

	MailProvider string // smtp|mailgun|log
	MailFromName string
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	MailgunDomain string
	MailgunAPIKey string

	AdminEmail          string
	FrontendURL         string
	CORSOrigins         string
	PasswordResetTTLMin string
}

// LoadConfig loads .env, reads the environment and applies defaults.
// It does not log anything so the logger can depend on it.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		Storage:   strings.ToLower(def(os.Getenv("STORAGE"), "postgres")),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  def(os.Getenv("TOKEN_TTL"), "24h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		MailProvider: strings.ToLower(def(os.Getenv("MAIL_PROVIDER"), "smtp")),
		MailFromName: def(os.Getenv("MAIL_FROM_NAME"), "DigiRoots"),
		SMTPHost:     def(os.Getenv("SMTP_HOST"), "smtp.gmail.com"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),

		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		FrontendURL:         strings.TrimRight(def(os.Getenv("FRONTEND_URL"), "http://localhost:5173"), "/"),
		CORSOrigins:         def(os.Getenv("CORS_ORIGINS"), "http://localhost:5173"),
		PasswordResetTTLMin: def(os.Getenv("PASSWORD_RESET_TTL_MIN"), "15"),
	}

	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.SMTPUser
	}

	return cfg, nil
}

// Validate returns warnings and a fatal error when the config is unusable.
func (c *Config) Validate() (warnings []string, err error) {
	switch c.Storage {
	case "postgres":
		if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
			return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
		}
	case "memory":
		warnings = append(warnings, "STORAGE=memory: accounts and leads are lost on restart")
	default:
		return nil, fmt.Errorf("unknown STORAGE %q", c.Storage)
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET is empty")
		}
		// tokens signed with it stop verifying after a restart
		c.JWTSecret = uuid.NewString()
		warnings = append(warnings, "JWT_SECRET is empty, using a random per-process secret")
	}

	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", c.TokenTTL, err)
	}

	switch c.MailProvider {
	case "smtp":
		if c.SMTPHost == "" || c.SMTPUser == "" {
			warnings = append(warnings, "SMTP is not fully configured")
		}
	case "mailgun":
		if c.MailgunDomain == "" || c.MailgunAPIKey == "" {
			return nil, fmt.Errorf("incomplete Mailgun config (MAILGUN_DOMAIN/MAILGUN_API_KEY)")
		}
	case "log":
		warnings = append(warnings, "MAIL_PROVIDER=log: emails are written to the log only")
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", c.MailProvider)
	}

	if c.AdminEmail == "" {
		warnings = append(warnings, "ADMIN_EMAIL is empty, lead notifications will fail")
	}

	return warnings, nil
}

// GetDSN returns the full DSN (with password).
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe returns the DSN without the password, for logs.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func (c *Config) TokenDuration() time.Duration {
	d, err := time.ParseDuration(c.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (c *Config) PasswordResetTTL() time.Duration {
	n, err := strconv.Atoi(c.PasswordResetTTLMin)
	if err != nil || n <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(n) * time.Minute
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) ResetLinkBase() string {
	return c.FrontendURL + "/reset-password/"
}
