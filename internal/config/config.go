package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type OwnershipRule struct {
	Method    string `yaml:"method"`
	Path      string `yaml:"path"`
	Source    string `yaml:"source"`
	ParamName string `yaml:"paramName"`
}

type AppConfig struct {
	Port      int    `yaml:"port"`
	Env       string `yaml:"env"`
	GinMode   string `yaml:"gin_mode"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	MaxAttempts  int    `yaml:"max_attempts"`
	ResendWindow string `yaml:"resend_window"`
}

type SecurityConfig struct {
	MaxLoginAttempts int     `yaml:"max_login_attempts"`
	LockoutDuration  string  `yaml:"lockout_duration"`
	MFAIssuer        string  `yaml:"mfa_issuer"`
	MFAChallengeTTL  string  `yaml:"mfa_challenge_ttl"`
	SessionRetention string  `yaml:"session_retention"`
	CleanupInterval  string  `yaml:"cleanup_interval"`
	RateLimitRPS     float64 `yaml:"rate_limit_rps"`
	RateLimitBurst   int     `yaml:"rate_limit_burst"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type OAuthProviderConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type OAuthConfig struct {
	Google          OAuthProviderConfig `yaml:"google"`
	GitHub          OAuthProviderConfig `yaml:"github"`
	SuccessRedirect string              `yaml:"success_redirect"`
	StateTTL        string              `yaml:"state_ttl"`
}

type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
	MaxImageBytes int64  `yaml:"max_image_bytes"`
}

type PaymentsConfig struct {
	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`
	Currency            string `yaml:"currency"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Security SecurityConfig `yaml:"security"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Storage  StorageConfig  `yaml:"storage"`
	Payments PaymentsConfig `yaml:"payments"`
}

type Config struct {
	Port             string
	Env              string
	GinMode          string
	LogLevel         string
	LogFormat        string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	JWTIssuer        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OTP_TTL          time.Duration
	OTP_Length       int
	OTP_MaxAttempts  int
	OTP_ResendWindow time.Duration
	MaxLoginAttempts int
	LockoutDuration  time.Duration
	MFAIssuer        string
	MFAChallengeTTL  time.Duration
	SessionRetention time.Duration
	CleanupInterval  time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	OAuth            OAuthConfig
	OAuthStateTTL    time.Duration
	Storage          StorageConfig
	Payments         PaymentsConfig
	OwnershipRules   []OwnershipRule
}

// IsProduction reports whether the service runs with production redaction.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads .env (when present), then the YAML config file and the
// optional ownership rules file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	bytes, err := os.ReadFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg, err := Parse(bytes)
	if err != nil {
		return nil, err
	}

	rules, err := loadOwnershipRules(env("OWNERSHIP_RULES_PATH", "config/ownership_rules.yml"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg.OwnershipRules = rules

	return cfg, nil
}

// Parse builds a Config from YAML, expanding ${VAR} references from the
// environment and applying defaults.
func Parse(data []byte) (*Config, error) {
	var file ConfigFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	applyDefaults(&file)

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"JWT access TTL", file.JWT.AccessTTL, new(time.Duration)},
		{"JWT refresh TTL", file.JWT.RefreshTTL, new(time.Duration)},
		{"OTP TTL", file.OTP.TTL, new(time.Duration)},
		{"OTP resend window", file.OTP.ResendWindow, new(time.Duration)},
		{"lockout duration", file.Security.LockoutDuration, new(time.Duration)},
		{"MFA challenge TTL", file.Security.MFAChallengeTTL, new(time.Duration)},
		{"session retention", file.Security.SessionRetention, new(time.Duration)},
		{"cleanup interval", file.Security.CleanupInterval, new(time.Duration)},
		{"OAuth state TTL", file.OAuth.StateTTL, new(time.Duration)},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = v
	}

	cfg := &Config{
		Port:             fmt.Sprintf("%d", file.App.Port),
		Env:              file.App.Env,
		GinMode:          file.App.GinMode,
		LogLevel:         file.App.LogLevel,
		LogFormat:        file.App.LogFormat,
		DSN:              file.Database.DSN,
		RedisAddr:        file.Redis.Addr,
		RedisPassword:    file.Redis.Password,
		RedisDB:          file.Redis.DB,
		JWTSecret:        file.JWT.Secret,
		JWTIssuer:        file.JWT.Issuer,
		AccessTTL:        *durations[0].dst,
		RefreshTTL:       *durations[1].dst,
		OTP_TTL:          *durations[2].dst,
		OTP_Length:       file.OTP.Length,
		OTP_MaxAttempts:  file.OTP.MaxAttempts,
		OTP_ResendWindow: *durations[3].dst,
		MaxLoginAttempts: file.Security.MaxLoginAttempts,
		LockoutDuration:  *durations[4].dst,
		MFAIssuer:        file.Security.MFAIssuer,
		MFAChallengeTTL:  *durations[5].dst,
		SessionRetention: *durations[6].dst,
		CleanupInterval:  *durations[7].dst,
		RateLimitRPS:     file.Security.RateLimitRPS,
		RateLimitBurst:   file.Security.RateLimitBurst,
		TwilioSID:        file.Twilio.AccountSID,
		TwilioToken:      file.Twilio.AuthToken,
		TwilioFrom:       file.Twilio.FromNumber,
		OAuth:            file.OAuth,
		OAuthStateTTL:    *durations[8].dst,
		Storage:          file.Storage,
		Payments:         file.Payments,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(f *ConfigFile) {
	def := func(s *string, v string) {
		if *s == "" {
			*s = v
		}
	}
	if f.App.Port == 0 {
		f.App.Port = 8080
	}
	def(&f.App.Env, env("APP_ENV", EnvDevelopment))
	def(&f.App.GinMode, "release")
	def(&f.App.LogLevel, "info")
	if f.App.LogFormat == "" {
		if f.App.Env == EnvProduction {
			f.App.LogFormat = "json"
		} else {
			f.App.LogFormat = "text"
		}
	}
	def(&f.JWT.Issuer, "airion")
	def(&f.JWT.AccessTTL, "15m")
	def(&f.JWT.RefreshTTL, "168h")
	def(&f.OTP.TTL, "5m")
	def(&f.OTP.ResendWindow, "60s")
	if f.OTP.Length == 0 {
		f.OTP.Length = 6
	}
	if f.OTP.MaxAttempts == 0 {
		f.OTP.MaxAttempts = 5
	}
	if f.Security.MaxLoginAttempts == 0 {
		f.Security.MaxLoginAttempts = 5
	}
	def(&f.Security.LockoutDuration, "15m")
	def(&f.Security.MFAIssuer, "Airion")
	def(&f.Security.MFAChallengeTTL, "5m")
	def(&f.Security.SessionRetention, "720h")
	def(&f.Security.CleanupInterval, "1h")
	if f.Security.RateLimitRPS == 0 {
		f.Security.RateLimitRPS = 5
	}
	if f.Security.RateLimitBurst == 0 {
		f.Security.RateLimitBurst = 10
	}
	def(&f.OAuth.StateTTL, "10m")
	def(&f.Storage.Region, "us-east-1")
	if f.Storage.MaxImageBytes == 0 {
		f.Storage.MaxImageBytes = 5 << 20
	}
	def(&f.Payments.Currency, "inr")
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("jwt ttls must be positive"))
	}
	if c.RefreshTTL < c.AccessTTL {
		errs = append(errs, errors.New("jwt.refresh_ttl must not be shorter than jwt.access_ttl"))
	}
	if c.OTP_TTL <= 0 || c.OTP_Length < 4 || c.OTP_MaxAttempts <= 0 {
		errs = append(errs, errors.New("otp settings must be positive and length at least 4"))
	}
	if c.MaxLoginAttempts <= 0 || c.LockoutDuration <= 0 {
		errs = append(errs, errors.New("lockout settings must be positive"))
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("unknown app.env %q", c.Env))
	}
	return errors.Join(errs...)
}

func loadOwnershipRules(path string) ([]OwnershipRule, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ownership rules file: %w", err)
	}

	var rules struct {
		Rules []OwnershipRule `yaml:"ownershipRules"`
	}
	if err := yaml.Unmarshal(bytes, &rules); err != nil {
		return nil, fmt.Errorf("could not parse ownership rules yaml: %w", err)
	}
	return rules.Rules, nil
}
