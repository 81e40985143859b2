package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/config"
	httpx "github.com/vinay2003/Airion-backend-sub001/internal/http"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/handlers"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/audit"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/auth"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/database"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/notifications"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/oauth"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/payments"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/repositories"
	"github.com/vinay2003/Airion-backend-sub001/internal/infrastructure/storage"
	"github.com/vinay2003/Airion-backend-sub001/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  clockwork.Clock

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService
	Registry    *prometheus.Registry

	// Repositories
	UserRepo     domain.UserRepository
	SessionRepo  domain.SessionRepository
	OtpRepo      domain.OtpRepository
	VendorRepo   domain.VendorRepository
	CategoryRepo domain.CategoryRepository
	ServiceRepo  domain.ServiceRepository
	BookingRepo  domain.BookingRepository
	Ephemeral    domain.EphemeralStore

	// Gateways
	Audit     domain.AuditLogger
	Notifier  domain.NotificationService
	Storage   domain.ImageStorage
	Payments  domain.PaymentGateway
	Providers map[string]domain.OAuthProvider

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	TOTPSvc     domain.TOTPService
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	PolicySvc   domain.PolicyService
	VendorSvc   domain.VendorService
	CatalogSvc  domain.CatalogService
	BookingSvc  domain.BookingService
}

// NewContainer connects to postgres and redis, applies migrations and
// assembles the services on top of them.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN, !cfg.IsProduction() && cfg.LogLevel == "debug")
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db, logger)
		return nil, err
	}
	client, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		closeDB(db, logger)
		return nil, err
	}

	c, err := Assemble(cfg, logger, db, client, clockwork.NewRealClock())
	if err != nil {
		client.Close()
		closeDB(db, logger)
		return nil, err
	}
	return c, nil
}

// Assemble builds every repository, gateway and service over already open
// connections and seeds the default policies when none exist.
func Assemble(cfg *config.Config, logger *slog.Logger, db *gorm.DB, client *redis.Client, clock clockwork.Clock) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Clock: clock, DB: db, RedisClient: client}
	if err := c.initCasbin(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initGateways()
	c.initServices()
	return c, nil
}

func (c *Container) initCasbin() error {
	cas, err := auth.NewCasbinService(c.DB)
	if err != nil {
		return err
	}
	if err := cas.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed casbin policies: %w", err)
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.DB)
	c.OtpRepo = repositories.NewOtpRepository(c.DB)
	c.VendorRepo = repositories.NewVendorRepository(c.DB)
	c.CategoryRepo = repositories.NewCategoryRepository(c.DB)
	c.ServiceRepo = repositories.NewServiceRepository(c.DB)
	c.BookingRepo = repositories.NewBookingRepository(c.DB)
	c.Ephemeral = repositories.NewEphemeralStore(c.RedisClient)
}

func (c *Container) initGateways() {
	cfg := c.Config
	c.Audit = audit.NewSlogLogger(c.Logger)
	c.Notifier = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, c.Logger)
	c.Storage = storage.NewS3Uploader(storage.Config{
		Endpoint:      cfg.Storage.Endpoint,
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		MaxImageBytes: cfg.Storage.MaxImageBytes,
	})
	c.Payments = payments.NewStripeGateway(payments.Config{
		SecretKey:     cfg.Payments.StripeSecretKey,
		WebhookSecret: cfg.Payments.StripeWebhookSecret,
		Currency:      cfg.Payments.Currency,
	})
	c.Providers = oauth.Registry(credentials(cfg.OAuth.Google), credentials(cfg.OAuth.GitHub))
	if len(c.Providers) == 0 {
		c.Logger.Info("oauth: no providers configured")
	}
}

func credentials(p config.OAuthProviderConfig) oauth.Credentials {
	return oauth.Credentials{ClientID: p.ClientID, ClientSecret: p.ClientSecret, RedirectURL: p.RedirectURL}
}

func (c *Container) initServices() {
	cfg := c.Config
	c.PasswordSvc = auth.NewPasswordService(0)
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL, c.Clock)
	c.TOTPSvc = auth.NewTOTPService(cfg.MFAIssuer, c.Clock)

	c.OTPSvc = services.NewOTPService(c.OtpRepo, c.Notifier, c.RedisClient, c.Clock, services.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo, c.SessionRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, c.TOTPSvc,
		c.Ephemeral, c.Audit, c.Clock,
		services.AuthConfig{
			MaxLoginAttempts: cfg.MaxLoginAttempts,
			LockoutDuration:  cfg.LockoutDuration,
			MFAChallengeTTL:  cfg.MFAChallengeTTL,
		},
	)
	c.VendorSvc = services.NewVendorService(c.VendorRepo, c.Storage, c.Audit, c.Clock)
	c.CatalogSvc = services.NewCatalogService(c.CategoryRepo, c.ServiceRepo, c.VendorRepo, c.Clock)
	c.BookingSvc = services.NewBookingService(c.BookingRepo, c.VendorRepo, c.ServiceRepo, c.Payments, c.Audit, c.Clock)
}

// Router builds the HTTP engine on top of the container's services.
func (c *Container) Router() *gin.Engine {
	cfg := c.Config
	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return httpx.BuildRouter(httpx.Router{
		Auth:     handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc, c.UserRepo, c.Logger),
		OAuth:    handlers.NewOAuthHandlers(c.AuthSvc, c.Providers, c.Ephemeral, cfg.OAuthStateTTL, cfg.OAuth.SuccessRedirect),
		Vendors:  handlers.NewVendorHandlers(c.VendorSvc),
		Catalog:  handlers.NewCatalogHandlers(c.CatalogSvc),
		Bookings: handlers.NewBookingHandlers(c.BookingSvc),
		Policies: handlers.NewPolicyHandlers(c.PolicySvc),

		JWT:       middleware.NewAuthMW(c.TokenSvc, c.SessionRepo, c.Clock),
		Casbin:    middleware.NewCasbinMW(c.PolicySvc, cfg.OwnershipRules),
		AuthLimit: middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, c.Clock),

		Logger:     c.Logger,
		Production: cfg.IsProduction(),
		Registry:   c.Registry,
	})
}

// Close releases the database and redis connections.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("redis close failed", "error", err)
		}
	}
	if c.DB != nil {
		closeDB(c.DB, c.Logger)
	}
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("database close failed", "error", err)
	}
}
