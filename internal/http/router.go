package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/handlers"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

// Router bundles everything BuildRouter mounts
type Router struct {
	Auth     *handlers.AuthHandlers
	OAuth    *handlers.OAuthHandlers
	Vendors  *handlers.VendorHandlers
	Catalog  *handlers.CatalogHandlers
	Bookings *handlers.BookingHandlers
	Policies *handlers.PolicyHandlers

	JWT       *middleware.AuthMW
	Casbin    *middleware.CasbinMW
	AuthLimit *middleware.IPRateLimiter

	Logger     *slog.Logger
	Production bool
	Registry   *prometheus.Registry
}

// BuildRouter wires routes. Public catalog reads use optional auth;
// everything else behind JWT is authorized by casbin.
func BuildRouter(rt Router) *gin.Engine {
	handlers.RegisterValidators()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorFilter(rt.Logger, rt.Production),
		middleware.NewHTTPMetrics(rt.Registry).Middleware(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		prometheus.Gatherers{rt.Registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)))

	r.POST("/webhooks/stripe", rt.Bookings.StripeWebhook)

	auth := r.Group("/auth", rt.AuthLimit.Middleware())
	auth.POST("/register", rt.Auth.Register)
	auth.POST("/login", rt.Auth.Login)
	auth.POST("/mfa/verify", rt.Auth.VerifyMFA)
	auth.POST("/otp/send", rt.Auth.SendOTP)
	auth.POST("/otp/verify", rt.Auth.VerifyOTP)
	auth.POST("/refresh", rt.Auth.Refresh)
	auth.GET("/:provider", rt.OAuth.Redirect)
	auth.GET("/:provider/callback", rt.OAuth.Callback)

	public := r.Group("/", rt.JWT.Optional())
	public.GET("/vendors", rt.Vendors.List)
	public.GET("/vendors/:id", rt.Vendors.Get)
	public.GET("/categories", rt.Catalog.ListCategories)
	public.GET("/services", rt.Catalog.ListServices)
	public.GET("/services/:id", rt.Catalog.GetService)
	public.GET("/services/:id/packages", rt.Catalog.ListPackages)

	v := r.Group("/", rt.JWT.WithJWT(), rt.Casbin.Enforce())
	v.GET("/auth/me", rt.Auth.Me)
	v.POST("/auth/logout", rt.Auth.Logout)
	v.POST("/auth/logout-all", rt.Auth.LogoutAll)
	v.GET("/auth/sessions", rt.Auth.Sessions)
	v.DELETE("/auth/sessions/:id", rt.Auth.RevokeSession)
	v.POST("/auth/password", rt.Auth.ChangePassword)
	v.POST("/auth/mfa/setup", rt.Auth.SetupMFA)
	v.POST("/auth/mfa/enable", rt.Auth.EnableMFA)
	v.POST("/auth/mfa/disable", rt.Auth.DisableMFA)

	v.POST("/vendors", rt.Vendors.Create)
	v.GET("/vendors/stats", rt.Vendors.Stats)
	v.PATCH("/vendors/:id", rt.Vendors.Update)
	v.DELETE("/vendors/:id", rt.Vendors.Delete)
	v.PATCH("/vendors/:id/approve", rt.Vendors.Approve)
	v.PATCH("/vendors/:id/reject", rt.Vendors.Reject)
	v.PATCH("/vendors/:id/activate", rt.Vendors.Activate)
	v.PATCH("/vendors/:id/deactivate", rt.Vendors.Deactivate)
	v.POST("/vendors/:id/logo", rt.Vendors.UploadLogo)

	v.POST("/categories", rt.Catalog.CreateCategory)
	v.POST("/services", rt.Catalog.CreateService)
	v.PATCH("/services/:id", rt.Catalog.UpdateService)
	v.DELETE("/services/:id", rt.Catalog.DeleteService)
	v.POST("/services/:id/packages", rt.Catalog.AddPackage)

	v.POST("/bookings", rt.Bookings.Create)
	v.GET("/bookings", rt.Bookings.List)
	v.GET("/bookings/:id", rt.Bookings.Get)
	v.PATCH("/bookings/:id/status", rt.Bookings.UpdateStatus)
	v.GET("/users/:id/bookings", rt.Bookings.ListForUser)

	v.GET("/admin/policies", rt.Policies.List)
	v.POST("/admin/policies", rt.Policies.Add)
	v.DELETE("/admin/policies", rt.Policies.Remove)

	return r
}
