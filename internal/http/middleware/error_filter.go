package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// HTTPErrorsTotal counts error responses by status code
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "airion_http_errors_total",
		Help: "Total error responses by HTTP status",
	},
	[]string{"status"},
)

// ErrorResponse is the JSON envelope of every error response
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path"`
	Method     string   `json:"method"`
	Message    string   `json:"message"`
	Error      string   `json:"error"`
	Stack      []string `json:"stack,omitempty"`
	Detail     string   `json:"detail,omitempty"`
}

// ErrorFilter converts errors attached with c.Error and panics into the
// JSON error envelope. In production 4xx are not logged, and neither panic
// stacks nor unclassified error details are sent to clients.
func ErrorFilter(logger *slog.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				writeError(c, logger, production, err, strings.Split(string(debug.Stack()), "\n"))
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		if last.IsType(gin.ErrorTypeBind) {
			writeError(c, logger, production, bindError(last.Err), nil)
			return
		}
		writeError(c, logger, production, last.Err, nil)
	}
}

func writeError(c *gin.Context, logger *slog.Logger, production bool, err error, stack []string) {
	status, message, known := domain.Classify(err)
	ctx := c.Request.Context()
	attrs := []any{
		"status", status,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err.Error(),
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.ErrorContext(ctx, "request failed", attrs...)
	case !production:
		logger.WarnContext(ctx, "request rejected", attrs...)
	}
	HTTPErrorsTotal.WithLabelValues(strconv.Itoa(status)).Inc()

	var lockout *domain.LockoutError
	if errors.As(err, &lockout) {
		c.Header("Retry-After", strconv.FormatInt(int64(lockout.RetryAfter.Seconds()), 10))
	}

	resp := ErrorResponse{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		Message:    message,
		Error:      http.StatusText(status),
	}
	if !production {
		resp.Stack = stack
		if !known {
			resp.Detail = err.Error()
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

// bindError turns a binding failure into a 400 listing the offending fields
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.BadRequest("invalid request body").WithCause(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.BadRequest(strings.Join(msgs, "; ")).WithCause(err)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "uuid", "uuid4":
		return field + " must be a UUID"
	case "email":
		return field + " must be a valid email"
	case "phone":
		return field + " must be an E.164 phone number"
	case "payment_method":
		return field + " must be one of " + strings.Join(domain.PaymentMethods, ", ")
	case "min", "gte":
		return field + " must be at least " + fe.Param()
	case "max", "lte":
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of " + fe.Param()
	default:
		return field + " is invalid"
	}
}

// abortWithError attaches err for the error filter and stops the chain
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BindError marks err as a request binding failure for the error filter.
func BindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.Abort()
}

// Fail attaches err for the error filter and stops the chain.
func Fail(c *gin.Context, err error) {
	abortWithError(c, err)
}
