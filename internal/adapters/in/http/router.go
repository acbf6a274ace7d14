package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// APIPrefix is the path prefix of the versioned REST API.
const APIPrefix = "/api/v1"

// RouterConfig tunes the echo instance built by NewRouter.
type RouterConfig struct {
	// RateLimit is the sustained request rate per client IP; 0 disables limiting.
	RateLimit float64
	// LogLevel applies to echo's own gommon logger.
	LogLevel log.Lvl
	Logger   *zap.Logger
}

// NewRouter builds the echo instance serving the health probe, the Swagger UI and the
// REST API. Requests under APIPrefix are validated against the embedded OpenAPI
// document before reaching the handlers.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}

	validator, err := OpenAPIRequestValidator(doc, APIPrefix)
	if err != nil {
		return nil, err
	}

	RegisterSwagger()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.LogLevel)

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger))
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstanceName)))

	api := e.Group(APIPrefix, validator)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/approve", s.ApproveOrder)
	api.POST("/orders/:orderId/reject", s.RejectOrder)
	api.POST("/orders/:orderId/products/:productId/allocate", s.AllocateInventory)
	api.POST("/orders/:orderId/products/:productId/dispatch", s.DispatchProducts)
	api.POST("/orders/:orderId/products/:productId/deliver", s.DeliverProducts)

	return e, nil
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogHeaders:   []string{UserHeader},
		LogRoutePath: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("route", v.RoutePath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remoteIp", v.RemoteIP),
			}
			if users := v.Headers[http.CanonicalHeaderKey(UserHeader)]; len(users) > 0 {
				fields = append(fields, zap.String("user", users[0]))
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
