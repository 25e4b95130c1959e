package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/config"
	"birthday-song-service/internal/handler"
	appmw "birthday-song-service/internal/middleware"
	"birthday-song-service/internal/ratelimit"
	"birthday-song-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Orders     service.OrderService
	Generation service.GenerationService
	Checkout   service.CheckoutService
	Share      service.ShareService
	Social     service.SocialService
	Admin      service.AdminService
}

type Server struct {
	echo *echo.Echo
	log  logrus.FieldLogger

	general    *ratelimit.Limiter
	generation *ratelimit.Limiter
	adminAuth  echo.MiddlewareFunc

	orderHandler      *handler.OrderHandler
	generationHandler *handler.GenerationHandler
	checkoutHandler   *handler.CheckoutHandler
	shareHandler      *handler.ShareHandler
	socialHandler     *handler.SocialHandler
	adminHandler      *handler.AdminHandler
}

type errorResponse struct {
	Error      string              `json:"error"`
	Message    string              `json:"message"`
	Issues     []apperr.FieldError `json:"issues,omitempty"`
	RetryAfter int                 `json:"retryAfter,omitempty"`
}

func NewServer(cfg *config.Config, log logrus.FieldLogger, store *ratelimit.Store, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo: e,
		log:  log,

		general:    ratelimit.NewLimiter(store, "general", cfg.RateLimit.GeneralMax, cfg.RateLimit.GeneralWindow),
		generation: ratelimit.NewLimiter(store, "generation", cfg.RateLimit.GenerationMax, cfg.RateLimit.GenerationWindow),
		adminAuth:  appmw.AdminAuth(cfg.Admin.JWTSecret),

		orderHandler:      handler.NewOrderHandler(services.Orders),
		generationHandler: handler.NewGenerationHandler(services.Generation),
		checkoutHandler:   handler.NewCheckoutHandler(services.Checkout),
		shareHandler:      handler.NewShareHandler(services.Share),
		socialHandler:     handler.NewSocialHandler(services.Social),
		adminHandler:      handler.NewAdminHandler(services.Admin),
	}

	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			}).Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.Origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		ExposeHeaders: []string{
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After",
		},
	}))

	// client bundle; unknown non-API paths fall back to index.html
	if cfg.WebDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  cfg.WebDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api")
			},
		}))
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	general := appmw.RateLimit(s.general)
	generation := appmw.RateLimit(s.generation)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.POST("", s.orderHandler.CreateOrder, general)
	orders.GET("/:id", s.orderHandler.GetOrder, general)
	orders.PATCH("/:id", s.orderHandler.UpdateOrder, general)

	orders.POST("/:id/lyrics", s.generationHandler.GenerateLyrics, generation)
	orders.GET("/:id/lyrics", s.generationHandler.ListLyrics, general)
	orders.POST("/:id/lyrics/:lyricsId/select", s.generationHandler.SelectLyrics, general)
	orders.PATCH("/:id/lyrics/:lyricsId", s.generationHandler.EditLyrics, general)

	orders.POST("/:id/songs", s.generationHandler.GenerateSongs, generation)
	orders.GET("/:id/songs", s.generationHandler.ListSongs, general)
	orders.POST("/:id/songs/:songId/select", s.generationHandler.SelectSong, general)

	orders.POST("/:id/video", s.generationHandler.StartVideo, generation)
	orders.GET("/:id/video", s.generationHandler.GetVideo, general)

	orders.GET("/:id/share", s.shareHandler.GetShare, general)

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.GET("/pricing", s.checkoutHandler.Pricing, general)
	checkout.POST("", s.checkoutHandler.CreateCheckout, general)
	checkout.GET("/:sessionId", s.checkoutHandler.GetSession, general)
	checkout.POST("/webhook", s.checkoutHandler.Webhook)

	api.POST("/social/autofill", s.socialHandler.Autofill, generation)

	api.GET("/admin/stats", s.adminHandler.Stats, s.adminAuth)
}

// handleError is the single place handler failures become HTTP responses.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := s.errorBody(err, c)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.log.WithError(err).Error("write error response")
	}
}

func (s *Server) errorBody(err error, c echo.Context) (int, *errorResponse) {
	if appErr, ok := apperr.As(err); ok && appErr.Kind != apperr.KindInternal {
		return appErr.Status(), &errorResponse{
			Error:      appErr.ErrorCode(),
			Message:    appErr.Message,
			Issues:     appErr.Issues,
			RetryAfter: appErr.RetryAfter,
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && (he.Code < http.StatusInternalServerError || he.Code == http.StatusServiceUnavailable) {
		return he.Code, &errorResponse{
			Error:   errorCode(he.Code),
			Message: fmt.Sprint(he.Message),
		}
	}

	s.log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"uri":    c.Request().RequestURI,
	}).Error("request failed")

	internal := apperr.Internal(err)
	return internal.Status(), &errorResponse{
		Error:   internal.ErrorCode(),
		Message: internal.Message,
	}
}

// errorCode turns a status into a snake_case code: 401 -> "unauthorized".
func errorCode(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
