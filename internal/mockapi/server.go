package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/five82/rastreo/internal/backend"
)

const shutdownTimeout = 5 * time.Second

// Server is a development stand-in for the tracking REST API.
type Server struct {
	e     *echo.Echo
	store *Store
	log   zerolog.Logger
	now   func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger attaches a logger used for request logs and errors.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.log = log.With().Str("component", "mockapi").Logger()
	}
}

// WithClock overrides the clock used to timestamp history records.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Server over store with all routes registered.
func New(store *Store, opts ...Option) *Server {
	s := &Server{
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = s.handleError

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			s.log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	}))

	api := e.Group("/api")
	api.GET("/track/:id", s.track)
	api.GET("/history", s.history)
	api.GET("/health", s.health)

	s.e = e
	return s
}

// ServeHTTP lets the Server be mounted in tests or other muxes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("mock api listening")
		errc <- s.e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("mock api shutting down")
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

type trackRequest struct {
	TrackingNumber string `validate:"required,max=64,printascii"`
}

func (s *Server) track(c echo.Context) error {
	raw := c.Param("id")
	number, err := url.PathUnescape(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tracking number encoding")
	}
	req := trackRequest{TrackingNumber: strings.TrimSpace(number)}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data := s.store.Track(req.TrackingNumber)
	s.store.Record(req.TrackingNumber, s.now())
	s.log.Debug().
		Str("tracking_number", req.TrackingNumber).
		Int("updates", len(data)).
		Msg("track")

	return c.JSON(http.StatusOK, backend.TrackingResponse{Data: data})
}

func (s *Server) history(c echo.Context) error {
	return c.JSON(http.StatusOK, backend.HistoryResponse{History: s.store.History()})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// errorResponse is the error envelope for all mock API errors.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
	} else {
		s.log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
	}
	_ = c.JSON(code, errorResponse{Error: msg})
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

func newValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := "tracking number"
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "printascii":
		return field + " must be printable ASCII"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
