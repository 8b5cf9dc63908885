package server

import (
	"errors"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
	"playerd/domain"
	"playerd/internal/config"
	"playerd/internal/metrics"
)

type Server struct {
	players *domain.PlayerService
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewServer(players *domain.PlayerService, m *metrics.Metrics, cfg config.HTTP, log *slog.Logger, r *gin.Engine) *Server {
	server := &Server{
		players: players,
		metrics: m,
		log:     log,
	}

	r.Use(server.requestLogger(), server.recovery(), corsFor(cfg.AllowedOrigin), limitBody(cfg.MaxBodyBytes))

	r.GET("/", server.rootHandler)
	r.POST("/api/users", server.registerHandler)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	server.log.Info("router configured")
	return server
}

func (s *Server) rootHandler(c *gin.Context) {
	c.String(http.StatusOK, rootMessage)
}

func (s *Server) registerHandler(c *gin.Context) {
	const op = "gates.server.registerHandler"

	req, err := decodeRegisterRequest(c)
	if err != nil {
		s.log.Debug("failed to decode request body", "op", op, "error", err)
		s.metrics.Registration(metrics.OutcomeMalformed)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorsResponse{Errors: []errorMsg{{Msg: bodyTooLargeMsg}}})
			return
		}
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: []errorMsg{{Msg: invalidBodyMsg}}})
		return
	}

	reg, err := s.players.Register(c.Request.Context(), req.toDomain())
	var verrs domain.ValidationErrors
	switch {
	case err == nil:
		s.metrics.Registration(metrics.OutcomeCreated)
		c.JSON(http.StatusOK, tokenResponse{Token: reg.Token})
	case errors.As(err, &verrs):
		s.metrics.Registration(metrics.OutcomeInvalid)
		c.JSON(http.StatusUnprocessableEntity, errorsResponse{Errors: verrs})
	case errors.Is(err, domain.ErrPlayerExists):
		s.metrics.Registration(metrics.OutcomeDuplicate)
		c.JSON(http.StatusBadRequest, errorsResponse{Errors: []errorMsg{{Msg: playerExistsMsg}}})
	default:
		if errors.Is(err, domain.ErrTokenNotIssued) {
			s.metrics.TokenFailure()
		}
		s.metrics.Registration(metrics.OutcomeError)
		s.log.Error("server error", "op", op, "error", err)
		c.String(http.StatusInternalServerError, serverErrorMessage)
	}
}
