package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/shyam20433/PDF-extractor-RAG/internal/domain"
)

// QAService is the subset of the engine the HTTP front end needs.
type QAService interface {
	Ingest(pages []domain.Page) (int, error)
	Ask(question string) (domain.Answer, error)
	Status() (domain.Metadata, bool)
}

// Server is the HTTP front end: document upload, question answering, and
// health/status endpoints. PDF extraction happens upstream; uploads carry
// page-tagged text.
type Server struct {
	engine QAService
	echo   *echo.Echo
	log    *zap.Logger
	addr   string
}

// New creates the HTTP server and registers its routes.
func New(engine QAService, addr string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s := &Server{engine: engine, echo: e, log: log, addr: addr}
	e.GET("/health", s.handleHealth)
	e.GET("/status", s.handleStatus)
	e.POST("/upload", s.handleUpload)
	e.POST("/ask", s.handleAsk)
	return s
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server start: %w", err)
		}
	}()
	s.log.Info("http server listening", zap.String("addr", s.addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := s.echo.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}

type uploadRequest struct {
	Pages []domain.Page `json:"pages"`
}

type uploadResponse struct {
	ChunkCount int `json:"chunk_count"`
}

type askRequest struct {
	Question string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Ready    bool             `json:"ready"`
	Document *domain.Metadata `json:"document,omitempty"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(c echo.Context) error {
	meta, ok := s.engine.Status()
	if !ok {
		return c.JSON(http.StatusOK, statusResponse{Ready: false})
	}
	return c.JSON(http.StatusOK, statusResponse{Ready: true, Document: &meta})
}

func (s *Server) handleUpload(c echo.Context) error {
	var req uploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	count, err := s.engine.Ingest(req.Pages)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyDocument):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrIngestBusy):
			return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
		default:
			s.log.Error("ingest failed", zap.Error(err))
			return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		}
	}
	return c.JSON(http.StatusOK, uploadResponse{ChunkCount: count})
}

func (s *Server) handleAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil || req.Question == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "question is required"})
	}
	answer, err := s.engine.Ask(req.Question)
	if err != nil {
		s.log.Error("ask failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, answer)
}
