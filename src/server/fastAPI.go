package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"token-scanner/src/helpers"
	"token-scanner/src/interfaces"
	"token-scanner/src/logger"
	"token-scanner/src/metrics"
	"token-scanner/src/models"
	"token-scanner/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// FastAPIServer
// -----------------------------------------------------------------------------

type FastAPIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Analyzer interfaces.IAnalyzer
	Narrator interfaces.INarrator
	Errors   *helpers.ErrorHandler

	engine     *gin.Engine
	httpServer *http.Server

	// WebSocket clients, owned by the hub loop
	clients    map[*Client]struct{}
	broadcast  chan *models.MAnalysisEvent
	register   chan *Client
	unregister chan *Client
	subscribed chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	// Recent analyses, newest last
	history    *utils.RingBuffer[*models.MAnalysisEvent]
	stateMutex sync.RWMutex
}

var _ interfaces.IDataExchanger = (*FastAPIServer)(nil)

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewFastAPIServer(cfg *models.MConfig, analyzer interfaces.IAnalyzer, narrator interfaces.INarrator, log *logger.Logger) *FastAPIServer {
	if cfg.LogLevel != "DEBUG" && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &FastAPIServer{
		Config:     cfg,
		Logger:     log,
		Analyzer:   analyzer,
		Narrator:   narrator,
		Errors:     helpers.NewErrorHandler(log),
		engine:     gin.New(),
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan *models.MAnalysisEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribed: make(chan *Client),
		done:       make(chan struct{}),
		history:    utils.NewRingBuffer[*models.MAnalysisEvent](historySize),
	}

	if cfg.LogLevel == "DEBUG" {
		s.engine.Use(gin.Logger())
	}

	s.engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.Logger.Error("Panic while serving %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(errAnalyzeFailed))
	}))

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *FastAPIServer) setupRoutes() {
	s.engine.POST("/api/analyze", s.analyze)
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/recent", s.getRecent)
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the routed engine, mainly for tests.
func (s *FastAPIServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *FastAPIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.handleWebsockets()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })

	if s.httpServer == nil {
		return nil
	}
	s.Logger.Info("Stopping HTTP server...")
	return s.httpServer.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *FastAPIServer) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(errInvalidAddress))
		return
	}

	address := strings.TrimSpace(req.ContractAddress)
	if address == "" {
		c.JSON(http.StatusBadRequest, errorBody(errInvalidAddress))
		return
	}

	ctx := c.Request.Context()

	analysis, err := s.Analyzer.Analyze(ctx, address)
	if err != nil {
		if helpers.IsValidation(err) {
			c.JSON(http.StatusBadRequest, errorBody(errInvalidAddress))
			return
		}
		s.Errors.Handle(err, "analyze")
		c.JSON(http.StatusInternalServerError, errorBody(errAnalyzeFailed))
		return
	}

	text, err := s.Narrator.Narrate(ctx, analysis)
	if err != nil {
		s.Errors.Handle(err, "narrate")
		c.JSON(http.StatusInternalServerError, errorBody(errAnalyzeFailed))
		return
	}

	s.Publish(&models.MAnalysisEvent{
		Type:      EventAnalysis,
		Analysis:  *analysis,
		Narrative: text,
		Timestamp: analysis.AnalyzedAt.Unix(),
	})

	c.JSON(http.StatusOK, newAnalyzeResponse(analysis, text))
}

// -----------------------------------------------------------------------------

func (s *FastAPIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	buffered := s.history.Size()
	var latest int64
	if last, ok := s.history.Last(); ok {
		latest = last.Timestamp
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   connections,
		"history":       buffered,
		"latest_update": latest,
	})
}

// -----------------------------------------------------------------------------

// getRecent returns the last analyses, oldest first. ?limit caps the count.
func (s *FastAPIServer) getRecent(c *gin.Context) {
	var q recentQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("limit must be between 1 and "+strconv.Itoa(s.history.Capacity())))
		return
	}

	s.stateMutex.RLock()
	var events []*models.MAnalysisEvent
	if q.Limit == 0 {
		events = s.history.GetAll()
	} else {
		events = s.history.GetLatest(q.Limit)
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{"analyses": events})
}
