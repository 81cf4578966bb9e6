// Package api exposes the catalog, live state and interaction commands over HTTP and WebSocket
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/orrery/engine"
)

const (
	commandRate    = 20 // Per client, per second
	commandBurst   = 40
	shutdownGrace  = 2 * time.Second
	writeTimeout   = 5 * time.Second
	maxInboundSize = 4096
)

// Options configures a Server
type Options struct {
	Commands    chan<- engine.Command // Queue drained by the frame loop
	Publisher   *Publisher
	Metrics     http.Handler // Served at /metrics when set
	BroadcastHz float64      // WebSocket snapshot rate per client
	Origins     []string     // CORS origins, empty allows all
}

// Server routes HTTP requests onto the simulation loop
type Server struct {
	router      *gin.Engine
	commands    chan<- engine.Command
	publisher   *Publisher
	broadcastHz float64
	limiter     *IPRateLimiter
	upgrader    websocket.Upgrader
}

// NewServer builds the router
func NewServer(opts Options) *Server {
	s := &Server{
		router:      gin.New(),
		commands:    opts.Commands,
		publisher:   opts.Publisher,
		broadcastHz: opts.BroadcastHz,
		limiter:     NewIPRateLimiter(rate.Limit(commandRate), commandBurst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	if s.broadcastHz <= 0 {
		s.broadcastHz = 10
	}
	if s.publisher == nil {
		s.publisher = NewPublisher()
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.Origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.Origins
	}

	s.router.Use(gin.Recovery(), cors.New(corsCfg))

	api := s.router.Group("/api")
	{
		api.GET("/bodies", s.getBodies)
		api.GET("/bodies/:name", s.getBody)
		api.GET("/state", s.getState)
		api.POST("/commands", s.postCommand)
	}
	s.router.GET("/ws", s.stream)
	if opts.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	return s
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.Sweep(sweepCtx, limiterSweep)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("api: listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "api listen")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "api shutdown")
		}
		return nil
	}
}

// enqueue validates and queues a command without blocking the caller
func (s *Server) enqueue(cmd engine.Command) (int, error) {
	if cmd.Kind == engine.CmdPick {
		return http.StatusBadRequest, errors.New("pick needs a screen ray, use select with a planet name")
	}
	if err := cmd.Validate(); err != nil {
		return http.StatusBadRequest, err
	}
	select {
	case s.commands <- cmd:
		return http.StatusAccepted, nil
	default:
		return http.StatusServiceUnavailable, errors.New("command queue full")
	}
}
