package server

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"sixteen/internal/config"
	"sixteen/internal/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errServerClosed = errors.New("server closed")

type Server struct {
	coord     *game.Coordinator
	db        *gorm.DB
	ws        *wsHub
	journal   *journal
	cfg       config.Config
	inbox     chan any
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New builds a server and starts its command loop. conn may be nil, in which
// case nothing is journaled and the history endpoints report unavailable.
func New(conn *gorm.DB, cfg config.Config) *Server {
	return newWithRoller(conn, cfg, game.NewRoller(cfg.DiceSeed))
}

func newWithRoller(conn *gorm.DB, cfg config.Config, roller game.Roller) *Server {
	queueSize := cfg.CommandQueueSize
	if queueSize <= 0 {
		queueSize = config.Default().CommandQueueSize
	}
	s := &Server{
		coord:   game.NewCoordinator(roller),
		db:      conn,
		ws:      newWSHub(time.Duration(cfg.WSWriteTimeoutSeconds) * time.Second),
		journal: newJournal(conn, cfg.JournalQueueSize),
		cfg:     cfg,
		inbox:   make(chan any, queueSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	registerValidators()
	go s.run()
	return s
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", s.handleHome)
	router.GET("/healthz", s.handleHealth)
	router.GET("/ws", s.handleWebsocket)
	api := router.Group("/api")
	api.GET("/state", s.handleState)
	api.GET("/history", s.handleHistory)
	api.GET("/players", s.handleLeaderboard)
	api.GET("/players/:name", s.handlePlayerStats)
	return router
}

// Close stops the command loop, disconnects every observer and flushes the
// journal.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		<-s.done
		s.ws.CloseAll()
		s.journal.Close()
	})
}
