package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/battrack/battrack/pkg/store"
	"github.com/battrack/battrack/pkg/tracker"
)

// Collector triggers one collection cycle.
type Collector interface {
	Collect(ctx context.Context, force bool) tracker.Result
}

// QueryStore is the read side of the record store.
type QueryStore interface {
	Range(start, end time.Time) ([]store.Record, error)
	Stats(start, end time.Time) (*store.RangeStats, error)
}

// Server exposes the record store and collector over HTTP. It is a thin
// request/response mapping; all semantics live in the store and tracker.
type Server struct {
	extractor tracker.Extractor
	collector Collector
	store     QueryStore
}

// New returns a Server over the given collaborators.
func New(extractor tracker.Extractor, collector Collector, queryStore QueryStore) *Server {
	return &Server{
		extractor: extractor,
		collector: collector,
		store:     queryStore,
	}
}

// Router builds the gin engine with all API routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/api/current", s.getCurrent)
	router.GET("/api/history", s.getHistory)
	router.POST("/api/record", s.postRecord)
	router.GET("/api/stats", s.getStats)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "endpoint not found"})
	})

	return router
}

// Run serves the API until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-sigc:
		logrus.Infof("caught signal %q: shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
