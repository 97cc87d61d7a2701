// launching the http server and the composition pipeline
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/tryon-compositor/config"
	"github.com/ds124wfegd/tryon-compositor/internal/pkg/compositor"
	"github.com/ds124wfegd/tryon-compositor/internal/service"
	"github.com/ds124wfegd/tryon-compositor/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	httpServer *http.Server
}

// newHTTPServer builds the server up front so Shutdown never races with Run.
func newHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires compositor, service and routes for the given configuration.
func NewHandler(cfg *config.Config) (http.Handler, error) {
	comp, err := compositor.New(compositor.Options{
		Filter:    cfg.Compositor.Filter,
		MaxPixels: cfg.Compositor.MaxPixels,
	})
	if err != nil {
		return nil, err
	}

	tryOnService := service.NewTryOnService(comp, service.Options{
		OutputFormat: cfg.Compositor.OutputFormat,
		JPEGQuality:  cfg.Compositor.JPEGQuality,
	}, logrus.StandardLogger())
	tryOnHandler := transport.NewTryOnHandler(tryOnService)

	return transport.InitRoutes(tryOnHandler, cfg.Server.MaxUploadBytes), nil
}

func NewServer(cfg *config.Config) {

	configureLogging(cfg)

	if cfg.Server.Mode == gin.ReleaseMode || cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.Server.Mode)
	}

	handler, err := NewHandler(cfg)
	if err != nil {
		logrus.Fatalf("error occured while building http handler: %s", err.Error())
	}

	srv := newHTTPServer(cfg, handler)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"addr":    cfg.ServerAddress(),
		"version": cfg.Server.AppVersion,
	}).Info("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

func configureLogging(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
