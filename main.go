package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/config"
	"github.com/pocketledger/backend/pkg/controllers"
	"github.com/pocketledger/backend/pkg/ledger"
	"github.com/pocketledger/backend/pkg/menu"
	"github.com/pocketledger/backend/pkg/router"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configFile := flag.String("config", "ledger.yaml", "path to the YAML configuration file")
	envFile := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	c, err := config.Load(*configFile, *envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	if err := c.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration")
	}

	gin.SetMode(c.Gin.Mode)

	// The menu uses stdout, logs go to stderr there
	output := io.Writer(os.Stdout)
	interactive := flag.Arg(0) == "menu"
	if interactive {
		output = os.Stderr
	}

	if c.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: output}
	}

	level, _ := zerolog.ParseLevel(c.Log.Level)
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(output).With().Timestamp().Logger()

	store, err := storage.Open(storage.Backend(c.Storage.Backend), c.Storage.Dir, c.Storage.DSN)
	if err != nil {
		log.Fatal().Err(err).Str("backend", c.Storage.Backend).Msg("Storage")
	}
	defer store.Close()

	l := ledger.New(store)
	if err := l.Load(); err != nil {
		log.Fatal().Err(err).Msg("Ledger")
	}

	switch flag.Arg(0) {
	case "menu":
		if err := menu.New(l, os.Stdin, os.Stdout).Run(); err != nil {
			log.Error().Err(err).Msg("Menu")
		}
	case "", "serve":
		serve(c, l)
	default:
		log.Error().Str("command", flag.Arg(0)).Msg("Unknown command, use serve or menu")
	}
}

func serve(c config.Config, l *ledger.Ledger) {
	r, teardown, err := router.Config(router.Options{
		URL:          c.URL(),
		AllowOrigins: c.CORS.AllowOrigins,
		Pprof:        c.Pprof.Enabled,
	})
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(controllers.Controller{Ledger: l}, r.Group(c.URL().Path))

	srv := &http.Server{
		Addr:              c.API.Listen,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("listen", c.API.Listen).Msg("Server")
		}
	}()
	log.Info().Str("listen", c.API.Listen).Str("backend", c.Storage.Backend).Msg("Server started")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
		return
	}
	log.Info().Msg("Server stopped gracefully")
}
