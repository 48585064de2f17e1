package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/heritagegraph/dashboard-gateway/backend"
	"github.com/heritagegraph/dashboard-gateway/identity"
	"github.com/heritagegraph/dashboard-gateway/internal/config"
	"github.com/heritagegraph/dashboard-gateway/server"
	"github.com/heritagegraph/dashboard-gateway/server/authflow"
	"github.com/heritagegraph/dashboard-gateway/session"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	// Local development reads a .env file; production supplies real env vars
	_ = godotenv.Load()

	c := config.New()
	if err := validateConfig(c); err != nil {
		return err
	}

	logger := newLogger(c)
	displayAppname(c.GetAppName())

	idp, err := identity.New(context.Background(), identity.Config{
		IssuerURL:    c.GetIssuerURL(),
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURL:  c.GetRedirectURL(),
		Scopes:       c.GetScopes(),
	})
	if err != nil {
		return fmt.Errorf("identity provider setup: %w", err)
	}

	store := session.NewStore(session.NewHMACSigner(c.GetSessionSecret()), c.GetSessionTTL())
	backendClient := backend.NewClient(c.GetBackendBaseURL(), c.GetBackendTimeout(), logger)
	pipeline := session.NewPipeline(store, backendClient, logger)

	gateway := server.New(c, idp, pipeline, backendClient, authflow.NewInMemoryRepo(), logger)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: gateway}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// validateConfig refuses to start without the secrets that have no defaults.
func validateConfig(c config.Config) error {
	switch {
	case c.GetSessionSecret() == "":
		return errors.New("SESSION_SECRET must be set")
	case c.GetIssuerURL() == "":
		return errors.New("OIDC_ISSUER must be set")
	case c.GetClientID() == "":
		return errors.New("OIDC_CLIENT_ID must be set")
	case c.GetClientSecret() == "":
		return errors.New("OIDC_CLIENT_SECRET must be set")
	}
	return nil
}

func newLogger(c config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if c.GetEnv() == "DEV" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout}).Level(zerolog.DebugLevel)
	}
	return logger
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
