package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	valid "github.com/asaskevich/govalidator"
	"github.com/go-chi/chi"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ajor-finance/ajor/internal/governance"
	"github.com/ajor-finance/ajor/internal/health"
	"github.com/ajor-finance/ajor/internal/server"
	"github.com/ajor-finance/ajor/internal/service"
)

var errTerminated = errors.New("terminated")

type HTTPOpts struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"localhost" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on for insecure connections"`
	MaxBodySize    int64         `long:"http.max-body-size" env:"HTTP_MAX_BODY_SIZE" default:"1000" description:"max request's body size"`
	RequestTimeout time.Duration `long:"http.request-timeout" env:"HTTP_REQUEST_TIMEOUT" default:"30s" description:"timeout of request processing"`
}

type serveCommand struct {
	HTTPOpts
}

func (c *serveCommand) Execute(_ []string) error {
	if !valid.IsHost(c.Host) {
		return fmt.Errorf("invalid host %q", c.Host)
	}

	j, db := mustGetJournal()
	o := mustGetOrchestrator(j, false)

	r := chi.NewMux()

	server.SetupRouter(service.New(o, governance.New(o), j), r, c.RequestTimeout, c.MaxBodySize)
	health.SetupRouter(r, checks(o, db)...)

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", c.Host, c.Port),
		Handler: r,
	}

	ctx, cancel := signalContext()
	defer cancel()

	gr, _ := errgroup.WithContext(context.Background())
	gr.Go(srv.ListenAndServe)

	gr.Go(func() error {
		<-ctx.Done()

		logrus.Info("terminating by signal")

		if err := srv.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("failed to gracefully shutdown server")
		}

		return errTerminated
	})

	logrus.WithField("addr", srv.Addr).Info("service started")

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("service unexpectedly closed: %w", err)
	}

	return nil
}

type statusCommand struct{}

type statusOutput struct {
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
	Error   string            `json:"error,omitempty"`
}

func (c *statusCommand) Execute(_ []string) error {
	j, db := mustGetJournal()
	o := mustGetOrchestrator(j, false)

	ctx, cancel := signalContext()
	defer cancel()

	res, err := health.Status(ctx, checks(o, db)...)

	out := statusOutput{Version: health.GetVersion(), Checks: res}
	if err != nil {
		out.Error = err.Error()
	}

	if err := printJSON(out); err != nil {
		return err
	}

	return err
}

func checks(chain health.Pinger, db *sql.DB) []health.Check {
	out := []health.Check{health.NewCheck("chain", chain)}

	if db != nil {
		out = append(out, health.NewCheck("postgres", health.PingFunc(db.PingContext)))
	}

	return out
}
