// Package health provides handler for health checks.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"golang.org/x/sync/errgroup"

	"github.com/Decentr-net/go-api"
	logging "github.com/Decentr-net/logrus/context"
)

// nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "unknown"
)

const checkTimeout = 5 * time.Second

// GetVersion returns service's version and commit.
func GetVersion() string {
	return fmt.Sprintf("%s-%s", version, commit)
}

// VersionResponse ...
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// StatusResponse is a body of /health response.
type StatusResponse struct {
	VersionResponse
	Error  string            `json:"error,omitempty"`
	Checks map[string]string `json:"checks"`
}

// Pinger pings external service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc is wrapper for raw func.
type PingFunc func(ctx context.Context) error

// Ping ...
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Check is a named Pinger.
type Check struct {
	Name   string
	Pinger Pinger
}

// NewCheck ...
func NewCheck(name string, p Pinger) Check {
	return Check{Name: name, Pinger: p}
}

// Status pings all checks concurrently and returns the first error with per-check results.
func Status(ctx context.Context, checks ...Check) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu  sync.Mutex
		res = make(map[string]string, len(checks))
	)

	gr := errgroup.Group{}
	for i := range checks {
		c := checks[i]
		gr.Go(func() error {
			err := c.Pinger.Ping(ctx)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				res[c.Name] = err.Error()
				return fmt.Errorf("%s: %w", c.Name, err)
			}
			res[c.Name] = "ok"

			return nil
		})
	}

	return res, gr.Wait()
}

// SetupRouter setups all checks to /health.
func SetupRouter(r chi.Router, checks ...Check) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		res, err := Status(r.Context(), checks...)

		resp := StatusResponse{
			VersionResponse: VersionResponse{Version: version, Commit: commit},
			Checks:          res,
		}

		if err != nil {
			logging.GetLogger(r.Context()).WithError(err).Error("health check failed")

			resp.Error = err.Error()
			api.WriteOK(w, http.StatusInternalServerError, resp)
			return
		}

		api.WriteOK(w, http.StatusOK, resp)
	})
}
