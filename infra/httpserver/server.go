// Package httpserver serves the scheduling API together with the prometheus
// metrics endpoint.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/EngindalgaMaku/dersplan/core/logger"
)

// Serve runs the HTTP server on addr until the context is canceled. It mounts
// the schedule handler at POST /api/schedule and GET /metrics on a dedicated
// mux.
func Serve(ctx context.Context, addr string, scheduleHandler http.Handler, log logger.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/api/schedule", scheduleHandler)
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("http server shutdown: %v", err)
		}
	}()
	log.Infof("http server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
