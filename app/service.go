// Package app wires the configuration into a ready-to-serve scheduling
// service.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/EngindalgaMaku/dersplan/api/schedule"
	"github.com/EngindalgaMaku/dersplan/config"
	"github.com/EngindalgaMaku/dersplan/core/engine"
	"github.com/EngindalgaMaku/dersplan/core/events"
	"github.com/EngindalgaMaku/dersplan/core/logger"
	"github.com/EngindalgaMaku/dersplan/infra/httpserver"
	infralogger "github.com/EngindalgaMaku/dersplan/infra/logger"
	"github.com/EngindalgaMaku/dersplan/internal/eventbus"
)

// Service holds the runner and its event bus for the serve mode.
type Service struct {
	Runner  *engine.Runner
	addr    string
	handler http.Handler
	bus     *eventbus.Bus
	log     logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")
	bus := eventbus.New()
	runner, err := engine.NewRunner(cfg.Engine, infralogger.New("engine"), engine.WithEventBus(bus))
	if err != nil {
		return nil, fmt.Errorf("engine runner: %w", err)
	}
	return &Service{
		Runner:  runner,
		addr:    cfg.HTTP.Addr,
		handler: schedule.NewHandler(runner, cfg.Grid.Days, cfg.Grid.Periods),
		bus:     bus,
		log:     logg,
	}, nil
}

// Run serves the HTTP API and logs run progress from the event bus until the
// context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	sub := s.bus.Subscribe()
	go s.logEvents(sub)
	return httpserver.Serve(ctx, s.addr, s.handler, s.log)
}

func (s *Service) logEvents(sub <-chan eventbus.Event) {
	for e := range sub {
		switch ev := e.(type) {
		case events.RunStartedEvent:
			s.log.Infof("run %s started with %d attempts", ev.RunID, ev.Attempts)
		case events.BestImprovedEvent:
			s.log.Debugf("run %s: attempt %d is new best (unassigned=%dh fitness=%.3f)",
				ev.RunID, ev.Index, ev.UnassignedHours, ev.FitnessScore)
		case events.RunFinishedEvent:
			s.log.Infof("run %s finished: success=%v attempts=%d", ev.RunID, ev.Success, ev.AttemptsMade)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
