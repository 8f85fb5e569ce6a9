package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pakt/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pakt/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pakt/internal/adapters/reporter" //nolint:depguard // Wired in app layer
	"go.trai.ch/pakt/internal/adapters/telemetry"
	"go.trai.ch/pakt/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the components node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components the CLI
// layer needs.
type Components struct {
	App      *App
	Logger   ports.Logger
	Reporter ports.Reporter
	Config   *config.Config
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			reporter.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			rep, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg, rep, log, tel), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			config.NodeID,
			logger.NodeID,
			reporter.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			rep, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log, Reporter: rep, Config: cfg}, nil
		},
	})
}
