package mud

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ModuleRunner runs a module within the supervisor.
type ModuleRunner struct {
	Name string
	Run  func(ctx context.Context) error
}

// Supervisor manages module lifecycles.
type Supervisor struct {
	Logger *zap.Logger
}

// Run starts all module runners and waits until ctx ends or one fails. A
// failing module cancels the others.
func (s Supervisor) Run(ctx context.Context, modules []ModuleRunner) error {
	if len(modules) == 0 {
		return errors.New("no modules enabled")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range modules {
		g.Go(func() error {
			log := logger.With(zap.String("module", m.Name))
			log.Info("starting module")
			if err := m.Run(gctx); err != nil {
				log.Error("module exited", zap.Error(err))
				return fmt.Errorf("%s: %w", m.Name, err)
			}
			log.Info("module stopped")
			return nil
		})
	}

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		logger.Info("shutdown requested")
	}
	return err
}
