package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	infraPostgres "github.com/architeacher/gadgets/internal/infrastructure/postgres"
)

type ServiceCtx struct {
	deps            *dependencies
	dependencyOpts  []DependencyOption
	shutdownChannel chan os.Signal
	serverCtx       context.Context
	serverStopFunc  context.CancelFunc
	serverReady     chan struct{}
	serverErrors    chan error
}

func New(opts ...ServiceOption) *ServiceCtx {
	ctx := &ServiceCtx{
		shutdownChannel: make(chan os.Signal, 1),
		serverErrors:    make(chan error, 1),
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

// Run serves until a termination signal arrives or the server fails.
func (c *ServiceCtx) Run() error {
	if err := c.build(); err != nil {
		return fmt.Errorf("failed to build service: %w", err)
	}

	if err := c.startService(); err != nil {
		c.serverStopFunc()
		c.cleanup(context.Background())

		return err
	}

	c.shutdownHook()
	c.monitorConfigChanges()

	serveErr := c.awaitShutdown()

	c.shutdown()

	return serveErr
}

// awaitShutdown blocks until the server context ends, the server fails or a
// termination signal arrives. Signal delivery is stopped before the channel
// is closed.
func (c *ServiceCtx) awaitShutdown() error {
	var (
		serveErr error
		signaled bool
	)

	select {
	case <-c.serverCtx.Done():
	case serveErr = <-c.serverErrors:
	case <-c.shutdownChannel:
		signaled = true
	}

	signal.Stop(c.shutdownChannel)

	if signaled {
		close(c.shutdownChannel)
	}

	return serveErr
}

func (c *ServiceCtx) build() error {
	c.serverCtx, c.serverStopFunc = context.WithCancel(context.Background())

	var err error

	c.deps, err = initializeDependencies(append(defaultOptions(c.serverCtx), c.dependencyOpts...)...)
	if err != nil {
		return fmt.Errorf("initializing dependencies: %w", err)
	}

	return nil
}

func (c *ServiceCtx) startService() error {
	addr := c.deps.infra.httpServer.Addr

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	c.deps.infra.logger.Info().
		Str("address", listener.Addr().String()).
		Msg("starting the http server")

	go func() {
		if err := c.deps.infra.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.serverErrors <- fmt.Errorf("http server error: %w", err)
		}
	}()

	if c.serverReady != nil {
		close(c.serverReady)
	}

	return nil
}

func (c *ServiceCtx) monitorConfigChanges() {
	if c.deps.configLoader == nil {
		return
	}

	reloadErrors := c.deps.configLoader.WatchConfigSignals(c.serverCtx)
	go func() {
		for err := range reloadErrors {
			if err != nil {
				c.deps.infra.logger.Error().Err(err).Msg("config reload failed")
			} else {
				c.deps.infra.logger.Info().Msg("config reloaded successfully")
			}
		}
	}()
}

func (c *ServiceCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *ServiceCtx) shutdown() {
	c.deps.infra.logger.Info().Msg("shutting down service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.deps.config.HTTPServer.ShutdownTimeout)
	defer cancel()

	go func() {
		<-shutdownCtx.Done()

		if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
			c.deps.infra.logger.Error().Msg("graceful shutdown timed out.. forcing exit.")
			os.Exit(1)
		}
	}()

	if err := c.deps.infra.httpServer.Shutdown(shutdownCtx); err != nil {
		c.deps.infra.logger.Error().Err(err).Msg("failed to stop the http server gracefully")
	}

	// Cancel context that underlying processes would start cleanup.
	c.serverStopFunc()

	c.cleanup(shutdownCtx)

	c.deps.infra.logger.Info().Msg("service shutdown complete")
}

// WaitForServer blocks until the http server is accepting connections.
// The service has to be created with WithWaitingForServer.
//
// Example:
//
//	srv := runtime.New(runtime.WithWaitingForServer())
//	go func() {
//		_ = srv.Run()
//	}()
//
//	srv.WaitForServer()
func (c *ServiceCtx) WaitForServer() {
	if c.serverReady != nil {
		<-c.serverReady
	}
}

func (c *ServiceCtx) cleanup(shutdownCtx context.Context) {
	c.deps.infra.logger.Info().Msg("cleaning up resources...")

	for resource, cleanupFn := range c.deps.cleanupFuncs {
		if err := cleanupFn(shutdownCtx); err != nil {
			c.deps.infra.logger.Error().
				Err(err).
				Str("resource", resource).
				Msg("failed to shutdown the resource gracefully")
		}
	}

	c.deps.infra.logger.Info().Msg("cleanup completed")
}

// Migrate applies pending schema migrations and returns their versions.
func Migrate(ctx context.Context, opts ...DependencyOption) ([]string, error) {
	deps, err := initializeDependencies(append(migrationOptions(ctx), opts...)...)
	if err != nil {
		return nil, fmt.Errorf("initializing dependencies: %w", err)
	}

	defer func() {
		for _, cleanupFn := range deps.cleanupFuncs {
			_ = cleanupFn(ctx)
		}
	}()

	applied, err := infraPostgres.Migrate(ctx, deps.infra.dbPool, deps.infra.logger)
	if err != nil {
		return applied, fmt.Errorf("migrating database: %w", err)
	}

	return applied, nil
}
