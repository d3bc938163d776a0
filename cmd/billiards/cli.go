package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/riskibarqy/billiards-tracker/internal/app"
	"github.com/riskibarqy/billiards-tracker/internal/config"
	"github.com/riskibarqy/billiards-tracker/internal/interfaces/navigation"
	"github.com/riskibarqy/billiards-tracker/internal/observability"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

var (
	errLoginRequired   = errors.New("login required: run `billiards login <username> <password>`")
	errServiceDegraded = errors.New("account service unreachable, `billiards local` commands still work offline")
)

type containerBuilder func(ctx context.Context, cfg config.Config, logger *logging.Logger, out io.Writer) (*app.Container, error)

// cli owns the per-invocation container and its shutdown.
type cli struct {
	out    io.Writer
	errOut io.Writer

	loadConfig     func() (config.Config, error)
	buildContainer containerBuilder

	logger        *logging.Logger
	container     *app.Container
	shutdownTrace func(context.Context) error
}

func newCLI(out, errOut io.Writer) *cli {
	return &cli{
		out:        out,
		errOut:     errOut,
		loadConfig: config.Load,
		buildContainer: func(ctx context.Context, cfg config.Config, logger *logging.Logger, out io.Writer) (*app.Container, error) {
			return app.New(ctx, app.Options{Config: cfg, Logger: logger, Out: out})
		},
	}
}

func (c *cli) setup(ctx context.Context) error {
	if c.container != nil {
		return nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.logger = logging.NewJSON(cfg.LogLevel, c.errOut)
	logging.SetDefault(c.logger)

	shutdownTrace, err := observability.InitUptrace(cfg, c.logger.Named("observability"))
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	c.shutdownTrace = shutdownTrace

	container, err := c.buildContainer(ctx, cfg, c.logger, c.errOut)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	c.container = container
	return nil
}

func (c *cli) close() error {
	var errs []error
	if c.container != nil {
		if err := c.container.Close(); err != nil {
			errs = append(errs, err)
		}
		c.container = nil
	}
	if c.shutdownTrace != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := c.shutdownTrace(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
		cancel()
		c.shutdownTrace = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return errors.Join(errs...)
}

// enterPage runs the guarded navigation for page. A blocked page reports
// errLoginRequired after the guard has redirected to the login page.
func (c *cli) enterPage(ctx context.Context, page string) error {
	nav := c.container.Guard.Wrap(c.container.Navigator)
	if err := nav.NavigateTo(ctx, page); err != nil {
		if errors.Is(err, navigation.ErrRedirectedToLogin) {
			return errLoginRequired
		}
		return err
	}
	return nil
}

// explain turns use case failures into what the user can do about them.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errLoginRequired):
		return err
	case errors.Is(err, usecase.ErrUnauthorized):
		return errLoginRequired
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return fmt.Errorf("%w: %w", errServiceDegraded, err)
	default:
		return err
	}
}
