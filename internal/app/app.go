package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/riskibarqy/billiards-tracker/internal/config"
	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/billiardsapi"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/netstate"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/repository/keyvalue"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/sessioncache"
	"github.com/riskibarqy/billiards-tracker/internal/interfaces/navigation"
	"github.com/riskibarqy/billiards-tracker/internal/platform/kv"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
	"github.com/riskibarqy/billiards-tracker/internal/platform/notify"
	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

// Options overrides pieces of the container, mostly for tests.
type Options struct {
	Config       config.Config
	Logger       *logging.Logger
	Out          io.Writer
	Notifier     notify.Notifier
	Store        kv.Store
	HTTPClient   *http.Client
	Connectivity usecase.ConnectivitySource
}

// Container holds the wired account layer for one CLI process.
type Container struct {
	Config    config.Config
	Logger    *logging.Logger
	Registry  *prometheus.Registry
	Store     kv.Store
	API       *billiardsapi.Client
	Jar       *billiardsapi.PersistentJar
	Sessions  *usecase.SessionService
	Monitor   *usecase.NetworkMonitor
	Poller    *netstate.Poller
	Navigator *navigation.ConsoleNavigator
	Guard     *navigation.Guard
	Accounts  *usecase.AccountStore

	unauthenticated func(context.Context, error)
	db              *sqlx.DB
}

func New(ctx context.Context, opts Options) (*Container, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewConsole(nil)
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Registry:  prometheus.NewRegistry(),
		Navigator: navigation.NewConsoleNavigator(opts.Out),
	}
	c.Registry.MustRegister(collectors.NewGoCollector())

	if err := c.build(ctx, opts, notifier); err != nil {
		if closeErr := c.Close(); closeErr != nil {
			logger.WarnContext(ctx, "close partially built container", "error", closeErr)
		}
		return nil, err
	}
	return c, nil
}

func (c *Container) build(ctx context.Context, opts Options, notifier notify.Notifier) error {
	cfg := c.Config

	store := opts.Store
	if store == nil {
		opened, err := OpenStore(ctx, cfg, c.Logger.Named("kv"))
		if err != nil {
			return err
		}
		store = opened
	}
	c.Store = store

	pool, err := billiardsapi.NewEndpointPool(cfg.APIBaseURLs)
	if err != nil {
		return fmt.Errorf("build endpoint pool: %w", err)
	}

	jar, err := billiardsapi.NewPersistentJar(ctx, store, c.Logger.Named("cookies"))
	if err != nil {
		return fmt.Errorf("load session cookies: %w", err)
	}
	c.Jar = jar

	client, err := billiardsapi.NewClient(billiardsapi.ClientConfig{
		HTTPClient:        opts.HTTPClient,
		Timeout:           cfg.HTTPTimeout,
		Pool:              pool,
		Jar:               jar,
		ProbeTimeout:      cfg.ProbeTimeout,
		Freshness:         cfg.ConnectionFreshness,
		ProbeWait:         cfg.ProbeWait,
		Notifier:          notifier,
		OnUnauthenticated: c.handleUnauthenticated,
		Metrics:           billiardsapi.NewMetrics(c.Registry),
		Logger:            c.Logger.Named("billiardsapi"),
	})
	if err != nil {
		return fmt.Errorf("build account api client: %w", err)
	}
	c.API = client

	cache, err := sessioncache.Load(ctx, store, c.Logger.Named("sessioncache"))
	if err != nil {
		return fmt.Errorf("load session cache: %w", err)
	}
	c.Sessions = usecase.NewSessionService(client, cache, jar, c.Logger.Named("session"))

	c.Guard = navigation.NewGuard(c.Sessions, c.Navigator, navigation.GuardConfig{Logger: c.Logger.Named("navigation")})
	c.unauthenticated = c.Guard.UnauthenticatedHandler(c.Navigator.Current)

	source := opts.Connectivity
	if source == nil {
		c.Poller = netstate.NewPoller(netstate.PollerConfig{
			Interval:  cfg.NetworkPollInterval,
			ProbeAddr: cfg.NetworkProbeAddr,
			Logger:    c.Logger.Named("netstate"),
		})
		source = c.Poller
	}
	c.Monitor = usecase.NewNetworkMonitor(source, client, c.Sessions, usecase.NetworkMonitorConfig{
		SettleDelay:     cfg.ReconnectSettle,
		SupersedeWindow: cfg.ReconnectSupersede,
		Notifier:        notifier,
		Logger:          c.Logger.Named("network"),
	})

	repo, err := c.openRecords(ctx, store)
	if err != nil {
		return err
	}
	localCache, err := sessioncache.LoadKey(ctx, store, sessioncache.LocalKey, c.Logger.Named("sessioncache"))
	if err != nil {
		return fmt.Errorf("load local session cache: %w", err)
	}
	c.Accounts = usecase.NewAccountStore(repo, localCache, c.Logger.Named("accounts"))

	return nil
}

func (c *Container) openRecords(ctx context.Context, store kv.Store) (user.Repository, error) {
	switch c.Config.RecordBackend {
	case config.RecordBackendPostgres:
		db, err := OpenDatabase(ctx, c.Config.DBURL, c.Logger.Named("db"))
		if err != nil {
			return nil, err
		}
		c.db = db
		return postgres.NewUserRepository(db), nil
	case config.RecordBackendMemory:
		return memory.NewUserRepository(nil), nil
	default:
		return keyvalue.NewUserRepository(store), nil
	}
}

// StartWatching begins connectivity sampling and reconnect handling.
func (c *Container) StartWatching(ctx context.Context) {
	if c.Poller != nil {
		c.Poller.Start(ctx)
	}
	c.Monitor.Init(ctx)
}

func (c *Container) handleUnauthenticated(ctx context.Context, err error) {
	if c.unauthenticated != nil {
		c.unauthenticated(ctx, err)
	}
}

// Close stops background work and releases storage. It is safe on a partially
// built container.
func (c *Container) Close() error {
	if c.Monitor != nil {
		c.Monitor.Close()
	}
	if c.Poller != nil {
		c.Poller.Stop()
	}
	if c.API != nil {
		c.API.Close()
	}

	var errs []error
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}
