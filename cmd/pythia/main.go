package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/subosito/gotenv"
	"golang.org/x/sync/errgroup"

	"github.com/fanbase-labs/pythia/internal/account"
	"github.com/fanbase-labs/pythia/internal/chain/sui"
	"github.com/fanbase-labs/pythia/internal/feed"
	"github.com/fanbase-labs/pythia/internal/health"
	mm "github.com/fanbase-labs/pythia/internal/middleware"
	"github.com/fanbase-labs/pythia/internal/middleware/memory"
	"github.com/fanbase-labs/pythia/internal/middleware/valkey"
	"github.com/fanbase-labs/pythia/internal/projector"
	"github.com/fanbase-labs/pythia/internal/server"
	"github.com/fanbase-labs/pythia/internal/txscan"
)

// nolint:lll,gochecknoglobals
var opts = struct {
	Host           string        `long:"http.host" env:"HTTP_HOST" default:"0.0.0.0" description:"IP to listen on"`
	Port           int           `long:"http.port" env:"HTTP_PORT" default:"8080" description:"port to listen on"`
	RequestTimeout time.Duration `long:"http.request_timeout" env:"HTTP_REQUEST_TIMEOUT" default:"45s" description:"request processing timeout"`

	ChainNode    string        `long:"chain.node" env:"CHAIN_NODE" default:"https://fullnode.testnet.sui.io:443" description:"sui json-rpc node url"`
	ChainTimeout time.Duration `long:"chain.timeout" env:"CHAIN_TIMEOUT" default:"10s" description:"timeout for requests to the chain node"`
	Contract     string        `long:"chain.contract" env:"CHAIN_CONTRACT" required:"true" description:"platform package id"`

	ScanPageSize int `long:"scan.page_size" env:"SCAN_PAGE_SIZE" default:"100" description:"transaction history page size"`
	ScanMaxPages int `long:"scan.max_pages" env:"SCAN_MAX_PAGES" default:"5" description:"transaction history page cap"`

	CacheTTL            time.Duration `long:"cache.ttl" env:"CACHE_TTL" default:"1m" description:"response cache ttl"`
	CacheValkey         string        `long:"cache.valkey" env:"CACHE_VALKEY" description:"valkey address, in-memory cache is used when empty"`
	CacheValkeyPassword string        `long:"cache.valkey_password" env:"CACHE_VALKEY_PASSWORD" description:"valkey password"`

	LogLevel  string `long:"log.level" env:"LOG_LEVEL" default:"info" description:"Log level" choice:"debug" choice:"info" choice:"warning" choice:"error"`
	SentryDSN string `long:"sentry.dsn" env:"SENTRY_DSN" description:"sentry dsn"`
}{}

var errTerminated = errors.New("terminated")

func main() {
	_ = gotenv.Load()

	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "Pythia"
	parser.LongDescription = "Pythia"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	lvl, _ := logrus.ParseLevel(opts.LogLevel) // err will always be nil
	logrus.SetLevel(lvl)

	logrus.Info("service started")
	logrus.Infof("%+v", opts)

	if opts.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              opts.SentryDSN,
			AttachStacktrace: true,
			Release:          health.GetVersion(),
			ServerName:       "pythia",
		}); err != nil {
			logrus.WithError(err).Fatal("failed to init sentry")
		}
		defer sentry.Flush(2 * time.Second)

		logrus.AddHook(sentryHook{})
	} else {
		logrus.Info("empty sentry dsn")
		logrus.Warn("skip sentry initialization")
	}

	chainClient := sui.New(opts.ChainNode, opts.ChainTimeout)
	scanner := txscan.New(chainClient, txscan.Config{
		Contract: opts.Contract,
		PageSize: opts.ScanPageSize,
		MaxPages: opts.ScanMaxPages,
	})

	cache := mustGetCacheStorage()

	r := chi.NewMux()
	r.Get("/health", health.Handler(
		5*time.Second,
		chainClient,
	))
	server.SetupRouter(
		projector.New(chainClient),
		account.New(chainClient, scanner, opts.Contract),
		feed.New(chainClient, scanner),
		cache, opts.CacheTTL,
		r, opts.RequestTimeout,
	)

	srv := http.Server{
		Addr:    fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler: r,
	}

	ctx, cancel := context.WithCancel(context.Background())

	gr, _ := errgroup.WithContext(ctx)
	gr.Go(srv.ListenAndServe)
	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

		select {
		case s := <-sigs:
			logrus.Infof("terminating by %s signal", s)
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("failed to shutdown server gracefully")
		}

		cancel()

		return errTerminated
	})

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) {
		logrus.WithError(err).Fatal("service unexpectedly closed")
	}
}

func mustGetCacheStorage() mm.Storage {
	if opts.CacheValkey == "" {
		logrus.Info("using in-memory response cache")
		return memory.NewStorage()
	}

	s, err := valkey.NewStorage(opts.CacheValkey, opts.CacheValkeyPassword)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to valkey")
	}

	return s
}

// sentryHook forwards error-level entries to sentry.
type sentryHook struct{}

func (sentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

func (sentryHook) Fire(e *logrus.Entry) error {
	ev := sentry.NewEvent()
	ev.Level = sentry.LevelError
	ev.Message = e.Message

	for k, v := range e.Data {
		if err, ok := v.(error); ok {
			ev.Extra[k] = err.Error()
			continue
		}
		ev.Extra[k] = v
	}

	sentry.CaptureEvent(ev)

	return nil
}
