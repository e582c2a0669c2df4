// Command kuksa-shell is an interactive client for a KUKSA databroker.
//
// It speaks any of the supported protocol generations through one command
// set, so the same session works against kuksa.val.v2, kuksa.val.v1 and
// sdv.databroker.v1 brokers.
//
// Usage:
//
//	kuksa-shell [flags] [command...]
//
// Flags:
//
//	-config string      YAML client profile
//	-endpoint string    Broker address, or mdns:///_kuksa._tcp (default "127.0.0.1:55555")
//	-generation string  Protocol generation: v2, v1 or sdv (default "v2")
//	-token-file string  File holding the bearer token
//	-calllog string     Write a binary call log to this file
//	-log-level string   Log level: debug, info, warn, error
//	-metrics string     Serve Prometheus metrics on this address
//
// Flags override the values loaded from -config. When a command is given
// on the command line it is run once and the shell exits.
//
// Interactive commands:
//
//	get <path>...           - Read current values
//	target <path>...        - Read target values
//	set <path> <value>      - Publish a current value
//	actuate <path> <value>  - Request a target value
//	meta <path>...          - Show signal metadata
//	subscribe <path>...     - Print current value updates
//	forward <path>...       - Forward updates to the profile's sinks
//	unsubscribe <id>        - Stop a subscription or forward
//	info                    - Show connection details
//	help                    - Show help
//	quit                    - Exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kuksa-sdk/kuksa-go/cmd/kuksa-shell/interactive"
	"github.com/kuksa-sdk/kuksa-go/pkg/config"
	"github.com/kuksa-sdk/kuksa-go/pkg/forward"
	"github.com/kuksa-sdk/kuksa-go/pkg/kuksa"
	"github.com/kuksa-sdk/kuksa-go/pkg/metrics"
)

// Flags holds the command-line flags.
type Flags struct {
	ConfigFile string
	Endpoint   string
	Generation string
	TokenFile  string
	CallLog    string
	LogLevel   string
	Metrics    string
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "YAML client profile")
	flag.StringVar(&flags.Endpoint, "endpoint", "", "Broker address (overrides config)")
	flag.StringVar(&flags.Generation, "generation", "", "Protocol generation: v2, v1 or sdv (overrides config)")
	flag.StringVar(&flags.TokenFile, "token-file", "", "File holding the bearer token")
	flag.StringVar(&flags.CallLog, "calllog", "", "Write a binary call log to this file")
	flag.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.Metrics, "metrics", "", "Serve Prometheus metrics on this address")
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cancel, cfg, logger, flag.Args()); err != nil {
		logger.Error("kuksa-shell failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the profile, if any, and applies the flag overrides.
func loadConfig(f Flags) (*config.Config, error) {
	cfg := config.Default()
	if f.ConfigFile != "" {
		loaded, err := config.Load(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.Generation != "" {
		cfg.Generation = f.Generation
	}
	if f.TokenFile != "" {
		cfg.Token = ""
		cfg.TokenFile = f.TokenFile
	}
	if f.CallLog != "" {
		cfg.CallLog = f.CallLog
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.Metrics != "" {
		cfg.MetricsListen = f.Metrics
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, logger *slog.Logger, args []string) error {
	cc, closeLog, err := cfg.ChannelConfig(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			logger.Warn("closing call log", "error", err)
		}
	}()

	var m *metrics.Metrics
	if cfg.MetricsListen != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		cc.Metrics = m
		srv := serveMetrics(cfg.MetricsListen, reg, logger)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	client, closeClient, err := kuksa.NewUnified(cfg.Gen(), cc)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeClient(); err != nil {
			logger.Warn("closing client", "error", err)
		}
	}()

	opts := interactive.Options{
		Endpoint: cfg.Endpoint,
		Metrics:  m,
		Logger:   logger,
		Out:      os.Stdout,
	}
	if cfg.Forward.Enabled() {
		fc := cfg.Forward
		opts.OpenSinks = func(ctx context.Context) ([]forward.Sink, error) {
			return fc.Open(ctx)
		}
	}
	sh := interactive.New(client, opts)

	if len(args) > 0 {
		sh.Exec(ctx, strings.Join(args, " "))
		return nil
	}

	if err := sh.Attach(); err != nil {
		return err
	}
	// Route log output through readline so it does not break the prompt.
	logger = slog.New(slog.NewTextHandler(sh.Stdout(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	sh.SetLogger(logger)

	fmt.Fprintf(sh.Stdout(), "KUKSA Shell (%s at %s)\n", cfg.Gen(), cfg.Endpoint)
	go sh.Run(ctx, cancel)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
	case <-ctx.Done():
	}

	cancel()
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}
