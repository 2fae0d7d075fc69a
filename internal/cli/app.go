package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/mmr-tortoise/emojimix/internal/catalog"
	"github.com/mmr-tortoise/emojimix/internal/config"
	"github.com/mmr-tortoise/emojimix/internal/host"
	"github.com/mmr-tortoise/emojimix/internal/mixer"
	"github.com/mmr-tortoise/emojimix/internal/model"
	"github.com/mmr-tortoise/emojimix/internal/probe"
)

// app holds everything a command needs to resolve mixes. It is built once
// per invocation from the effective configuration.
type app struct {
	cfg       *config.Config
	source    string
	gen       *catalog.Generator
	transport *http.Transport
	prober    *probe.Prober
	logger    *zap.Logger
}

// loadConfig resolves the configuration file (flag, then working
// directory) and loads it. Any failure is an ExitConfigError.
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, ok := config.Locate(wd); ok {
				path = found
			}
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			return nil, "", cliErr
		}
		msg := "invalid configuration"
		if model.IsTemplateError(err) {
			msg = "invalid URL template"
		}
		return nil, "", model.WrapCLIError(model.ExitConfigError, msg, err)
	}

	if path == "" {
		path = "(defaults)"
	}
	return cfg, path, nil
}

// newApp loads the configuration and wires the generator, the HTTP
// client and the prober.
func newApp() (*app, error) {
	cfg, source, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", zap.String("source", source))

	gen, err := cfg.NewGenerator()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid configuration", err)
	}

	// One pooled transport per process, shared by every check.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = cfg.Probe.Concurrency + 1
	client := &http.Client{
		Transport: transport,
		// A redirect to an error page must not count as a hit.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	prober := probe.New(client,
		probe.WithTimeout(cfg.RequestTimeout.Std()),
		probe.WithConcurrency(cfg.Probe.Concurrency),
		probe.WithOverallDeadline(cfg.Probe.OverallTimeout.Std()),
		probe.WithUserAgent(cfg.Probe.UserAgent),
		probe.WithLogger(logger),
	)
	logger.Debug("prober ready",
		zap.Int("revisions", len(gen.Revisions())),
		zap.Duration("request_timeout", prober.Timeout()),
		zap.Int("concurrency", prober.Concurrency()),
	)

	return &app{
		cfg:       cfg,
		source:    source,
		gen:       gen,
		transport: transport,
		prober:    prober,
		logger:    logger,
	}, nil
}

// resolver builds a Resolver with the given per-invocation options.
func (a *app) resolver(opts mixer.Options) (*mixer.Resolver, error) {
	r, err := mixer.New(opts, a.gen, a.prober, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	return r, nil
}

// responder builds the chat Responder from the configuration.
func (a *app) responder(r host.Resolver) *host.Responder {
	return host.NewResponder(r, host.Options{
		CommandNames: a.cfg.Command.Names,
		Prefixes:     a.cfg.Command.Prefixes,
		AutoTrigger:  a.cfg.AutoTrigger,
		Locale:       a.cfg.Locale,
		OnClose:      a.transport.CloseIdleConnections,
	}, a.logger)
}

// close releases idle HTTP connections.
func (a *app) close() {
	a.transport.CloseIdleConnections()
}
