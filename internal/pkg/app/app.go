package app

import (
	"chatkeywords/internal/app/adapters/extractor"
	"chatkeywords/internal/app/adapters/fetcher"
	router "chatkeywords/internal/app/adapters/http"
	"chatkeywords/internal/app/adapters/metrics"
	"chatkeywords/internal/app/adapters/scraper"
	"chatkeywords/internal/app/adapters/session"
	"chatkeywords/internal/app/infrastructure/config"
	"chatkeywords/internal/app/infrastructure/storage"
	"chatkeywords/pkg/logger"
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/proxy"
	"net"
	"net/http"
	"time"
)

const ConfigPath = "config.json"

// New runs the HTTP service until ctx is canceled.
func New(ctx context.Context) error {
	log := logger.New()

	manager, err := config.New(ConfigPath)
	if err != nil {
		log.Error("Error loading config", err)
		return err
	}

	cfg := manager.Get()
	if err := log.SetLogLevel(cfg.App.LogLevel); err != nil {
		log.Error("Error setting log level", err)
		return err
	}

	prometheus.MustRegister(metrics.FetchDuration)

	sc, err := NewScraper(log, cfg)
	if err != nil {
		log.Error("Error creating scraper", err)
		return err
	}

	kv, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		log.Error("Error opening storage", err, "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Error("Error closing storage", err)
		}
	}()

	sess := session.New(log.Named("session"), kv, sc, session.WithFetchMode(cfg.Session.FetchMode))

	r := router.NewRouter(log.Named("http"), manager, sc, sess)
	return r.Run(ctx)
}

// NewScraper wires the fetch pipeline used by both the service and the CLI.
func NewScraper(log logger.Logger, cfg *config.Config) (*scraper.Scraper, error) {
	client, err := NewHTTPClient(cfg)
	if err != nil {
		return nil, err
	}

	f := fetcher.New(log.Named("fetcher"), client, fetcher.WithUserAgent(cfg.Fetch.UserAgent))

	stripchat := extractor.NewStripchat()
	ex := extractor.New(log.Named("extractor"), stripchat, stripchat)

	return scraper.New(log.Named("scraper"), f, ex), nil
}

func NewHTTPClient(cfg *config.Config) (*http.Client, error) {
	client := &http.Client{
		Timeout:   cfg.Fetch.Timeout.Std(),
		Transport: http.DefaultTransport,
	}

	if cfg.Proxy != nil && cfg.Proxy.Address != "" && cfg.Proxy.Port != 0 {
		dialer, err := proxy.SOCKS5("tcp", fmt.Sprintf("%s:%d", cfg.Proxy.Address, cfg.Proxy.Port), nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy: %w", err)
		}

		client.Transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				if cd, ok := dialer.(proxy.ContextDialer); ok {
					return cd.DialContext(ctx, network, addr)
				}
				return dialer.Dial(network, addr)
			},
			TLSHandshakeTimeout: 10 * time.Second,
			IdleConnTimeout:     90 * time.Second,
		}
	}

	return client, nil
}
