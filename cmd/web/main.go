package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/diva3322/SSBuy-web/internal/carousel"
	"github.com/diva3322/SSBuy-web/internal/catalog"
	"github.com/diva3322/SSBuy-web/internal/config"
	"github.com/diva3322/SSBuy-web/internal/content"
	"github.com/diva3322/SSBuy-web/internal/handlers"
	"github.com/diva3322/SSBuy-web/internal/i18n"
	"github.com/diva3322/SSBuy-web/internal/middleware"
	"github.com/diva3322/SSBuy-web/internal/observability"
)

func main() {
	var (
		addr    string
		siteDir string
		envFile string
	)
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides SSBUY_SERVER_ADDR)")
	flag.StringVar(&siteDir, "site", "", "static site directory (overrides SSBUY_SITE_DIR)")
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(ctx, config.WithEnvFile(envFile), config.WithEnvMap(flagOverrides(addr, siteDir)))
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", verr.Fields())
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("web")
	ctx = observability.WithLogger(ctx, logger)

	store := catalog.NewStore(catalogSource(cfg.Catalog), catalog.WithCacheTTL(cfg.Catalog.CacheTTL))
	registry := carousel.NewRegistry(
		carousel.WithTTL(cfg.Carousel.BoardTTL),
		carousel.WithMaxBoards(cfg.Carousel.MaxBoards),
	)
	bundle := i18n.Default()
	renderer := content.New()

	sweepCtx, sweepCancel := context.WithCancel(ctx)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		registry.Run(sweepCtx, cfg.Carousel.SweepInterval)
	}()

	carouselHandlers := handlers.NewCarouselHandlers(store, registry, bundle)
	gameHandlers := handlers.NewGameHandlers(store, renderer, bundle)
	giftCodeHandlers := handlers.NewGiftCodeHandlers(store, renderer, bundle)
	checkoutHandlers := handlers.NewCheckoutHandlers(store, bundle)
	metaHandlers := handlers.NewMetaHandlers(store)
	healthHandlers := handlers.NewHealthHandlers(func(ctx context.Context) error {
		_, err := store.Games(ctx)
		return err
	})

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(),
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithAPIRoutes(
			carouselHandlers.Routes,
			gameHandlers.Routes,
			giftCodeHandlers.Routes,
			checkoutHandlers.Routes,
			metaHandlers.Routes,
		),
		handlers.WithStatic(middleware.StaticSite(cfg.Site.Dir, middleware.StaticOptions{MaxAge: cfg.Site.StaticMaxAge})),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(
		zap.String("addr", server.Addr),
		zap.String("site_dir", cfg.Site.Dir),
		zap.Bool("remote_catalog", cfg.Catalog.URL != ""),
	)
	go func() {
		serverLogger.Info("ssbuy web listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	sweepCancel()
	<-sweepDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func catalogSource(cfg config.CatalogConfig) catalog.Source {
	if u := strings.TrimSpace(cfg.URL); u != "" {
		return catalog.NewHTTPSource(u)
	}
	return catalog.FileSource{Dir: cfg.Dir}
}

func flagOverrides(addr, siteDir string) map[string]string {
	values := map[string]string{}
	if addr = strings.TrimSpace(addr); addr != "" {
		values["SSBUY_SERVER_ADDR"] = addr
	}
	if siteDir = strings.TrimSpace(siteDir); siteDir != "" {
		values["SSBUY_SITE_DIR"] = siteDir
	}
	return values
}
