package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
	cartapp "github.com/dwikikusuma/shoping-storefront/internal/cart/app"
	cartadapter "github.com/dwikikusuma/shoping-storefront/internal/cart/infra/adapter"
	carthttp "github.com/dwikikusuma/shoping-storefront/internal/cart/http"
	catalogapp "github.com/dwikikusuma/shoping-storefront/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/shoping-storefront/internal/catalog/http"
	catalogremote "github.com/dwikikusuma/shoping-storefront/internal/catalog/infra/remote"
	checkoutapp "github.com/dwikikusuma/shoping-storefront/internal/checkout/app"
	checkoutdomain "github.com/dwikikusuma/shoping-storefront/internal/checkout/domain"
	checkouthttp "github.com/dwikikusuma/shoping-storefront/internal/checkout/http"
	checkoutadapter "github.com/dwikikusuma/shoping-storefront/internal/checkout/infra/adapter"
	orderapp "github.com/dwikikusuma/shoping-storefront/internal/order/app"
	orderhttp "github.com/dwikikusuma/shoping-storefront/internal/order/http"
	orderremote "github.com/dwikikusuma/shoping-storefront/internal/order/infra/remote"
	profileapp "github.com/dwikikusuma/shoping-storefront/internal/profile/app"
	profilehttp "github.com/dwikikusuma/shoping-storefront/internal/profile/http"
	profileremote "github.com/dwikikusuma/shoping-storefront/internal/profile/infra/remote"
	"github.com/dwikikusuma/shoping-storefront/internal/session"
	"github.com/dwikikusuma/shoping-storefront/pkg/config"
	"github.com/dwikikusuma/shoping-storefront/pkg/httpx"
	"github.com/dwikikusuma/shoping-storefront/pkg/logger"
	"github.com/dwikikusuma/shoping-storefront/pkg/shutdown"
	"github.com/dwikikusuma/shoping-storefront/pkg/telemetry"
)

const serviceName = "storefront"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   serviceName,
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var traceOut io.Writer
	if cfg.AppEnv == "dev" {
		traceOut = os.Stdout
	}
	stopTracing, err := telemetry.Init(ctx, log, telemetry.Options{
		Enabled:     cfg.OTelEnabled,
		ServiceName: serviceName,
		Env:         cfg.AppEnv,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		SampleRatio: cfg.OTelSampleRatio,
		Stdout:      traceOut,
	})
	if err != nil {
		log.Error("tracing init failed", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := rest.NewClient(rest.Config{
		BaseURL:            cfg.BackendURL,
		Timeout:            cfg.BackendTimeout,
		BreakerMaxFailures: cfg.BreakerMaxFailures,
		BreakerOpenTimeout: cfg.BreakerOpenTimeout,
	}, log)
	if err != nil {
		log.Error("backend client init failed", slog.Any("err", err))
		os.Exit(1)
	}
	backend := rest.NewBackend(client)

	storage, err := openCartStorage(ctx, cfg, log)
	if err != nil {
		log.Error("cart storage init failed", slog.Any("err", err), slog.String("store", cfg.CartStore))
		os.Exit(1)
	}
	log.Info("cart storage ready", slog.String("store", cfg.CartStore))

	// Catalog
	catalogSvc := catalogapp.NewService(catalogremote.NewProductRepo(backend))

	// Cart
	carts := cartapp.NewRegistry(storage.persister, log)

	// Orders and profile
	orderSvc := orderapp.NewService(orderremote.NewOrderRepo(backend))
	profileSvc := profileapp.NewService(profileremote.NewClientRepo(backend), orderSvc)

	// Checkout (adapters)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartRegistryReader(carts),
		checkoutadapter.NewRestBackend(backend),
		cfg.TaxRate,
		cfg.OrderLineConcurrency,
		log,
	)
	checkoutSvc.OnTransition = func(sessionID string, t checkoutdomain.Transition) {
		log.Debug("checkout transition",
			slog.String("session", sessionID),
			slog.String("from", t.From.String()),
			slog.String("to", t.To.String()),
		)
	}

	router := newRouter(cfg, log, routes{
		catalog:  cataloghttp.NewHandler(catalogSvc, log),
		cart:     carthttp.NewHandler(carts, cartadapter.NewCatalogServiceReader(catalogSvc), log, cfg.BackendTimeout),
		checkout: checkouthttp.NewHandler(checkoutSvc, log),
		profile:  profilehttp.NewHandler(profileSvc, log),
		orders:   orderhttp.NewHandler(orderSvc, log),
		ready:    storage.ready,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		os.Exit(1)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("grpc health starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc serve error", slog.Any("err", err))
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		maintain(ctx, carts, storage, cfg.CartIdle, log)
	}()

	<-ctx.Done()
	log.Info("shutdown requested")
	healthServer.Shutdown()

	err = shutdown.Run(10*time.Second,
		shutdown.Step{Name: "http", Stop: server.Shutdown},
		shutdown.Step{Name: "grpc", Stop: func(ctx context.Context) error {
			stopped := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-ctx.Done():
				log.Warn("graceful stop timeout, forcing stop")
				grpcServer.Stop()
			case <-stopped:
			}
			return nil
		}},
		shutdown.Step{Name: "cart storage", Stop: storage.close},
		shutdown.Step{Name: "tracing", Stop: stopTracing},
	)
	if err != nil {
		log.Error("shutdown incomplete", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

type routes struct {
	catalog  *cataloghttp.Handler
	cart     *carthttp.Handler
	checkout *checkouthttp.Handler
	profile  *profilehttp.Handler
	orders   *orderhttp.Handler
	ready    func(ctx context.Context) error
}

func newRouter(cfg config.Config, log *slog.Logger, h routes) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// checkout issues several sequential backend calls
	r.Use(middleware.Timeout(4 * cfg.BackendTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := h.ready(r.Context()); err != nil {
			log.Warn("not ready", slog.Any("err", err))
			httpx.RespondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "cart storage is not reachable")
			return
		}
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		h.catalog.Routes(r)

		r.Group(func(r chi.Router) {
			r.Use(session.Middleware)
			r.Route("/cart", h.cart.Routes)
			r.Route("/checkout", h.checkout.Routes)
		})

		r.Route("/clients", func(r chi.Router) {
			h.profile.Routes(r)
			r.Route("/{clientID}/orders", h.orders.Routes)
			r.Get("/{clientID}/bills", h.orders.ListBills)
		})
	})

	return r
}
