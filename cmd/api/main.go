package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"perfserver/internal/config"
	handlers "perfserver/internal/http/handler"
	"perfserver/internal/http/middleware"
	"perfserver/internal/otel"
	"perfserver/internal/service"
)

// @title Perf Test Server API
// @version 1.0
// @description Fixed fast and slow endpoints for latency testing.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Location)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	svc := service.NewEndpointService(cfg.SlowDelay)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// RequestID must run first so every other middleware can read it
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	// Shutdown cancels the user context of in-flight requests
	app.Use(middleware.Lifetime(ctx))
	app.Use(middleware.Logger(cfg.Location))

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		prom, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			log.Fatalf("failed to register metrics: %v", err)
		}
		app.Use(prom.Handler())
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	handlers.RegisterRoutes(app, svc)

	if cfg.SwaggerEnabled {
		handlers.RegisterDocs(app)
	}

	go func() {
		<-ctx.Done()
		// Cancelled slow requests answer 503 right away; the timeout bounds everything else.
		if err := app.ShutdownWithTimeout(2*cfg.SlowDelay + time.Second); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	logStartup(cfg, addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}

func logStartup(cfg *config.AppConfig, addr string) {
	b, err := json.Marshal(map[string]any{
		"ts":              time.Now().In(cfg.Location).Format(time.RFC3339Nano),
		"level":           "info",
		"msg":             "server_listening",
		"addr":            addr,
		"url":             "http://localhost" + addr,
		"slow_delay_ms":   cfg.SlowDelay.Milliseconds(),
		"metrics_enabled": cfg.MetricsEnabled,
		"swagger_enabled": cfg.SwaggerEnabled,
	})
	if err != nil {
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
