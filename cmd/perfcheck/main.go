// Command perfcheck requests every test endpoint once and fails when a route exceeds its latency budget.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"perfserver/internal/otel"
	"perfserver/internal/perfcheck"
)

func main() {
	baseURL := flag.String("url", envOr("PERFCHECK_BASE_URL", "http://localhost:3000"), "server base URL")
	budgetPath := flag.String("budget", os.Getenv("PERFCHECK_BUDGET"), "YAML budget file (default: built-in budget for all routes)")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	budget := perfcheck.DefaultBudget()
	if *budgetPath != "" {
		if budget, err = perfcheck.LoadBudget(*budgetPath); err != nil {
			log.Fatalf("failed to load budget: %v", err)
		}
	}

	report, err := perfcheck.NewChecker(*baseURL, *timeout).Run(ctx, budget)
	if err != nil {
		log.Fatalf("perfcheck: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, res := range report.Results {
		_ = enc.Encode(res)
	}
	_ = enc.Encode(map[string]any{
		"msg":    "perfcheck_summary",
		"routes": len(report.Results),
		"failed": report.Failed,
	})

	if !report.OK() {
		shutdownTracing(context.Background())
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
