// cmd/matcher/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rfq-matcher/internal/catalog"
	"rfq-matcher/internal/common/config"
	"rfq-matcher/internal/common/database"
	"rfq-matcher/internal/common/logger"
	"rfq-matcher/internal/common/observability"
	"rfq-matcher/internal/engine"
	"rfq-matcher/internal/requirement"
	"rfq-matcher/internal/semantic"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextDelay", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	rfqFile := flag.String("rfq", "", "score a single RFQ payload from a JSON file and exit")
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting matcher...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("matcher")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry, optional ---
	var searcher semantic.Searcher
	if cfg.Semantic.Enabled {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			// Test the connection
			return es.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			// Heuristic scoring still works without similarity search.
			zapLog.Warn("elasticsearch unavailable, semantic blend disabled", zap.Error(err))
			cfg.Semantic.Enabled = false
		} else {
			searcher = semantic.NewElasticsearchSearcher(
				es.Client,
				cfg.Database.Elasticsearch.Index,
				cfg.Semantic.Limit,
				time.Duration(cfg.Semantic.TimeoutMS)*time.Millisecond,
				log,
			)
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Wire the catalog and the engine ---
	store := catalog.NewPostgresStore(pg.DB, log)
	cacheTTL := time.Duration(cfg.Matching.Engine.CacheTTLSeconds) * time.Second
	collector := catalog.NewCachedCollector(store, rdb.Client, cacheTTL, log)

	matcher := engine.New(cfg, engine.Deps{
		Collector: collector,
		Searcher:  searcher,
		Redis:     rdb.Client,
		Logger:    log,
	})

	if *rfqFile != "" {
		if err := runOnce(ctx, matcher, obs, log, *rfqFile); err != nil {
			zapLog.Fatal("rfq scoring failed", zap.Error(err))
		}
		return
	}

	// --- Health/Metrics Server ---
	go func() {
		http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping matcher...")
	zapLog.Info("Matcher stopped gracefully")
}

// rfqPayload is the on-disk shape accepted by the one-shot mode. The
// requirements block is passed to the normalizer untouched, so it accepts
// the same loose shapes the engine does.
type rfqPayload struct {
	RFQID        string                 `json:"rfqId"`
	Requirements map[string]interface{} `json:"requirements"`
}

func runOnce(ctx context.Context, matcher *engine.Engine, obs *observability.Observability, log logger.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rfq file: %w", err)
	}

	var payload rfqPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to parse rfq file: %w", err)
	}
	if payload.RFQID == "" {
		payload.RFQID = uuid.NewString()
	}

	spec := requirement.NewNormalizer(log).Normalize(payload.Requirements)

	started := time.Now()
	results, err := matcher.Rank(ctx, payload.RFQID, spec)
	status := "ok"
	if err != nil {
		status = "error"
	}
	obs.RecordRankRun(ctx, status)
	obs.RecordRankDuration(ctx, time.Since(started), status)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
